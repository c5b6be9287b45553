// Package validation holds field rules shared by request payloads and the
// go-playground validator instance that enforces them.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"elfatih/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRegex      = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	phoneRegex         = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
	phoneStripRegex    = regexp.MustCompile(`[^\d+]`)
	deviceNameRegex    = regexp.MustCompile(`^[a-zA-Z0-9\s\-_]+$`)
	deviceVersionRegex = regexp.MustCompile(`^[vV]?\d+\.\d+(?:\.\d+)?(?:[-\w]*)?$`)
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the custom tags registered:
// username, phone, device_name and device_version.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "username", func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		})
		mustRegister(v, "phone", passes(ValidatePhone))
		mustRegister(v, "device_name", passes(ValidateDeviceName))
		mustRegister(v, "device_version", passes(ValidateDeviceVersion))
		instance = v
	})
	return instance
}

// passes adapts a normalizing check to a validator tag.
func passes(check func(string) (string, error)) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := check(fl.Field().String())
		return err == nil
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Struct validates s and converts the first failure into a validation AppError.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return models.NewValidationError(describe(verrs[0]))
	}
	return models.NewValidationError(err.Error())
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "username":
		return "Username can only contain letters, numbers, and underscores"
	case "phone":
		return "Invalid phone number format"
	case "device_name":
		return "Device name can only contain letters, numbers, spaces, hyphens, and underscores"
	case "device_version":
		return "Version must follow semantic versioning format (e.g., 1.0.0, v1.2.3)"
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// NormalizePhone strips everything except digits and '+'.
func NormalizePhone(raw string) string {
	return phoneStripRegex.ReplaceAllString(raw, "")
}

// ValidatePassword enforces the 6..100 character password length.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < 6 {
		return models.NewValidationError("password must be at least 6 characters")
	}
	if n > 100 {
		return models.NewValidationError("password must be at most 100 characters")
	}
	return nil
}

// ValidateUsername enforces 3..50 characters of [a-zA-Z0-9_].
func ValidateUsername(username string) error {
	if n := len(username); n < 3 || n > 50 {
		return models.NewValidationError("username must be 3-50 characters")
	}
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError("username can only contain letters, numbers, and underscores")
	}
	return nil
}

// ValidatePhone normalizes raw and checks it against the international
// format. It returns the normalized number.
func ValidatePhone(raw string) (string, error) {
	phone := NormalizePhone(raw)
	if !phoneRegex.MatchString(phone) {
		return "", models.NewValidationError("invalid phone number format")
	}
	return phone, nil
}

// ValidateDeviceName trims name and checks length and charset.
func ValidateDeviceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 1 || n > 200 {
		return "", models.NewValidationError("device name must be 1-200 characters")
	}
	if !deviceNameRegex.MatchString(name) {
		return "", models.NewValidationError("device name can only contain letters, numbers, spaces, hyphens, and underscores")
	}
	return name, nil
}

// ValidateDeviceVersion trims version and checks its format.
func ValidateDeviceVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if n := len(version); n < 1 || n > 50 {
		return "", models.NewValidationError("version must be 1-50 characters")
	}
	if !deviceVersionRegex.MatchString(version) {
		return "", models.NewValidationError("version must follow semantic versioning format (e.g., 1.0.0, v1.2.3)")
	}
	return version, nil
}
