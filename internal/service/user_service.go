package service

import (
	"context"
	"strings"

	"elfatih/internal/models"
	"elfatih/internal/repository"
	"elfatih/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is lowered by tests.
var passwordHashCost = bcrypt.DefaultCost

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   models.Role
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// RegisterInput is the public sign-up payload.
type RegisterInput struct {
	Username string  `json:"username" validate:"required,min=3,max=50,username"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	FullName string  `json:"full_name" validate:"required,min=2,max=100"`
	Phone    *string `json:"phone" validate:"omitnil,phone"`
	Password string  `json:"password" validate:"required,min=6,max=100"`
}

func (in *RegisterInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = normalizeOptionalPhone(in.Phone)
}

// CreateUserInput is the admin variant of RegisterInput that may pick a role
// and the initial activation state.
type CreateUserInput struct {
	RegisterInput
	UserType models.Role `json:"user_type" validate:"omitempty,oneof=USER ADMIN"`
	IsActive *bool       `json:"is_active"`
}

// UpdateUserInput is a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	Username *string      `json:"username" validate:"omitnil,min=3,max=50,username"`
	Email    *string      `json:"email" validate:"omitnil,email,max=255"`
	FullName *string      `json:"full_name" validate:"omitnil,min=2,max=100"`
	Phone    *string      `json:"phone" validate:"omitnil,phone"`
	Password *string      `json:"password" validate:"omitnil,min=6,max=100"`
	UserType *models.Role `json:"user_type" validate:"omitnil,oneof=USER ADMIN"`
	IsActive *bool        `json:"is_active"`
}

func (in *UpdateUserInput) normalize() {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	in.Username = trim(in.Username)
	in.Email = trim(in.Email)
	in.FullName = trim(in.FullName)
	if in.Phone != nil {
		v := validation.NormalizePhone(*in.Phone)
		in.Phone = &v
	}
}

func normalizeOptionalPhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	if strings.TrimSpace(*phone) == "" {
		return nil
	}
	v := validation.NormalizePhone(*phone)
	return &v
}

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hashed), nil
}

// Register creates a regular, active account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.create(ctx, in, models.RoleUser, true)
}

// AdminCreate creates an account with any role.
func (s *UserService) AdminCreate(ctx context.Context, in CreateUserInput) (*models.User, error) {
	role := in.UserType
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, models.NewValidationError("user_type must be one of: USER ADMIN")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return s.create(ctx, in.RegisterInput, role, active)
}

func (s *UserService) create(ctx context.Context, in RegisterInput, role models.Role, active bool) (*models.User, error) {
	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, 0, &in.Username, &in.Email, in.Phone); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		FullName:       in.FullName,
		Phone:          in.Phone,
		HashedPassword: hashed,
		UserType:       role,
		IsActive:       active,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ensureUnique gives a friendly message for the common case. The unique
// indexes still decide races.
func (s *UserService) ensureUnique(ctx context.Context, selfID uint, username, email, phone *string) error {
	taken := func(u *models.User) bool { return u != nil && u.ID != selfID }

	if username != nil {
		u, err := s.userRepo.GetByUsername(ctx, *username)
		if err != nil {
			return err
		}
		if taken(u) {
			return models.NewConflictError("Username already registered")
		}
	}
	if email != nil {
		u, err := s.userRepo.GetByEmail(ctx, *email)
		if err != nil {
			return err
		}
		if taken(u) {
			return models.NewConflictError("Email already registered")
		}
	}
	if phone != nil {
		u, err := s.userRepo.GetByPhone(ctx, *phone)
		if err != nil {
			return err
		}
		if taken(u) {
			return models.NewConflictError("Phone number already registered")
		}
	}
	return nil
}

// Authenticate checks credentials. Inactive users authenticate but their
// token carries is_active=false.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	invalid := models.NewUnauthorizedError("Incorrect username or password")
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, invalid
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByPhone normalizes phone before the lookup.
func (s *UserService) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	normalized := validation.NormalizePhone(phone)
	if normalized == "" {
		return nil, models.NewValidationError("Invalid phone number format")
	}
	user, err := s.userRepo.GetByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", normalized)
	}
	return user, nil
}

// List pages through users. Only admins may include inactive accounts.
func (s *UserService) List(ctx context.Context, actor Actor, skip, limit int, activeOnly bool) ([]models.User, error) {
	if !actor.IsAdmin() {
		activeOnly = true
	}
	return s.userRepo.List(ctx, skip, limit, activeOnly)
}

// Update applies a partial update on behalf of actor. Admins may edit anyone;
// other users only themselves and never their role or activation state.
func (s *UserService) Update(ctx context.Context, actor Actor, id uint, in UpdateUserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		if actor.UserID != id {
			return nil, models.NewForbiddenError("Can only update your own profile or admin access required")
		}
		if in.UserType != nil {
			return nil, models.NewForbiddenError("Only admins can change user type")
		}
		if in.IsActive != nil {
			return nil, models.NewForbiddenError("Only admins can change account status")
		}
	}

	in.normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	var username, email, phone *string
	if in.Username != nil && *in.Username != current.Username {
		username = in.Username
		fields["username"] = *in.Username
	}
	if in.Email != nil && *in.Email != current.Email {
		email = in.Email
		fields["email"] = *in.Email
	}
	if in.Phone != nil && (current.Phone == nil || *current.Phone != *in.Phone) {
		phone = in.Phone
		fields["phone"] = *in.Phone
	}
	if in.FullName != nil {
		fields["full_name"] = *in.FullName
	}
	if in.UserType != nil {
		fields["user_type"] = *in.UserType
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.Password != nil {
		hashed, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["hashed_password"] = hashed
	}

	if err := s.ensureUnique(ctx, id, username, email, phone); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// Delete removes any user but the calling admin.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uint) error {
	if !actor.IsAdmin() {
		return models.NewForbiddenError("Not enough permissions")
	}
	if actor.UserID == id {
		return models.NewValidationError("Admins cannot delete their own account. Use admin panel or contact another admin.")
	}
	return s.userRepo.Delete(ctx, id)
}

// DeleteSelf removes the caller's own account. Admins must be removed by
// another admin.
func (s *UserService) DeleteSelf(ctx context.Context, actor Actor) error {
	if actor.IsAdmin() {
		return models.NewValidationError("Admins cannot delete their own account. Use admin panel or contact another admin.")
	}
	return s.userRepo.Delete(ctx, actor.UserID)
}

// SetRole grants or revokes ADMIN. An admin cannot demote themselves.
func (s *UserService) SetRole(ctx context.Context, actor Actor, id uint, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, models.NewValidationError("user_type must be one of: USER ADMIN")
	}
	if actor.UserID == id && role != models.RoleAdmin {
		return nil, models.NewValidationError("Cannot remove admin privileges from yourself")
	}
	if err := s.userRepo.Update(ctx, id, map[string]any{"user_type": role}); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// SetRoleByUsername is the username-addressed variant used by the admin CLI.
func (s *UserService) SetRoleByUsername(ctx context.Context, username string, role models.Role) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.SetRole(ctx, Actor{Role: models.RoleAdmin}, user.ID, role)
}

// SetActive activates or deactivates an account. An admin cannot deactivate
// themselves.
func (s *UserService) SetActive(ctx context.Context, actor Actor, id uint, active bool) (*models.User, error) {
	if actor.UserID == id && !active {
		return nil, models.NewValidationError("Cannot deactivate yourself")
	}
	if err := s.userRepo.Update(ctx, id, map[string]any{"is_active": active}); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListAdmins(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListAdmins(ctx)
}

func (s *UserService) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.userRepo.Stats(ctx)
}
