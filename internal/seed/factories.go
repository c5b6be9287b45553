package seed

import (
	"fmt"
	"strings"

	"elfatih/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword is the password every seeded account logs in with.
const DemoPassword = "password123"

// Factory builds valid service payloads from a seeded faker so that a given
// seed value always produces the same dataset.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// keepRunes drops every rune that allowed rejects.
func keepRunes(s string, allowed func(r rune) bool) string {
	var b strings.Builder
	for _, r := range s {
		if allowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}

// User builds a registration payload. n keeps usernames, emails and phone
// numbers unique within one run.
func (f *Factory) User(n int) service.RegisterInput {
	first, last := f.faker.FirstName(), f.faker.LastName()
	username := truncate(strings.ToLower(keepRunes(first+"_"+last, isWordRune)), 40)
	if len(username) < 3 {
		username = "user"
	}
	phone := fmt.Sprintf("+1555%07d", n)
	return service.RegisterInput{
		Username: fmt.Sprintf("%s%d", username, n),
		Email:    fmt.Sprintf("%s.%d@example.com", username, n),
		FullName: truncate(first+" "+last, 100),
		Phone:    &phone,
		Password: DemoPassword,
	}
}

// Post builds a post header and description.
func (f *Factory) Post() service.CreatePostInput {
	header := truncate(strings.TrimSuffix(f.faker.Sentence(6), "."), 200)
	if len(header) < 3 {
		header = "Untitled post"
	}
	description := truncate(f.faker.Paragraph(1, 3, 12, " "), 5000)
	return service.CreatePostInput{Header: header, Description: &description}
}

// Text returns a body paragraph for a text section.
func (f *Factory) Text() string {
	return f.faker.Paragraph(1, 4, 14, " ")
}

// VideoURL returns a plausible video link.
func (f *Factory) VideoURL() string {
	return fmt.Sprintf("https://videos.example.com/%s.mp4", f.faker.UUID())
}

// Image renders a PNG upload of the given size.
func (f *Factory) Image(name string, width, height int) service.ImageUpload {
	return service.ImageUpload{
		Filename:    name + ".png",
		ContentType: "image/png",
		Content:     f.faker.ImagePng(width, height),
	}
}

// Device builds a device payload with a name that satisfies the device name
// charset. n keeps names unique.
func (f *Factory) Device(n int) service.DeviceInput {
	base := keepRunes(f.faker.AppName(), func(r rune) bool {
		return isWordRune(r) || r == ' ' || r == '-'
	})
	base = truncate(strings.TrimSpace(base), 180)
	if base == "" {
		base = "Device"
	}
	description := f.faker.Sentence(10)
	return service.DeviceInput{
		DeviceName:  fmt.Sprintf("%s %d", base, n),
		Version:     "v" + f.faker.AppVersion(),
		Description: &description,
	}
}

// Positive reports whether the next reaction should be positive. Roughly
// two out of three are.
func (f *Factory) Positive() bool {
	return f.faker.Number(1, 3) != 1
}

// Chance reports true with probability pct percent.
func (f *Factory) Chance(pct int) bool {
	return f.faker.Number(1, 100) <= pct
}

// Between returns an int in [lo, hi].
func (f *Factory) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return f.faker.Number(lo, hi)
}
