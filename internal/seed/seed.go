// Package seed fills a database with demo users, posts, sections, feedback
// and devices for development. Everything goes through the service layer,
// so seeded rows pass the same validation and get real QR codes.
package seed

import (
	"context"
	"fmt"
	"log"

	"elfatih/internal/config"
	"elfatih/internal/database"
	"elfatih/internal/models"
	"elfatih/internal/repository"
	"elfatih/internal/service"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumAdmins   int
	NumPosts    int
	MaxSections int
	NumDevices  int
	// WithImages attaches generated covers, image sections and device photos.
	WithImages bool
	// RandSeed makes runs reproducible. Zero picks a random seed.
	RandSeed int64
}

// DefaultOptions is the preset used by the seed command.
var DefaultOptions = Options{
	NumUsers:    20,
	NumAdmins:   1,
	NumPosts:    15,
	MaxSections: 5,
	NumDevices:  8,
	WithImages:  true,
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Posts    int
	Sections int
	Feedback int
	Devices  int
}

// Seeder wires the services a seeding run drives.
type Seeder struct {
	db       *gorm.DB
	factory  *Factory
	users    *service.UserService
	posts    *service.PostService
	feedback *service.FeedbackService
	devices  *service.DeviceService
}

// NewSeeder builds a Seeder over db. cfg supplies the image pipeline limits.
func NewSeeder(db *gorm.DB, cfg *config.Config, randSeed int64) *Seeder {
	images := service.NewImageService(cfg)
	postRepo := repository.NewPostRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	return &Seeder{
		db:       db,
		factory:  NewFactory(randSeed),
		users:    service.NewUserService(repository.NewUserRepository(db)),
		posts:    service.NewPostService(postRepo, repository.NewSectionRepository(db), feedbackRepo, images, nil),
		feedback: service.NewFeedbackService(postRepo, feedbackRepo, nil, nil),
		devices:  service.NewDeviceService(repository.NewDeviceRepository(db), images, service.NewQRCodeService(), nil),
	}
}

// ClearAll removes every row, children first.
func (s *Seeder) ClearAll() error {
	all := database.PersistentModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(all[i]).Error; err != nil {
			return fmt.Errorf("clear %T: %w", all[i], err)
		}
	}
	return nil
}

// Seed runs one seeding pass.
func (s *Seeder) Seed(ctx context.Context, opts Options) (*Summary, error) {
	log.Printf("🌱 Seeding %d users, %d posts, %d devices", opts.NumUsers, opts.NumPosts, opts.NumDevices)
	sum := &Summary{}

	users, err := s.seedUsers(ctx, opts)
	if err != nil {
		return sum, fmt.Errorf("users: %w", err)
	}
	sum.Users = len(users)

	for i := 0; i < opts.NumPosts; i++ {
		post, sections, err := s.seedPost(ctx, i, opts)
		if err != nil {
			return sum, fmt.Errorf("post %d: %w", i, err)
		}
		sum.Posts++
		sum.Sections += sections

		n, err := s.seedFeedback(ctx, post.ID, users)
		if err != nil {
			return sum, fmt.Errorf("feedback for post %d: %w", post.ID, err)
		}
		sum.Feedback += n
	}

	for i := 0; i < opts.NumDevices; i++ {
		if err := s.seedDevice(ctx, i, opts); err != nil {
			return sum, fmt.Errorf("device %d: %w", i, err)
		}
		sum.Devices++
	}

	log.Printf("✓ seeded %d users, %d posts, %d sections, %d reactions, %d devices",
		sum.Users, sum.Posts, sum.Sections, sum.Feedback, sum.Devices)
	return sum, nil
}

func (s *Seeder) seedUsers(ctx context.Context, opts Options) ([]*models.User, error) {
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		role := models.RoleUser
		if i < opts.NumAdmins {
			role = models.RoleAdmin
		}
		user, err := s.users.AdminCreate(ctx, service.CreateUserInput{
			RegisterInput: s.factory.User(i + 1),
			UserType:      role,
		})
		if err != nil {
			return users, err
		}
		users = append(users, user)
	}
	return users, nil
}

// seedPost creates a post with a random mix of sections and returns how many
// sections it got.
func (s *Seeder) seedPost(ctx context.Context, n int, opts Options) (*models.Post, int, error) {
	post, err := s.posts.Create(ctx, s.factory.Post())
	if err != nil {
		return nil, 0, err
	}
	if opts.WithImages && s.factory.Chance(70) {
		cover := s.factory.Image(fmt.Sprintf("cover_%d", n), 640, 360)
		if _, err := s.posts.SetImage(ctx, post.ID, cover); err != nil {
			return nil, 0, err
		}
	}

	count := s.factory.Between(1, max(opts.MaxSections, 1))
	for order := 0; order < count; order++ {
		switch kind := s.factory.Between(0, 2); {
		case kind == 1 && opts.WithImages:
			img := s.factory.Image(fmt.Sprintf("post_%d_section_%d", n, order), 320, 240)
			_, err = s.posts.AddImageSection(ctx, post.ID, img, order)
		case kind == 2:
			_, err = s.posts.AddVideoSection(ctx, post.ID, s.factory.VideoURL(), "", order)
		default:
			_, err = s.posts.AddTextSection(ctx, post.ID, s.factory.Text(), order)
		}
		if err != nil {
			return nil, 0, err
		}
	}
	return post, count, nil
}

// seedFeedback lets roughly half of the users react to the post.
func (s *Seeder) seedFeedback(ctx context.Context, postID uint, users []*models.User) (int, error) {
	n := 0
	for _, u := range users {
		if !s.factory.Chance(50) {
			continue
		}
		kind := models.FeedbackNegative
		if s.factory.Positive() {
			kind = models.FeedbackPositive
		}
		if _, err := s.feedback.Upsert(ctx, postID, u.ID, string(kind)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *Seeder) seedDevice(ctx context.Context, n int, opts Options) error {
	in := s.factory.Device(n + 1)
	var upload *service.ImageUpload
	if opts.WithImages && s.factory.Chance(60) {
		img := s.factory.Image(fmt.Sprintf("device_%d", n+1), 400, 400)
		upload = &img
	}
	device, err := s.devices.CreateWithImage(ctx, in, upload)
	if err != nil {
		return err
	}
	// Leave a few retired devices around for the active_only filter.
	if s.factory.Chance(15) {
		_, err = s.devices.SoftDelete(ctx, device.ID)
	}
	return err
}
