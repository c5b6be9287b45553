package service

import (
	"context"
	"os"
	"testing"

	"elfatih/internal/config"
	"elfatih/internal/models"
	"elfatih/internal/repository"
	"elfatih/internal/testutil"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	passwordHashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fixture struct {
	db       *gorm.DB
	users    *UserService
	posts    *PostService
	feedback *FeedbackService
	devices  *DeviceService
	postRepo repository.PostRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	postRepo := repository.NewPostRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	images := NewImageService(&config.Config{})

	return &fixture{
		db:       db,
		users:    NewUserService(repository.NewUserRepository(db)),
		posts:    NewPostService(postRepo, sectionRepo, feedbackRepo, images, nil),
		feedback: NewFeedbackService(postRepo, feedbackRepo, nil, nil),
		devices:  NewDeviceService(repository.NewDeviceRepository(db), images, NewQRCodeService(), nil),
		postRepo: postRepo,
	}
}

func (f *fixture) registerUser(t *testing.T) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{
		Username: gofakeit.Regex(`[a-z]{6}[0-9]{4}`),
		Email:    gofakeit.Email(),
		FullName: gofakeit.Name(),
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func requireAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func strPtr(s string) *string { return &s }
