package service

import (
	"context"
	"testing"

	"elfatih/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Register(ctx, RegisterInput{
		Username: "  alice_01 ",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Phone:    strPtr("+1 (555) 123-4567"),
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice_01", u.Username)
	assert.Equal(t, models.RoleUser, u.UserType)
	assert.True(t, u.IsActive)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "+15551234567", *u.Phone)
	assert.NotEqual(t, "secret123", u.HashedPassword)

	got, err := f.users.Authenticate(ctx, "alice_01", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.users.Authenticate(ctx, "alice_01", "wrong-password")
	appErr := requireAppError(t, err, models.CodeUnauthorized)
	assert.Equal(t, "Incorrect username or password", appErr.Message)

	_, err = f.users.Authenticate(ctx, "nobody", "secret123")
	requireAppError(t, err, models.CodeUnauthorized)

	byPhone, err := f.users.GetByPhone(ctx, "+1 555 123 4567")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byPhone.ID)
}

func TestUserService_RegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := RegisterInput{Username: "bob", Email: "bob@example.com", FullName: "Bob", Phone: strPtr("+15550001111"), Password: "secret123"}
	_, err := f.users.Register(ctx, base)
	require.NoError(t, err)

	dupName := base
	dupName.Email, dupName.Phone = "other@example.com", nil
	_, err = f.users.Register(ctx, dupName)
	assert.Equal(t, "Username already registered", requireAppError(t, err, models.CodeConflict).Message)

	dupEmail := base
	dupEmail.Username, dupEmail.Phone = "bob2", nil
	_, err = f.users.Register(ctx, dupEmail)
	assert.Equal(t, "Email already registered", requireAppError(t, err, models.CodeConflict).Message)

	dupPhone := base
	dupPhone.Username, dupPhone.Email, dupPhone.Phone = "bob3", "bob3@example.com", strPtr("+1-555-000-1111")
	_, err = f.users.Register(ctx, dupPhone)
	assert.Equal(t, "Phone number already registered", requireAppError(t, err, models.CodeConflict).Message)
}

func TestUserService_RegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"short username": {Username: "ab", Email: "a@example.com", FullName: "Al", Password: "secret123"},
		"bad username":   {Username: "bad name", Email: "a@example.com", FullName: "Al", Password: "secret123"},
		"bad email":      {Username: "abc", Email: "nope", FullName: "Al", Password: "secret123"},
		"short password": {Username: "abc", Email: "a@example.com", FullName: "Al", Password: "12345"},
		"bad phone":      {Username: "abc", Email: "a@example.com", FullName: "Al", Phone: strPtr("0123"), Password: "secret123"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.users.Register(ctx, in)
			requireAppError(t, err, models.CodeValidation)
		})
	}

	// A blank phone is treated as absent.
	u, err := f.users.Register(ctx, RegisterInput{Username: "nophone", Email: "np@example.com", FullName: "No Phone", Phone: strPtr("  "), Password: "secret123"})
	require.NoError(t, err)
	assert.Nil(t, u.Phone)
}

func TestUserService_UpdatePermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.registerUser(t)
	bob := f.registerUser(t)
	self := Actor{UserID: alice.ID, Role: models.RoleUser}

	admin := models.RoleAdmin
	_, err := f.users.Update(ctx, self, alice.ID, UpdateUserInput{UserType: &admin})
	assert.Equal(t, "Only admins can change user type", requireAppError(t, err, models.CodeForbidden).Message)

	_, err = f.users.Update(ctx, self, bob.ID, UpdateUserInput{FullName: strPtr("Hijacked")})
	assert.Equal(t, "Can only update your own profile or admin access required", requireAppError(t, err, models.CodeForbidden).Message)

	updated, err := f.users.Update(ctx, self, alice.ID, UpdateUserInput{FullName: strPtr("Alice Renamed"), Password: strPtr("newpass99")})
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", updated.FullName)

	_, err = f.users.Authenticate(ctx, alice.Username, "newpass99")
	require.NoError(t, err)

	_, err = f.users.Update(ctx, self, alice.ID, UpdateUserInput{Username: strPtr(bob.Username)})
	requireAppError(t, err, models.CodeConflict)

	_, err = f.users.Update(ctx, self, alice.ID, UpdateUserInput{FullName: strPtr("")})
	requireAppError(t, err, models.CodeValidation)

	promoted, err := f.users.Update(ctx, Actor{UserID: bob.ID + 100, Role: models.RoleAdmin}, alice.ID, UpdateUserInput{UserType: &admin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.UserType)
}

func TestUserService_DeleteRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.users.AdminCreate(ctx, CreateUserInput{
		RegisterInput: RegisterInput{Username: "root", Email: "root@example.com", FullName: "Root", Password: "secret123"},
		UserType:      models.RoleAdmin,
	})
	require.NoError(t, err)
	user := f.registerUser(t)
	adminActor := Actor{UserID: admin.ID, Role: models.RoleAdmin}

	err = f.users.DeleteSelf(ctx, adminActor)
	requireAppError(t, err, models.CodeValidation)

	err = f.users.Delete(ctx, adminActor, admin.ID)
	requireAppError(t, err, models.CodeValidation)

	err = f.users.Delete(ctx, Actor{UserID: user.ID, Role: models.RoleUser}, admin.ID)
	requireAppError(t, err, models.CodeForbidden)

	require.NoError(t, f.users.DeleteSelf(ctx, Actor{UserID: user.ID, Role: models.RoleUser}))
	_, err = f.users.GetByID(ctx, user.ID)
	requireAppError(t, err, models.CodeNotFound)
}

func TestUserService_AdminSurface(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin, err := f.users.AdminCreate(ctx, CreateUserInput{
		RegisterInput: RegisterInput{Username: "root", Email: "root@example.com", FullName: "Root", Password: "secret123"},
		UserType:      models.RoleAdmin,
	})
	require.NoError(t, err)
	actor := Actor{UserID: admin.ID, Role: models.RoleAdmin}
	user := f.registerUser(t)

	_, err = f.users.SetRole(ctx, actor, admin.ID, models.RoleUser)
	assert.Equal(t, "Cannot remove admin privileges from yourself", requireAppError(t, err, models.CodeValidation).Message)

	_, err = f.users.SetActive(ctx, actor, admin.ID, false)
	assert.Equal(t, "Cannot deactivate yourself", requireAppError(t, err, models.CodeValidation).Message)

	deactivated, err := f.users.SetActive(ctx, actor, user.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	// Non-admins only ever see active users.
	visible, err := f.users.List(ctx, Actor{UserID: user.ID, Role: models.RoleUser}, 0, 100, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, admin.ID, visible[0].ID)

	all, err := f.users.List(ctx, actor, 0, 100, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	promoted, err := f.users.SetRoleByUsername(ctx, user.Username, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.UserType)

	admins, err := f.users.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	stats, err := f.users.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.ActiveUsers)
	assert.Equal(t, int64(1), stats.InactiveUsers)
	assert.Equal(t, int64(2), stats.AdminUsers)
	assert.Equal(t, int64(0), stats.RegularUsers)
}

func TestUserService_AdminCreateInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inactive := false

	u, err := f.users.AdminCreate(ctx, CreateUserInput{
		RegisterInput: RegisterInput{Username: "dormant", Email: "dormant@example.com", FullName: "Dormant", Password: "secret123"},
		IsActive:      &inactive,
	})
	require.NoError(t, err)
	assert.False(t, u.IsActive)

	var stored bool
	require.NoError(t, f.db.Raw("SELECT is_active FROM users WHERE id = ?", u.ID).Scan(&stored).Error)
	assert.False(t, stored)

	active, err := f.users.AdminCreate(ctx, CreateUserInput{
		RegisterInput: RegisterInput{Username: "awake", Email: "awake@example.com", FullName: "Awake", Password: "secret123"},
	})
	require.NoError(t, err)
	require.NoError(t, f.db.Raw("SELECT is_active FROM users WHERE id = ?", active.ID).Scan(&stored).Error)
	assert.True(t, stored)
}
