package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"soundbridge/internal/database"
	"soundbridge/internal/domain"
	jwtsvc "soundbridge/internal/pkg/jwt"
	"soundbridge/internal/repository"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := repository.NewUserRepository(db)
	j := jwtsvc.New("test-secret-123", time.Hour)
	return NewService(users, j), db
}

func TestRegister_CreatesUnapprovedUserWithPendingApplication(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Username: "novawave",
		Email:    "Nova@Wave.FM",
		Password: "secret-pass-1",
		FullName: "Nova Wave",
		Role:     "artist",
	})
	require.NoError(t, err)

	assert.False(t, user.IsApproved)
	assert.Equal(t, domain.RoleArtist, user.Role)
	assert.Equal(t, "nova@wave.fm", user.Email, "email is normalized to lower case")
	assert.NotEqual(t, "secret-pass-1", user.PasswordHash)

	var app domain.Application
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&app).Error)
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.Nil(t, app.ReviewedAt)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "dup", Email: "one@mail.io", Password: "password1", FullName: "One",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "dup", Email: "two@mail.io", Password: "password2", FullName: "Two",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "one", Email: "same@mail.io", Password: "password1", FullName: "One",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "two", Email: "SAME@mail.io", Password: "password2", FullName: "Two",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_NeverGrantsAdminRole(t *testing.T) {
	svc, _ := setupService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Username: "sneaky", Email: "sneaky@mail.io", Password: "password1",
		FullName: "Sneaky", Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleArtist, user.Role)
}

func TestLogin_Success(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "novawave", Email: "nova@wave.fm", Password: "secret-pass-1", FullName: "Nova Wave",
	})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, LoginRequest{Username: "novawave", Password: "secret-pass-1"})
	require.NoError(t, err)
	assert.Equal(t, "novawave", user.Username)
	assert.NotEmpty(t, token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Username: "novawave", Email: "nova@wave.fm", Password: "secret-pass-1", FullName: "Nova Wave",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Username: "novawave", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := setupService(t)

	_, _, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{
		Username: "novawave", Email: "nova@wave.fm", Password: "secret-pass-1", FullName: "Nova Wave",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword: "nope", NewPassword: "another-pass",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword: "secret-pass-1", NewPassword: "another-pass",
	})
	require.NoError(t, err)

	var stored domain.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("another-pass")))
}
