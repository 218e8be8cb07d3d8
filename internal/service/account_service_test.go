package service

import (
	"os"
	"path/filepath"
	"testing"

	"hotelier/internal/events"
	"hotelier/internal/models"
	"hotelier/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAccountService(t *testing.T) *AccountService {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	store := storage.NewUserStore(filepath.Join(t.TempDir(), "users.txt"), &logger)
	_ = store.Load(models.NewUser("admin", "admin123", models.AccessLevelAdmin))
	return NewAccountService(store, events.NewBus(), &logger)
}

func TestLogin(t *testing.T) {
	svc := setupAccountService(t)

	assert.ErrorIs(t, svc.Login("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login("ghost", "admin123"), ErrInvalidCredentials)

	_, ok := svc.CurrentUser()
	assert.False(t, ok)

	require.NoError(t, svc.Login("admin", "admin123"))
	user, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, svc.IsCurrentAdmin())
}

func TestLogout(t *testing.T) {
	svc := setupAccountService(t)
	require.NoError(t, svc.Login("admin", "admin123"))

	svc.Logout()
	_, ok := svc.CurrentUser()
	assert.False(t, ok)
	assert.False(t, svc.IsCurrentAdmin())
}

func TestRegisterAndLoginAsUser(t *testing.T) {
	svc := setupAccountService(t)

	require.NoError(t, svc.Register("ivan", "secret", models.AccessLevelUser))
	assert.ErrorIs(t, svc.Register("ivan", "other123", models.AccessLevelUser), storage.ErrUserExists)

	require.NoError(t, svc.Login("ivan", "secret"))
	assert.False(t, svc.IsCurrentAdmin())
}

func TestDeleteClosesOwnSession(t *testing.T) {
	svc := setupAccountService(t)
	require.NoError(t, svc.Register("ivan", "secret", models.AccessLevelUser))
	require.NoError(t, svc.Login("ivan", "secret"))

	require.NoError(t, svc.Delete("ivan"))
	_, ok := svc.CurrentUser()
	assert.False(t, ok, "deleting the logged-in account ends the session")

	assert.ErrorIs(t, svc.Delete("admin"), storage.ErrAdminProtected)
}

func TestChangePassword(t *testing.T) {
	svc := setupAccountService(t)

	assert.ErrorIs(t, svc.ChangePassword("admin123", "newpass"), ErrNotAuthenticated)

	require.NoError(t, svc.Login("admin", "admin123"))
	assert.Error(t, svc.ChangePassword("wrong", "newpass"))
	require.NoError(t, svc.ChangePassword("admin123", "newpass"))

	svc.Logout()
	assert.ErrorIs(t, svc.Login("admin", "admin123"), ErrInvalidCredentials)
	require.NoError(t, svc.Login("admin", "newpass"))
}
