package storage

import (
	"os"
	"path/filepath"
	"testing"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserStore(t *testing.T) *UserStore {
	t.Helper()
	logger := zerolog.New(os.Stdout)
	path := filepath.Join(t.TempDir(), "users.txt")
	return NewUserStore(path, &logger)
}

func defaultAdmin() models.User {
	return models.NewUser("admin", "admin123", models.AccessLevelAdmin)
}

func TestUserStoreBootstrapOnMissingFile(t *testing.T) {
	store := newTestUserStore(t)

	err := store.Load(defaultAdmin())
	assert.Error(t, err, "missing file is reported")
	require.Equal(t, 1, store.Count())

	admin, findErr := store.Find("admin")
	require.NoError(t, findErr)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.VerifyPassword("admin123"))

	// Администратор сразу записан на диск.
	data, readErr := os.ReadFile(store.path)
	require.NoError(t, readErr)
	assert.Equal(t, "admin:admin123:1\n", string(data))
}

func TestUserStoreBootstrapForcesAdminLevel(t *testing.T) {
	store := newTestUserStore(t)

	seed := models.NewUser("root", "rootpass", models.AccessLevelUser)
	_ = store.Load(seed)

	root, err := store.Find("root")
	require.NoError(t, err)
	assert.True(t, root.IsAdmin(), "bootstrap account always gets admin level")
}

func TestUserStoreLoadSkipsMalformedRows(t *testing.T) {
	store := newTestUserStore(t)
	content := "admin:admin123:1\n" +
		"broken line\n" +
		"ivan:secret:notanumber\n" +
		"\n" +
		"anna:pass1234:2\n"
	require.NoError(t, os.WriteFile(store.path, []byte(content), 0o644))

	require.NoError(t, store.Load(defaultAdmin()))
	assert.Equal(t, 2, store.Count())

	anna, err := store.Find("anna")
	require.NoError(t, err)
	assert.Equal(t, models.AccessLevelUser, anna.AccessLevel)
}

func TestUserStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestUserStore(t)
	_ = store.Load(defaultAdmin())

	require.NoError(t, store.Register(models.NewUser("ivan", "secret", models.AccessLevelUser)))

	reloaded := NewUserStore(store.path, store.logger)
	require.NoError(t, reloaded.Load(defaultAdmin()))
	assert.Equal(t, store.All(), reloaded.All())
}

func TestUserStoreRegister(t *testing.T) {
	store := newTestUserStore(t)
	_ = store.Load(defaultAdmin())

	require.NoError(t, store.Register(models.NewUser("ivan", "secret", models.AccessLevelUser)))
	assert.True(t, store.Exists("ivan"))

	assert.ErrorIs(t, store.Register(models.NewUser("ivan", "other123", models.AccessLevelUser)), ErrUserExists)
	assert.Error(t, store.Register(models.NewUser("bad user", "secret", models.AccessLevelUser)), "invalid username")
	assert.Error(t, store.Register(models.NewUser("anna", "123", models.AccessLevelUser)), "short password")
	assert.Equal(t, 2, store.Count())
}

func TestUserStoreDelete(t *testing.T) {
	store := newTestUserStore(t)
	_ = store.Load(defaultAdmin())
	require.NoError(t, store.Register(models.NewUser("ivan", "secret", models.AccessLevelUser)))

	assert.ErrorIs(t, store.Delete("admin"), ErrAdminProtected)
	assert.ErrorIs(t, store.Delete("ghost"), ErrUserNotFound)

	require.NoError(t, store.Delete("ivan"))
	assert.False(t, store.Exists("ivan"))
}

func TestUserStoreDeleteProtectsRenamedBootstrapAccount(t *testing.T) {
	store := newTestUserStore(t)
	_ = store.Load(models.NewUser("root", "rootpass", models.AccessLevelAdmin))

	// Защита следует за логином сидового администратора, а не за
	// литералом "admin".
	assert.ErrorIs(t, store.Delete("root"), ErrAdminProtected)

	require.NoError(t, store.Register(models.NewUser("admin", "pass1234", models.AccessLevelUser)))
	require.NoError(t, store.Delete("admin"))
	assert.False(t, store.Exists("admin"))
}

func TestUserStorePut(t *testing.T) {
	store := newTestUserStore(t)
	_ = store.Load(defaultAdmin())

	admin, err := store.Find("admin")
	require.NoError(t, err)
	require.NoError(t, admin.ChangePassword("admin123", "newpass"))
	require.NoError(t, store.Put(admin))

	updated, err := store.Find("admin")
	require.NoError(t, err)
	assert.True(t, updated.VerifyPassword("newpass"))

	ghost := models.NewUser("ghost", "pass1234", models.AccessLevelUser)
	assert.ErrorIs(t, store.Put(ghost), ErrUserNotFound)
}
