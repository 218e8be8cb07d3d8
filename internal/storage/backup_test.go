package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotelier/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformBackup(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	dir := t.TempDir()

	bookingsPath := filepath.Join(dir, "bookings.csv")
	require.NoError(t, os.WriteFile(bookingsPath, []byte("id,hotel_id\n1,1\n"), 0o644))
	missingPath := filepath.Join(dir, "hotels.csv")

	backupDir := filepath.Join(dir, "backups")
	svc := NewBackupService([]string{bookingsPath, missingPath}, config.BackupConfig{
		Enabled:     true,
		StoragePath: backupDir,
	}, &logger)

	require.NoError(t, svc.PerformBackup())

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "missing data files are skipped")
	assert.Contains(t, entries[0].Name(), "bookings.csv")

	copied, err := os.ReadFile(filepath.Join(backupDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "id,hotel_id\n1,1\n", string(copied))
}

func TestCleanupOldBackups(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	backupDir := t.TempDir()

	oldFile := filepath.Join(backupDir, "20200101_000000_bookings.csv")
	require.NoError(t, os.WriteFile(oldFile, []byte("old"), 0o644))
	oldTime := timeDaysAgo(30)
	require.NoError(t, os.Chtimes(oldFile, oldTime, oldTime))

	freshFile := filepath.Join(backupDir, "fresh_bookings.csv")
	require.NoError(t, os.WriteFile(freshFile, []byte("fresh"), 0o644))

	svc := NewBackupService(nil, config.BackupConfig{
		Enabled:       true,
		StoragePath:   backupDir,
		RetentionDays: 14,
	}, &logger)

	svc.CleanupOldBackups()

	assert.NoFileExists(t, oldFile)
	assert.FileExists(t, freshFile)
}

func timeDaysAgo(days int) time.Time {
	return time.Now().AddDate(0, 0, -days)
}
