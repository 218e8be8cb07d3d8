package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"hotelier/internal/config"

	"github.com/rs/zerolog"
)

// BackupService периодически снимает копии файлов данных. Файлы копируются
// как есть: все изменения проходят через полную перезапись из одной
// горутины, поэтому частично записанный файл в копию не попадает.
type BackupService struct {
	dataFiles []string
	config    config.BackupConfig
	logger    *zerolog.Logger
}

func NewBackupService(dataFiles []string, cfg config.BackupConfig, logger *zerolog.Logger) *BackupService {
	return &BackupService{
		dataFiles: dataFiles,
		config:    cfg,
		logger:    logger,
	}
}

func (s *BackupService) Start(ctx context.Context) {
	if !s.config.Enabled {
		s.logger.Info().Msg("backup service is disabled")
		return
	}

	s.logger.Info().Str("schedule", s.config.Schedule).Msg("backup service started")

	interval := 24 * time.Hour
	if s.config.Schedule != "" {
		if d, err := time.ParseDuration(s.config.Schedule); err == nil {
			interval = d
		} else {
			s.logger.Warn().Err(err).Str("schedule", s.config.Schedule).Msg("failed to parse backup schedule, using default 24h")
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.PerformBackup(); err != nil {
		s.logger.Error().Err(err).Msg("initial backup failed")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.PerformBackup(); err != nil {
				s.logger.Error().Err(err).Msg("scheduled backup failed")
			}
			s.CleanupOldBackups()
		}
	}
}

// PerformBackup копирует каждый файл данных в каталог резервных копий под
// именем с меткой времени.
func (s *BackupService) PerformBackup() error {
	if err := os.MkdirAll(s.config.StoragePath, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	for _, path := range s.dataFiles {
		backupName := fmt.Sprintf("%s_%s", timestamp, filepath.Base(path))
		backupPath := filepath.Join(s.config.StoragePath, backupName)

		if err := copyFile(path, backupPath); err != nil {
			if os.IsNotExist(err) {
				// файл ещё не создавался, копировать нечего
				continue
			}
			return fmt.Errorf("backup %s: %w", path, err)
		}
		s.logger.Info().Str("path", backupPath).Msg("backup written")
	}
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()

	_, err = io.Copy(destination, source)
	return err
}

func (s *BackupService) CleanupOldBackups() {
	if s.config.RetentionDays <= 0 {
		return
	}

	files, err := os.ReadDir(s.config.StoragePath)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read backup directory for cleanup")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.config.RetentionDays)

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", file.Name()).Msg("deleting old backup")
			os.Remove(filepath.Join(s.config.StoragePath, file.Name()))
		}
	}
}
