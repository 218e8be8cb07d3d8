package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/console"
	"hotelier/internal/events"
	"hotelier/internal/export"
	"hotelier/internal/logging"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/service"
	"hotelier/internal/storage"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, console.ErrLoginExhausted) {
			fmt.Fprintln(os.Stderr, "Превышено количество попыток входа.")
			os.Exit(1)
		}
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	bookingStore, hotelStore, userStore := loadStores(cfg, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewBus()
	subscribeAuditLog(eventBus, &logger)

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	var backupService *storage.BackupService
	if cfg.Backup.Enabled {
		dataFiles := []string{cfg.Storage.BookingsFile, cfg.Storage.HotelsFile, cfg.Storage.UsersFile}
		backupService = storage.NewBackupService(dataFiles, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	accountService := service.NewAccountService(userStore, eventBus, &logger)
	hotelService := service.NewHotelService(hotelStore, bookingStore, eventBus, accountService, &logger)
	bookingService := service.NewBookingService(bookingStore, hotelStore, eventBus, accountService, &logger)
	reporter := export.NewReporter(cfg.Exports.Path, &logger)

	ui := console.New(os.Stdin, os.Stdout, bookingService, hotelService, accountService, reporter, backupService, cfg, &logger)

	logger.Info().
		Str("bookings_file", cfg.Storage.BookingsFile).
		Str("hotels_file", cfg.Storage.HotelsFile).
		Msg("hotelier started")

	err = ui.Run(ctx)
	if errors.Is(err, context.Canceled) {
		// остановка по сигналу, данные уже сохранены в Run
		return nil
	}
	return err
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "main").Logger()
	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	dirs := []string{
		filepath.Dir(cfg.Storage.BookingsFile),
		filepath.Dir(cfg.Storage.HotelsFile),
		filepath.Dir(cfg.Storage.UsersFile),
		cfg.Exports.Path,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("dir", dir).Msg("Ошибка создания директории")
			return err
		}
	}
	return nil
}

// loadStores поднимает все три хранилища с диска. Отсутствующие файлы не
// фатальны: первый запуск начинается с пустых коллекций и сидового
// администратора.
func loadStores(cfg *config.Config, logger *zerolog.Logger) (*storage.BookingStore, *storage.HotelStore, *storage.UserStore) {
	bookingStore := storage.NewBookingStore(cfg.Storage.BookingsFile, logger)
	if err := bookingStore.Load(); err != nil {
		logger.Warn().Err(err).Msg("bookings file not loaded, starting empty")
	}

	hotelStore := storage.NewHotelStore(cfg.Storage.HotelsFile, logger)
	if err := hotelStore.Load(); err != nil {
		logger.Warn().Err(err).Msg("hotels file not loaded, starting empty")
	}

	userStore := storage.NewUserStore(cfg.Storage.UsersFile, logger)
	defaultAdmin := models.User{
		Username:    cfg.Bootstrap.AdminUsername,
		Password:    cfg.Bootstrap.AdminPassword,
		AccessLevel: models.AccessLevelAdmin,
	}
	if err := userStore.Load(defaultAdmin); err != nil {
		logger.Warn().Err(err).Msg("users file not loaded, default admin created")
	}

	return bookingStore, hotelStore, userStore
}

// subscribeAuditLog пишет все доменные события в журнал. Консоль молчит,
// след остаётся в логе.
func subscribeAuditLog(bus *events.Bus, logger *zerolog.Logger) {
	audit := func(event *events.Event) error {
		logger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	}

	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingCancelled,
		events.EventBookingCompleted,
		events.EventHotelAdded,
		events.EventHotelRemoved,
		events.EventUserRegistered,
	} {
		bus.Subscribe(eventType, audit)
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
