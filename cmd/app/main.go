package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"picking/cmd"
	httpadapter "picking/internal/adapters/in/http"
	"picking/internal/adapters/out/postgres/catalogrepo"
	"picking/internal/adapters/out/postgres/pickingrepo"
	"picking/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	defaultAutosaveSchedule   = "*/30 * * * * *"
	defaultReaperSchedule     = "0 * * * * *"
	defaultSessionIdleTimeout = 30 * time.Minute
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	gormDB := mustGormOpen(configs)
	mustAutoMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort, logger)
	saveDirtySessions(app, logger)
}

// saveDirtySessions writes back what scans changed since the last autosave.
func saveDirtySessions(app *cmd.CompositionRoot, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	saved, err := app.CreateSaveDirtySessionsCommandHandler().Handle(ctx, commands.NewSaveDirtySessionsCommand())
	if err != nil {
		logger.ErrorContext(ctx, "Failed to save sessions on shutdown", "error", err, "saved", saved)
		return
	}
	logger.InfoContext(ctx, "Sessions saved on shutdown", "saved", saved)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT", "8080"),
		DBHost:             goDotEnvVariable("DB_HOST", "localhost"),
		DBPort:             goDotEnvVariable("DB_PORT", "5432"),
		DBUser:             goDotEnvVariable("DB_USER", ""),
		DBPassword:         goDotEnvVariable("DB_PASSWORD", ""),
		DBName:             goDotEnvVariable("DB_NAME", ""),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE", "disable"),
		LogLevel:           goDotEnvVariable("LOG_LEVEL", "info"),
		AutosaveSchedule:   goDotEnvVariable("AUTOSAVE_SCHEDULE", defaultAutosaveSchedule),
		ReaperSchedule:     goDotEnvVariable("SESSION_REAPER_SCHEDULE", defaultReaperSchedule),
		SessionIdleTimeout: defaultSessionIdleTimeout,
	}

	if raw := goDotEnvVariable("SESSION_IDLE_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid SESSION_IDLE_TIMEOUT %q: %v", raw, err)
		}
		config.SessionIdleTimeout = timeout
	}
	return config
}

func goDotEnvVariable(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func makeConnectionString(configs cmd.Config) string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode)
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  makeConnectionString(configs),
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm: %v", err)
	}
	return gormDB
}

func mustAutoMigrate(db *gorm.DB) {
	models := append(catalogrepo.Models(), pickingrepo.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := httpadapter.NewRouter(app.CreateServer(), app.MetricsHandler(), logger)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
