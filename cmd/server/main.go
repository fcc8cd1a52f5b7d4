package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"realestate-backend/internal/api"
	"realestate-backend/internal/config"
	"realestate-backend/internal/dataset"
	"realestate-backend/internal/service"
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	// Dataset store + optional startup load
	store := dataset.NewStore()
	if err := loadStartupDataset(cfg, store, logger); err != nil {
		logger.Fatal().Err(err).Msg("startup dataset load failed")
	}

	// Services
	classifier := service.NewClassifier()
	summaries := service.NewSummaryGenerator()
	orchestrator := service.NewOrchestrator(store, classifier, summaries, logger)
	exportService := service.NewExportService()

	handler := api.NewHandler(store, orchestrator, exportService, logger)

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Real Estate Chat Backend is Running"))
	})

	handler.RegisterRoutes(r)

	logger.Info().Str("port", cfg.Port).Msg("starting backend")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed to start")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().
		Timestamp().
		Str("service", "realestate-backend").
		Logger()
}

// loadStartupDataset seeds the store from the configured source. A missing
// DATA_FILE is not fatal: the dataset can still arrive via upload.
func loadStartupDataset(cfg *config.Config, store *dataset.Store, logger zerolog.Logger) error {
	switch cfg.DataSource {
	case "postgres":
		source, err := dataset.OpenPostgres(dataset.SourceConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			DBName:   cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSLMode,
			Table:    cfg.PostgresTable,
		})
		if err != nil {
			return err
		}
		defer source.Close()

		records, err := source.LoadRecords()
		if err != nil {
			return err
		}
		snap := dataset.NewSnapshot(records)
		store.Replace(snap)
		logger.Info().Int("records", snap.Len()).Int("areas", len(snap.Areas())).
			Str("table", cfg.PostgresTable).Msg("dataset loaded from postgres")

	default:
		if cfg.DataFile == "" {
			logger.Warn().Msg("no startup dataset configured, waiting for upload")
			return nil
		}
		records, err := dataset.LoadCSVFile(cfg.DataFile)
		if err != nil {
			return err
		}
		snap := dataset.NewSnapshot(records)
		store.Replace(snap)
		logger.Info().Int("records", snap.Len()).Int("areas", len(snap.Areas())).
			Str("file", cfg.DataFile).Msg("dataset loaded from csv")
	}
	return nil
}
