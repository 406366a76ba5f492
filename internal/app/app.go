package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/fadcv/fadcv/internal/config"
	"github.com/fadcv/fadcv/internal/database"
	"github.com/fadcv/fadcv/internal/export"
	"github.com/fadcv/fadcv/internal/storage"
	"github.com/fadcv/fadcv/internal/workspace"
	"github.com/sirupsen/logrus"
)

// App is the dependency container for the CLI application
type App struct {
	DB        *sql.DB
	Config    *config.Config
	Log       *logrus.Logger
	Store     *storage.Store
	Workspace *workspace.Workspace
	Exporter  *export.Pipeline
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return New(ctx, config.AppConfig)
}

// New wires an App from an explicit configuration
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := storage.New(database.NewKV(db), log.WithField("component", "storage"))
	ws := workspace.Open(ctx, store, cfg.AutosaveDelay)

	exporter := export.New(
		export.NewChromeSurface(chromeOptions(cfg, log)...),
		export.PDFAssembler{Creator: "FadCV"},
		export.WithTimeout(cfg.ExportTimeout),
		export.WithLogger(log.WithField("component", "export")),
	)

	return &App{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Store:     store,
		Workspace: ws,
		Exporter:  exporter,
	}, nil
}

// Close flushes pending edits and closes all resources
func (a *App) Close() error {
	if a.Workspace != nil && !a.Workspace.Close() {
		a.Log.Warn("pending changes could not be saved")
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func chromeOptions(cfg *config.Config, log logrus.FieldLogger) []export.ChromeOption {
	opts := []export.ChromeOption{export.WithChromeLogger(log.WithField("component", "chrome"))}
	if cfg.ChromePath != "" {
		opts = append(opts, export.WithChromePath(cfg.ChromePath))
	}
	if cfg.NoSandbox || os.Geteuid() == 0 {
		opts = append(opts, export.WithNoSandbox())
	}
	if cfg.AutoDownloadBrowser {
		opts = append(opts, export.WithAutoDownload())
	}
	return opts
}

// newLogger writes to stderr so command output on stdout stays clean
func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	return log, nil
}
