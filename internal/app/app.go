package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/five82/qbtui/internal/config"
	"github.com/five82/qbtui/internal/prefs"
	"github.com/five82/qbtui/internal/qbit"
	"github.com/five82/qbtui/internal/session"
	"github.com/five82/qbtui/internal/ui"
)

// ErrNotTerminal is returned when stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal")

const logFileName = config.AppName + ".log"

// Options configure the qbtui application.
type Options struct {
	// ConfigDir overrides os.UserConfigDir as the parent of the qbtui
	// directory. Empty uses the default.
	ConfigDir string
}

// Run boots the qbtui TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	store, err := config.NewStore(opts.ConfigDir)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	appDir := store.Dir(config.AppName)

	logger, closeLog, err := openLogger(appDir)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := store.Load(config.AppName)
	if err != nil {
		logger.Error().Err(err).Str("path", store.Path(config.AppName)).Msg("load config")
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := prefs.Path(appDir)
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", prefsPath).Msg("load prefs; using defaults")
	}

	logger.Info().
		Str("api_url", cfg.APIURL).
		Bool("configured", cfg.Configured()).
		Msg("starting qbtui")

	disp := session.NewDispatcher(newClient, store, logger)
	err = ui.Run(ui.Options{
		Context:    ctx,
		State:      session.New(cfg),
		Dispatcher: disp,
		Logger:     logger,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  prefsPath,
		LogPath:    filepath.Join(appDir, logFileName),
	})
	if err != nil {
		logger.Error().Err(err).Msg("terminal program failed")
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info().Msg("qbtui stopped")
	return nil
}

func newClient(rec config.Record) (qbit.API, error) {
	return qbit.NewClient(rec)
}

// openLogger appends JSON log lines to <dir>/qbtui.log. The terminal belongs
// to the UI, so nothing is logged to stderr.
func openLogger(dir string) (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, logFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(file).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	return logger, func() { _ = file.Close() }, nil
}
