package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/bundlecfg/internal/config"
	"github.com/vk/bundlecfg/internal/ctxlog"
	"github.com/vk/bundlecfg/internal/fsutil"
	"github.com/vk/bundlecfg/internal/matcher"
	"github.com/vk/bundlecfg/internal/report"
	"github.com/vk/bundlecfg/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Reports go to outW
// and logs to logW. A ConfigPath naming a directory is replaced by the
// conventional build file inside it. A nil loader is chosen from the build
// file's extension.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	path, err := fsutil.ResolveConfigPath(appConfig.ConfigPath)
	if err != nil {
		return nil, err
	}
	if path != appConfig.ConfigPath {
		logger.Debug("Discovered build file in directory.", "dir", appConfig.ConfigPath, "file", path)
		resolved := *appConfig
		resolved.ConfigPath = path
		appConfig = &resolved
	}

	if loader == nil {
		if loader, err = LoaderFor(appConfig.ConfigPath); err != nil {
			return nil, err
		}
	}

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		loader: loader,
	}, nil
}

// Resolve loads the build file and resolves it.
func (a *App) Resolve(ctx context.Context) (*resolver.ResolvedConfig, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	raw, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into raw model.", "path", a.config.ConfigPath)

	cfg, err := resolver.Resolve(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", a.config.ConfigPath, err)
	}
	return cfg, nil
}

// Run resolves the build file and writes the report.
func (a *App) Run(ctx context.Context) error {
	cfg, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Configuration resolved.",
		"path", a.config.ConfigPath,
		"entries", len(cfg.Entries()),
		"rules", len(cfg.Rules()),
	)

	// Repeated -match paths, including ones differing only in separators,
	// share a cache slot.
	m, err := matcher.New(cfg, len(a.config.Matches))
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(a.config.Format)
	if err != nil {
		return err
	}
	color, err := a.colorMode(cfg)
	if err != nil {
		return err
	}

	view := report.NewView(cfg, m, a.config.Matches)
	if err := report.Render(a.outW, view, format, color); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	a.logger.Debug("Report written.", "format", format, "matches", len(a.config.Matches))
	return nil
}

// colorMode resolves "auto" against the dev-server stats.color option.
func (a *App) colorMode(cfg *resolver.ResolvedConfig) (report.ColorMode, error) {
	mode, err := parseColor(a.config.Color)
	if err != nil {
		return 0, err
	}
	if mode == report.ColorAuto && !cfg.DevServer().Enabled("stats.color") {
		return report.ColorNever, nil
	}
	return mode, nil
}
