package opts

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/apifix/pkg/config"
	"github.com/walteh/apifix/pkg/log"
	"github.com/walteh/apifix/pkg/operation"
	"github.com/walteh/apifix/pkg/rewrite"
	"github.com/walteh/apifix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigFile string
	Chdir      string
	Debug      bool

	// Output streams
	Stdout io.Writer
	Stderr io.Writer

	// Config is populated by Setup
	Config *config.Config
}

// Setup configures logging and loads the config. The returned context
// carries both the zerolog logger and the console logger.
func (o *RootOpts) Setup(ctx context.Context) (context.Context, error) {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: o.Stderr}).Level(level).With().Timestamp().Logger()
	ctx = zlog.WithContext(ctx)

	cfg, err := o.loadConfig(ctx)
	if err != nil {
		return ctx, err
	}
	o.Config = cfg

	console := log.New(o.Stdout, zlog, log.WithFileReports(cfg.ReportFiles))
	return log.NewContext(ctx, console), nil
}

func (o *RootOpts) loadConfig(ctx context.Context) (*config.Config, error) {
	if o.ConfigFile == "" {
		cfg := config.Default()
		if o.Chdir != "" {
			cfg.BaseDir = o.Chdir
		}
		return cfg, nil
	}

	path := o.ConfigFile
	if o.Chdir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(o.Chdir, path)
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Operation builds the dependencies shared by the fix and check operations
func (o *RootOpts) Operation(ctx context.Context) (operation.Options, error) {
	if o.Config == nil {
		return operation.Options{}, errors.Errorf("config not loaded")
	}

	rw, err := rewrite.NewRewriter(o.Config.Rule())
	if err != nil {
		return operation.Options{}, errors.Errorf("creating rewriter: %w", err)
	}

	return operation.Options{
		Config:   o.Config,
		Files:    status.NewManager(o.Config.BaseDir),
		Rewriter: rw,
		Logger:   log.FromContext(ctx),
		Runner:   operation.NewRunner(o.Config.Async),
	}, nil
}
