package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/enroll/internal/repositories"
	"github.com/desertthunder/enroll/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	store      repositories.Store
	logger     *log.Logger
	input      io.Reader
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When Store is set it is used regardless of the configured backend.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      repositories.Store
	Logger     *log.Logger
	Input      io.Reader
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		store:      opts.Store,
		logger:     opts.Logger,
		input:      opts.Input,
		output:     opts.Output,
	}
}

// SetLogger replaces the logger used by subsequent actions.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		menuCommand, listCommand, addCommand, exportCommand, tuiCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before resolves the configuration shared by every command.
//
// A missing config file is not an error: defaults plus environment overrides are used instead.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.configPath = cmd.String("config")

	config, err := shared.LoadConfig(r.configPath)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		config = shared.DefaultConfig()
		if err := shared.ApplyEnv(config); err != nil {
			return ctx, err
		}
	case err != nil:
		return ctx, fmt.Errorf("failed to load config: %w", err)
	}

	if backend := cmd.String("backend"); backend != "" {
		config.Storage.Backend = backend
		if err := config.Validate(); err != nil {
			return ctx, err
		}
	}

	if err := shared.SetLogLevel(r.logger, config.Log.Level); err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}

	r.config = config
	r.logger.Debug("configuration resolved", "backend", config.Storage.Backend, "config", r.configPath)
	return ctx, nil
}

// openStore returns the configured store and a function releasing it.
func (r *Runner) openStore() (repositories.Store, func() error, error) {
	noop := func() error { return nil }
	if r.store != nil {
		return r.store, noop, nil
	}

	switch r.config.Storage.Backend {
	case shared.BackendSQLite:
		repo, err := repositories.OpenSQLiteRepository(r.config.Database)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return repositories.NewFileRepository(repositories.DefaultFile), noop, nil
	}
}

// withStore runs fn against the configured store and closes it afterwards.
func (r *Runner) withStore(fn func(repositories.Store) error) error {
	store, closeFn, err := r.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			r.logger.Warn("failed to close store", "location", store.Location(), "error", err)
		}
	}()

	return fn(store)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
