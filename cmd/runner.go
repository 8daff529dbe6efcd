package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlc/internal/catalog"
	"github.com/desertthunder/mlc/internal/shared"
	"github.com/desertthunder/mlc/internal/tasks"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	loader     *catalog.Loader
	engine     *tasks.ReconcileEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
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
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		output:     opts.Output,
	}
	r.SetLogger(opts.Logger)
	return r
}

// SetLogger replaces the logger used by the runner and rebuilds the loader and engine around it.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.loader = catalog.NewLoader(logger)
	r.engine = tasks.NewReconcileEngine(r.loader, logger)
}

// configure resolves the configuration before any command runs.
//
// The --config flag wins over the path given to [NewRunner]; --debug forces debug logging.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := r.configPath
	if p := cmd.String("config"); p != "" {
		path = p
	}

	config, err := shared.ResolveConfig(path)
	if err != nil {
		return ctx, err
	}
	r.config = config
	r.configPath = path

	level, err := shared.ParseLogLevel(config.Log.Level)
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("debug") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	r.logger.Debug("configuration resolved", "path", path, "level", level, "export_dir", config.Export.Directory)
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		compareCommand, missingCommand, exportCommand, scanCommand, normalizeCommand, configCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// format returns the --format flag, falling back to the configured export format.
func (r *Runner) format(cmd *cli.Command) (string, error) {
	format := cmd.String("format")
	if format == "" {
		format = r.config.Export.Format
	}
	if !slices.Contains(shared.ExportFormats, format) {
		return "", fmt.Errorf("%w: --format %q (must be one of %v)", shared.ErrInvalidFlag, format, shared.ExportFormats)
	}
	return format, nil
}

// colorize reports whether output goes to a terminal.
func (r *Runner) colorize() bool {
	file, ok := r.output.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
