// Package cli wires the ttrpg command tree: dice rolls and rule lookups.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cory-johannsen/ttrpg/internal/config"
	"github.com/cory-johannsen/ttrpg/internal/game/dice"
	"github.com/cory-johannsen/ttrpg/internal/observability"
	"github.com/cory-johannsen/ttrpg/internal/open5e"
	"github.com/cory-johannsen/ttrpg/internal/style"
)

// version is overridden at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// app carries state shared by every subcommand of one invocation.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        config.Config
	colorMode  style.Mode
	logger     *zap.Logger

	source     dice.Source
	httpClient *http.Client
}

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithSource replaces the dice randomness source.
func WithSource(src dice.Source) Option {
	return func(a *app) { a.source = src }
}

// WithHTTPClient replaces the HTTP client used for lookups.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *app) { a.httpClient = hc }
}

// NewRootCommand builds the ttrpg command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "ttrpg",
		Short: "A TTRPG CLI tool",
		Long: `ttrpg helps at the table.

  roll    roll dice in [count]d<sides> notation, with advantage or disadvantage
  class   look up a character class on Open5e
  spell   look up a spell on Open5e`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	pf.String("color", "auto", "colorize output: auto, always or never")
	pf.String("format", "text", "lookup output format: text, json or yaml")
	pf.String("log-level", "warn", "minimum log level: debug, info, warn or error")
	bindFlags(a.v, pf, map[string]string{
		"output.color":  "color",
		"output.format": "format",
		"logging.level": "log-level",
	})

	root.AddCommand(
		newRollCommand(a),
		newClassCommand(a),
		newSpellCommand(a),
	)
	return root
}

// Execute runs the command tree against the process arguments and returns
// the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes args and reports any error on stderr as "Error: <description>".
//
// Postcondition: Returns 0 on success, ExitUsage for usage errors and
// ExitFailure for everything else.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	root := NewRootCommand(opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if isUnknownCommand(err) {
		err = usageError(err)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// setup loads configuration and builds the logger once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.ReadFile(a.v, a.configPath); err != nil {
		return err
	}
	cfg, err := config.LoadFromViper(a.v)
	if err != nil {
		return err
	}
	mode, err := style.ParseMode(cfg.Output.Color)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	a.cfg = cfg
	a.colorMode = mode
	a.logger = logger.With(
		zap.String("invocation_id", uuid.NewString()),
		zap.String("command", cmd.Name()),
	)
	a.logger.Debug("configuration loaded",
		zap.String("config_file", a.v.ConfigFileUsed()),
		zap.String("color", cfg.Output.Color),
		zap.String("format", cfg.Output.Format),
	)
	return nil
}

func (a *app) diceSource() dice.Source {
	switch {
	case a.source != nil:
		return a.source
	case a.cfg.Dice.Seed != 0:
		return dice.NewSeededSource(a.cfg.Dice.Seed)
	default:
		return dice.NewCryptoSource()
	}
}

func (a *app) styler(w io.Writer) dice.Styler {
	return style.For(a.colorMode, w)
}

func (a *app) open5eClient() (*open5e.Client, error) {
	return open5e.NewClient(open5e.Config{
		BaseURL:    a.cfg.Open5e.BaseURL,
		Timeout:    a.cfg.Open5e.Timeout,
		HTTPClient: a.httpClient,
		Logger:     a.logger,
	})
}

// bindFlags binds config keys to flag names.
//
// Precondition: every flag name must exist in fs.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic("cli: binding flag " + name + ": " + err.Error())
		}
	}
}
