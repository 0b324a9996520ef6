package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/twinfer/gorex"
	"github.com/twinfer/gorex/internal/config"
	"github.com/twinfer/gorex/internal/logging"
)

// Exit codes follow grep: 0 when something matched, 1 when nothing did and 2
// on any error.
const (
	ExitMatch   = 0
	ExitNoMatch = 1
	ExitError   = 2
)

// errNoMatch ends a command that ran cleanly but selected nothing.
var errNoMatch = errors.New("no match")

// app carries the state shared by all subcommands once the root has loaded
// the configuration.
type app struct {
	cfgFile   string
	verbose   bool
	logFormat string

	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd builds the gorex command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gorex",
		Short: "Full-match a small regular-expression dialect against text",
		Long: `gorex compiles patterns made of literals, "." wildcards, the
quantifiers "*", "?" and "+", "(...)" groups and "\" escapes, and reports
whether whole lines of input match them.

Patterns written as @name are read from the [patterns] table of the
configuration file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML, or YAML by extension)")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides the config file)")

	root.AddCommand(
		newMatchCmd(a),
		newTestCmd(a),
		newExplainCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.Load(a.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(cfg.Log, cmd.ErrOrStderr())
	a.log.Debug("configuration loaded", "file", a.cfgFile, "patterns", len(cfg.Patterns))
	return nil
}

// compile resolves an @name argument and compiles the result.
func (a *app) compile(arg string) (*gorex.Pattern, error) {
	expr, err := a.cfg.Resolve(arg)
	if err != nil {
		return nil, err
	}
	p, err := gorex.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "pattern %q", expr)
	}
	return p, nil
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(ctx context.Context, root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitMatch
	case errors.Is(err, errNoMatch):
		return ExitNoMatch
	default:
		fmt.Fprintf(stderr, "gorex: %v\n", err)
		return ExitError
	}
}
