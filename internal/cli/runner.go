package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todotxt/internal/config"
	"github.com/Makepad-fr/todotxt/internal/logging"
	"github.com/Makepad-fr/todotxt/internal/store/textstore"
	"github.com/Makepad-fr/todotxt/internal/tui"
	"github.com/Makepad-fr/todotxt/internal/ui"
)

const longHelp = `todo
----
todo is a CLI TODO list that keeps your items in a plain
todo.txt file next to the binary.
----
supported commands: add, rm, done, undone, list, clear, browse`

// Options wire Run to its environment.
type Options struct {
	// Dir holds todo.txt and todo.toml; normally the executable's directory.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	// Browse runs the interactive browser; nil uses tui.Run.
	Browse func(tui.Store) error
}

// app carries per-invocation state shared by the subcommands.
type app struct {
	opt   Options
	cfg   config.Config
	store *textstore.Store
	log   *log.Logger

	message  string
	index    string
	logLevel string
	color    string
}

// Run executes one command and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Browse == nil {
		opt.Browse = tui.Run
	}

	a := &app{opt: opt, log: logging.Discard()}
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	a.log.Debug("command failed", "args", strings.Join(args, " "), "err", err)
	a.report(err)
	return exitCode(err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todo <command>",
		Short:         "A CLI TODO list backed by a text file",
		Long:          longHelp,
		Version:       "1.0.0",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return &usageError{msg: "missing command"}
			}
			fmt.Fprintf(a.opt.Stdout, "`%s` is not a valid command, run todo --help for more information.\n", args[0])
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})
	root.SetOut(a.opt.Stdout)
	root.SetErr(a.opt.Stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.message, "message", "M", "", "message for your command, used for 'add'")
	pf.StringVarP(&a.index, "index", "I", "0", "index value for your command, used for 'rm', 'done' and 'undone'")
	pf.StringVar(&a.logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	pf.StringVar(&a.color, "color", "", "color output (auto, always, never)")

	root.AddCommand(
		a.addCmd(),
		a.rmCmd(),
		a.doneCmd(),
		a.undoneCmd(),
		a.listCmd(),
		a.clearCmd(),
		a.browseCmd(),
	)
	return root
}

// setup resolves config and builds the store before any command runs.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opt.Dir)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if err := cfg.Finalize(); err != nil {
		return &usageError{msg: err.Error()}
	}

	ui.SetColorMode(cfg.Color)
	a.cfg = cfg
	a.log = logging.New(a.opt.Stderr, cfg.LogLevel)
	a.store = textstore.New(cfg.DataFile, a.log)
	a.log.Debug("config", "data", cfg.DataFile, "color", cfg.Color)
	return nil
}

// report prints err for the user.
func (a *app) report(err error) {
	var (
		pe *ParseError
		nf *textstore.NotFoundError
		ie *textstore.IOError
	)
	switch {
	case errors.As(err, &pe):
		ui.Fail(a.opt.Stderr, pe.Error())
	case errors.As(err, &nf):
		ui.Fail(a.opt.Stderr, nf.Error())
		ui.Muted(a.opt.Stderr, "Hint: run `todo list` to see valid indexes")
	case errors.As(err, &ie):
		ui.Fail(a.opt.Stderr, "todo.txt: "+ie.Error())
	default:
		ui.Fail(a.opt.Stderr, err.Error())
	}
}

// indexParam takes the index from the first positional argument, or from -I.
func (a *app) indexParam(args []string) (uint64, string, error) {
	raw := a.index
	if len(args) > 0 {
		raw = args[0]
	}
	n, err := ParseIndex(raw)
	return n, raw, err
}

// messageParam joins positional words, or falls back to -M.
func (a *app) messageParam(args []string) string {
	if len(args) > 0 {
		return strings.Join(args, " ")
	}
	return a.message
}
