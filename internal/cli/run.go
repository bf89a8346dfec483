package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/tmaxa/partscript/internal/config"
	"github.com/tmaxa/partscript/internal/harness"
	"github.com/tmaxa/partscript/internal/tracelog"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config  string
	Watch   bool
	TraceDB string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario-file>",
		Short: "Run a scenario and print its snapshot",
		Long: `Run a scenario YAML file: build its world, fire start rules, then
tick the engine while injecting the scenario's steps. Prints the run
snapshot (firings, effects, final states and variables) and reports
assertion failures.

With --watch, the scenario file is re-run whenever it changes, which
makes a quick edit-and-observe loop for script writing.

Example:
  partscript run touch-bump.yaml
  partscript run touch-bump.yaml --config runtime.yaml --watch
  partscript run touch-bump.yaml --trace-db trace.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to runtime config YAML")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "re-run when the scenario file changes")
	cmd.Flags().StringVar(&opts.TraceDB, "trace-db", "", "record firings to a SQLite trace database")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	cfg := config.Default()
	var loader *config.Loader
	if opts.Config != "" {
		var err error
		loader, err = config.NewLoader(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loader.Config()
	}

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	runOnce := func(cfg config.Runtime) error {
		scenario, err := harness.LoadScenario(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}

		result, err := harness.RunWith(scenario, cfg)
		if err != nil {
			return WrapExitError(ExitCommandError, "scenario failed", err)
		}

		if opts.TraceDB != "" {
			if err := writeTrace(opts.TraceDB, result); err != nil {
				return WrapExitError(ExitCommandError, "failed to write trace", err)
			}
		}

		snap := harness.TakeSnapshot(scenario.Name, result)
		if err := out.SuccessJSON(snap); err != nil {
			return err
		}

		if !result.Pass {
			for _, msg := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "assertion failed: %s\n", msg)
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d assertions failed", len(result.Errors)))
		}
		return nil
	}

	if !opts.Watch {
		return runOnce(cfg)
	}

	// Watch mode: re-run on scenario or config changes until interrupted.
	// Failures are reported and watching continues.
	report := func(err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		}
	}
	report(runOnce(cfg))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start watcher", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return WrapExitError(ExitCommandError, "failed to watch scenario file", err)
	}

	reload := make(chan config.Runtime, 1)
	if loader != nil {
		loader.OnChange(func(next config.Runtime) {
			select {
			case reload <- next:
			default:
			}
		})
		stop, err := loader.Watch()
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to watch config", err)
		}
		defer stop()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				slog.Debug("scenario changed, re-running", "path", path)
				report(runOnce(cfg))
			}
		case next := <-reload:
			cfg = next
			slog.Debug("config reloaded, re-running")
			report(runOnce(cfg))
		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
		case <-sig:
			return nil
		}
	}
}

// writeTrace appends a run's firings to a trace database.
func writeTrace(path string, result *harness.Result) error {
	log, err := tracelog.Open(path)
	if err != nil {
		return err
	}
	defer log.Close()

	for _, f := range result.Firings {
		log.Record(f)
	}
	return log.Err()
}
