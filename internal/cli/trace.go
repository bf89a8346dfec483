package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmaxa/partscript/internal/tracelog"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Tick  int64
	Thing string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <trace-db>",
		Short: "List recorded rule firings",
		Long: `List the firings recorded in a trace database, in execution order.

Example:
  partscript trace trace.db
  partscript trace trace.db --tick 3
  partscript trace trace.db --thing thing-1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := tracelog.Open(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open trace database", err)
			}
			defer log.Close()

			filter := tracelog.All()
			if cmd.Flags().Changed("tick") {
				filter.Tick = opts.Tick
			}
			filter.ThingID = opts.Thing

			firings, err := log.Firings(cmd.Context(), filter)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read firings", err)
			}

			out := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			if opts.Format == "json" {
				return out.SuccessJSON(firings)
			}

			for _, f := range firings {
				arg := ""
				if f.Arg != "" {
					arg = " " + f.Arg
				}
				fmt.Fprintf(cmd.OutOrStdout(), "#%d tick %d  %s/%s state %d  when %s%s  (%d actions)\n",
					f.Seq, f.Tick, f.ThingName, f.PartID, f.State+1, f.Event, arg, f.Actions)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d firings\n", len(firings))
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.Tick, "tick", 0, "only firings from this tick")
	cmd.Flags().StringVar(&opts.Thing, "thing", "", "only firings from this thing id")

	return cmd
}
