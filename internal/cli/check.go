package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmaxa/partscript/internal/parse"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Version int
}

// CheckReport summarizes a script check.
type CheckReport struct {
	Lines     int          `json:"lines"`
	Rules     int          `json:"rules"`
	Discarded []BadLine    `json:"discarded,omitempty"`
}

// BadLine is one line that produced no rule.
type BadLine struct {
	Number int    `json:"number"`
	Line   string `json:"line"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <script-file>",
		Short: "Check a script file for lines that parse to nothing",
		Long: `Parse every line of a script file and report the ones that yield no
rule. Lines without a recognizable trigger are dropped silently at
runtime; check makes the drops visible.

Exits 1 when any line is discarded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines("", args, cmd)
			if err != nil {
				return err
			}

			out := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			report := CheckReport{Lines: len(lines)}
			for i, line := range lines {
				r := parse.ParseLine(line, parse.Context{Version: opts.Version})
				if r.Empty() {
					report.Discarded = append(report.Discarded, BadLine{Number: i + 1, Line: line})
					continue
				}
				report.Rules++
			}

			if opts.Format == "json" {
				if err := out.SuccessJSON(report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%d lines, %d rules\n", report.Lines, report.Rules)
				for _, bad := range report.Discarded {
					fmt.Fprintf(cmd.OutOrStdout(), "line %d discarded: %s\n", bad.Number, bad.Line)
				}
			}

			if len(report.Discarded) > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d of %d lines discarded", len(report.Discarded), report.Lines))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Version, "script-version", 9, "script format version")

	return cmd
}
