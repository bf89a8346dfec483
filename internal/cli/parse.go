package cli

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmaxa/partscript/internal/parse"
	"github.com/tmaxa/partscript/internal/rule"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	Version int
	Line    string
}

// ParsedLine is the structured output for one script line.
type ParsedLine struct {
	Line        string         `json:"line"`
	Event       string         `json:"event,omitempty"`
	EventArg    string         `json:"event_arg,omitempty"`
	ValueFilter string         `json:"value_filter,omitempty"`
	AnyState    bool           `json:"any_state,omitempty"`
	Actions     []ParsedAction `json:"actions,omitempty"`

	// Discarded marks lines that produced no rule.
	Discarded bool `json:"discarded,omitempty"`
}

// ParsedAction is one action with its kind made explicit.
type ParsedAction struct {
	Kind   string `json:"kind"`
	Fields any    `json:"fields,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse [script-file]",
		Short: "Parse script lines into rules",
		Long: `Parse behavior script lines and print the resulting rules as JSON.

Reads lines from the given file, from --line, or from stdin.

Example:
  partscript parse script.txt
  partscript parse --line "when touched then play bump, become 2"
  echo "when told hi then say hello" | partscript parse`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := readLines(opts.Line, args, cmd)
			if err != nil {
				return err
			}

			out := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}

			parsed := make([]ParsedLine, 0, len(lines))
			for _, line := range lines {
				parsed = append(parsed, parseOne(line, opts.Version))
			}
			return out.SuccessJSON(parsed)
		},
	}

	cmd.Flags().IntVar(&opts.Version, "script-version", 9, "script format version")
	cmd.Flags().StringVar(&opts.Line, "line", "", "parse a single line instead of a file")

	return cmd
}

// parseOne parses one line into its output form.
func parseOne(line string, version int) ParsedLine {
	r := parse.ParseLine(line, parse.Context{Version: version})
	if r.Empty() {
		return ParsedLine{Line: line, Discarded: true}
	}

	out := ParsedLine{
		Line:        line,
		Event:       r.Event.String(),
		EventArg:    r.EventArg,
		ValueFilter: r.ValueFilter,
		AnyState:    r.AnyState,
	}
	for _, act := range r.Actions {
		out.Actions = append(out.Actions, ParsedAction{
			Kind:   string(act.Kind()),
			Fields: actionFields(act),
		})
	}
	return out
}

// actionFields flattens an action to a map, dropping zero-value noise
// only where the encoder already does.
func actionFields(act rule.Action) any {
	raw, err := json.Marshal(act)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// readLines collects script lines from --line, a file argument, or stdin.
func readLines(single string, args []string, cmd *cobra.Command) ([]string, error) {
	if single != "" {
		return []string{single}, nil
	}

	var scanner *bufio.Scanner
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open script file", err)
		}
		defer f.Close()
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(cmd.InOrStdin())
	}

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read script lines", err)
	}
	if len(lines) == 0 {
		return nil, NewExitError(ExitCommandError, "no script lines to parse")
	}
	return lines, nil
}
