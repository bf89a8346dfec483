package parse

import (
	"strings"

	"github.com/tmaxa/partscript/internal/metrics"
	"github.com/tmaxa/partscript/internal/rule"
)

// Context carries the authoring object's properties that influence
// parsing: the declared format version (legacy-compatibility rewrites)
// and the object's included-name aliases (resolved to real ids in emit
// and attach actions).
type Context struct {
	Version         int
	IncludedNameIDs map[string]string
}

// ParseLine parses one raw script line into a Rule. A line without a
// resolvable when-clause returns a rule for which Empty() is true; the
// caller discards it. Parsing never fails.
func ParseLine(line string, ctx Context) *rule.Rule {
	metrics.LinesParsed.Inc()
	r := &rule.Rule{}
	defer func() {
		if r.Empty() {
			metrics.ParseMisses.Inc()
		}
	}()

	line = Normalize(line, ctx.Version)
	line = escapeCommasInQuotes(line)

	sentences := splitNonEmpty(line, ",")

	// The when-clause of sentence one is shared: "when x then a, b, c"
	// is one trigger with three actions.
	whenPart := ""
	for i, sentence := range sentences {
		sentence = strings.ReplaceAll(sentence, commaToken, ",")
		thenPart := ""

		if strings.Contains(sentence, "when_any_state") {
			r.AnyState = true
			sentence = strings.ReplaceAll(sentence, "when_any_state", "when")
		}

		if i == 0 {
			segments := splitStringNonEmpty(sentence, " then ")
			switch {
			case len(segments) == 2:
				whenPart = segments[0]
				thenPart = segments[1]
			case len(segments) >= 3:
				// Only the first " then " is the boundary; the rest is
				// then-clause text (e.g. a type action quoting a script).
				whenPart = segments[0]
				thenPart = strings.Join(segments[1:], " then ")
			}
			whenPart = strings.ReplaceAll(whenPart, "when ", "")
		} else {
			thenPart = sentence
		}

		if whenPart == "" || thenPart == "" {
			continue
		}

		if idx := strings.Index(whenPart, " and is "); idx >= 0 {
			r.ValueFilter = strings.TrimSpace(whenPart[idx+len(" and is "):])
			whenPart = strings.TrimSpace(whenPart[:idx])
		}

		whenWords := strings.Fields(whenPart)
		thenWords := strings.Fields(thenPart)
		if len(whenWords) == 0 || len(thenWords) == 0 {
			continue
		}

		kind, known := rule.EventKindForWord(whenWords[0])
		if !known {
			continue
		}
		r.Event = kind

		if len(whenWords) >= 2 {
			r.EventArg = strings.Join(whenWords[1:], " ")
			if r.Event == rule.OnToldByBody && strings.Contains(r.EventArg, "dialog ") {
				r.EventArg = collapseDialogNames(r.EventArg)
			}
		}

		r.Actions = append(r.Actions, parseActions(thenWords, thenPart, ctx, r.Event)...)
	}

	return r
}

// collapseDialogNames removes the spaces inside recognized dialog names,
// which are internally space-free tokens.
func collapseDialogNames(s string) string {
	for spaced, joined := range rule.DialogSpaceNames {
		s = strings.ReplaceAll(s, spaced, joined)
	}
	return s
}

// splitNonEmpty splits on a separator and drops empty segments.
func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, seg := range strings.Split(s, sep) {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// splitStringNonEmpty splits on a multi-char separator and drops empty
// segments, matching the sentence splitter's semantics.
func splitStringNonEmpty(s, sep string) []string {
	return splitNonEmpty(s, sep)
}
