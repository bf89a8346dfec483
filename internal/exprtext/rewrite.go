package exprtext

import (
	"strconv"
	"strings"

	"github.com/tmaxa/partscript/internal/vars"
)

// Resolver looks up a variable's current value by its normalized name.
// Absent names resolve to zero.
type Resolver func(name string) (float64, bool)

const nameChars = "abcdefghijklmnopqrstuvwxyz0123456789_."

// AddSpaces inserts spaces at every boundary between name characters and
// everything else, and around parentheses, so the expression splits
// cleanly into tokens.
func AddSpaces(expression string) string {
	var b strings.Builder
	inName := false
	for _, r := range expression {
		isNameChar := strings.ContainsRune(nameChars, r)
		if isNameChar != inName {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		inName = isNameChar
	}

	s := b.String()
	s = strings.ReplaceAll(s, "(", "( ")
	s = strings.ReplaceAll(s, ")", ") ")
	s = strings.ReplaceAll(s, "  ", " ")
	return strings.TrimSpace(s)
}

// Substitute replaces variable tokens with their values. A token is a
// variable when it starts with a letter, is not followed by an opening
// parenthesis (a call), and is not script syntax. Unknown variables
// substitute as zero.
func Substitute(expression string, resolve Resolver) string {
	expression = AddSpaces(expression)
	parts := strings.Fields(expression)

	var b strings.Builder
	for i, part := range parts {
		if len(part) > 0 && isLetter(part[0]) {
			next := ""
			if i+1 < len(parts) {
				next = parts[i+1]
			}
			isCall := next == "("
			if !isCall && !vars.Reserved(part) {
				value := 0.0
				if v, ok := resolve(part); ok {
					value = v
				}
				part = strconv.FormatFloat(value, 'f', -1, 64)
			}
		}
		b.WriteString(part)
		b.WriteByte(' ')
	}

	s := b.String()
	s = strings.ReplaceAll(s, " + -", " -")
	s = strings.ReplaceAll(s, " (", "(")
	s = strings.ReplaceAll(s, "( ", "(")
	s = strings.ReplaceAll(s, " )", ")")
	s = strings.ReplaceAll(s, ") ", ")")
	s = strings.ReplaceAll(s, "  ", " ")
	s = strings.TrimSpace(s)

	return rewriteTwoArgCalls(s)
}

// rewriteTwoArgCalls turns the script's space-separated two-argument call
// form, "smaller(23 17)", into the standard comma form "smaller(23, 17)".
// After cleanup such a call splits into exactly two tokens, the second
// carrying the closing parenthesis.
func rewriteTwoArgCalls(expression string) string {
	parts := strings.Fields(expression)

	var b strings.Builder
	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.Contains(part, "(") && i+1 < len(parts) && strings.Contains(parts[i+1], ")") {
			combined := part + " " + parts[i+1]
			combined = strings.ReplaceAll(combined, "(", ";")
			combined = strings.ReplaceAll(combined, ")", "")
			combined = strings.ReplaceAll(combined, " ", ";")

			nameAndParams := splitNonEmpty(combined, ";")
			if len(nameAndParams) == 3 {
				part = nameAndParams[0] + "(" + nameAndParams[1] + ", " + nameAndParams[2] + ")"
				i++
			}
		}

		b.WriteString(part)
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, seg := range strings.Split(s, sep) {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
