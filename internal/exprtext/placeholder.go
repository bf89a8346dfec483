package exprtext

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Variables groups the variable scopes visible to placeholder expansion
// in display text. Nil maps behave as empty scopes.
type Variables struct {
	Thing  map[string]float64
	Area   map[string]float64
	Person map[string]float64
}

var (
	singlePlaceholders  = regexp.MustCompile(`\[([^\]]+) value\]`)
	listingPlaceholders = regexp.MustCompile(`\[([^\]]+) values\]`)
)

// ExpandPlaceholders replaces the bracketed variable placeholders in
// spoken or written text: "[gold value]" becomes the variable's value,
// and "[thing values]", "[area values]" and "[person values]" become a
// listing of every variable in that scope. Singles naming no known
// variable become "0"; unknown listings vanish.
func ExpandPlaceholders(s string, v Variables) string {
	if !strings.Contains(strings.ToLower(s), "value") {
		return s
	}

	s = strings.ReplaceAll(s, "[thing values]", listing(v.Thing))
	s = strings.ReplaceAll(s, "[area values]", listing(v.Area))
	s = strings.ReplaceAll(s, "[person values]", listing(v.Person))
	s = listingPlaceholders.ReplaceAllString(s, "")

	for _, scope := range []map[string]float64{v.Thing, v.Area, v.Person} {
		for name, value := range scope {
			s = strings.ReplaceAll(s, "["+name+" value]", formatValue(value))
		}
	}
	return singlePlaceholders.ReplaceAllString(s, "0")
}

// listing renders a scope as "NAME: VALUE" lines in name order.
func listing(scope map[string]float64) string {
	names := make([]string, 0, len(scope))
	for name := range scope {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(strings.ToUpper(name))
		b.WriteString(": ")
		b.WriteString(formatValue(scope[name]))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
