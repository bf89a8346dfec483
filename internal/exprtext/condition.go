package exprtext

import (
	"strings"

	"github.com/tmaxa/partscript/internal/vars"
)

// Comparators in match order. Two-character forms come first so "<="
// is not misread as "<" followed by a dangling "=".
var Comparators = []string{
	"<=", ">=", "==", "<>", "!=",
	"=<", "=>", "><",
	"<", ">", "=",
}

// SplitComparator finds the first comparator in a condition and returns
// the trimmed text on each side of it.
func SplitComparator(condition string) (left, op, right string, found bool) {
	index := len(condition)
	for _, candidate := range Comparators {
		at := strings.Index(condition, candidate)
		if at >= 0 && at < index {
			index = at
			op = candidate
		}
	}
	if op == "" {
		return "", "", "", false
	}
	left = strings.TrimSpace(condition[:index])
	right = strings.TrimSpace(condition[index+len(op):])
	return left, op, right, true
}

// Compare applies a comparator to two evaluated values. Either side
// being invalid fails the comparison.
func Compare(op string, a, b float64) bool {
	if IsInvalid(a) || IsInvalid(b) {
		return false
	}
	switch op {
	case "=", "==":
		return a == b
	case "<>", "!=", "><":
		return a != b
	case "<=", "=<":
		return a <= b
	case ">=", "=>":
		return a >= b
	case "<":
		return a < b
	case ">":
		return a > b
	}
	return false
}

// MatchCondition evaluates a variable condition such as "gold >= 5".
// Without a comparator the condition is true when the expression
// evaluates to a valid nonzero value.
func MatchCondition(condition string, resolve Resolver) bool {
	if left, op, right, found := SplitComparator(condition); found {
		return Compare(op, EvalWith(left, resolve), EvalWith(right, resolve))
	}
	value := EvalWith(condition, resolve)
	return !IsInvalid(value) && value != 0
}

// Assignment is a parsed "is" action: a target variable and the
// expression producing its new value.
type Assignment struct {
	Name  string
	Scope vars.Scope
	Expr  string
}

// ParseAssignment splits "name = expression". The target must be a
// plain "=" (not a comparison) naming a valid variable.
func ParseAssignment(expression string) (Assignment, bool) {
	left, op, right, found := SplitComparator(expression)
	if !found || op != "=" || left == "" || right == "" {
		return Assignment{}, false
	}
	name := vars.Normalize(left)
	scope := vars.ScopeOf(name)
	if scope == vars.ScopeNone {
		return Assignment{}, false
	}
	return Assignment{Name: name, Scope: scope, Expr: right}, true
}
