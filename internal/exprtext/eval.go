package exprtext

import (
	"math"

	"github.com/expr-lang/expr"
)

// Invalid is the result of an expression that could not be evaluated.
// Conditions treat it as false; assignments of it are discarded.
var Invalid = math.NaN()

// IsInvalid reports whether a value is the invalid sentinel.
func IsInvalid(v float64) bool { return math.IsNaN(v) }

// evalEnv exposes the script's function vocabulary. floor, ceil, round
// and abs come with the expression engine; the two-argument pair
// smaller/bigger is ours.
var evalEnv = map[string]any{
	"smaller": func(a, b any) float64 { return math.Min(toFloat(a), toFloat(b)) },
	"bigger":  func(a, b any) float64 { return math.Max(toFloat(a), toFloat(b)) },
}

// Eval evaluates a substituted expression and returns its numeric value,
// or Invalid when the text is not a valid expression.
func Eval(expression string) float64 {
	if expression == "" {
		return Invalid
	}
	result, err := expr.Eval(expression, evalEnv)
	if err != nil {
		return Invalid
	}
	value, ok := toFloatOK(result)
	if !ok {
		return Invalid
	}
	return value
}

// EvalWith substitutes variables and evaluates in one step.
func EvalWith(expression string, resolve Resolver) float64 {
	return Eval(Substitute(expression, resolve))
}

func toFloat(v any) float64 {
	f, _ := toFloatOK(v)
	return f
}

func toFloatOK(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
