// Package exprtext prepares script arithmetic for evaluation.
//
// Script expressions arrive as free text inside "is" actions and
// when-clause value filters. The pipeline splits the text at name and
// symbol boundaries, substitutes variable values, normalizes the
// space-separated two-argument call form ("smaller(a b)"), and hands the
// result to the expression engine. Anything that fails along the way
// evaluates to an invalid value, which conditions treat as false.
package exprtext
