// Package parse turns raw Behavior Script lines into rule.Rule values.
//
// Parsing is deliberately permissive: scripts are free text written by
// non-programmers, so malformed input never produces an error. A line
// whose when-clause cannot be resolved yields no rule at all; a malformed
// optional argument is dropped while the rest of the action survives.
//
// The pipeline is order-sensitive:
//
//  1. Normalize: case folding, legacy phrase rewrites, multi-word keyword
//     collapsing, comma escaping inside quoted say payloads.
//  2. Rule split: sentences on commas, when/then on " then ", value
//     filter on " and is ", any-state marker.
//  3. Action parse: per-keyword grammars from a closed dispatch table.
//
// Reordering these steps changes parse results for edge-case inputs, so
// the order is locked in by tests.
package parse
