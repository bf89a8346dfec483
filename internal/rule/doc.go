// Package rule provides the canonical data model for parsed Behavior
// Script rules.
//
// This package contains type definitions and clamping constants only.
// All other internal packages import rule; rule imports nothing internal.
// This keeps the data model the foundational layer with no circular
// dependencies.
//
// A Rule is the structured form of one script line: an event trigger plus
// an ordered list of Actions. Actions are a closed tagged union; one
// variant per effect family, so the dispatch runtime can switch
// exhaustively over them.
package rule
