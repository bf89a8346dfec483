// Package tracelog persists rule firings to a SQLite database so runs
// can be inspected after the fact. The log implements engine.Tracer and
// is safe for use from a single engine goroutine.
package tracelog
