// Package engine dispatches events against parsed rules.
//
// The engine owns a single logical tick loop. Within a tick it receives
// events, matches them against the rules of each part's current state
// (plus any-state rules), and executes matching actions in script order.
// Variable writes and tells it handles itself, including their fan-out;
// everything with a physical or UI effect goes through the Effects
// collaborator, which the engine never interprets.
//
// Dispatch is single-threaded and deterministic: things in world order,
// rules in script order, actions left to right, and a logical clock
// stamping every firing.
package engine
