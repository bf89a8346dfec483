package vars

import (
	"sort"
	"strings"
	"sync"
)

// Scope classifies a variable name by its prefix.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeThing
	ScopeArea
	ScopePerson
)

// Name prefixes for the non-thing scopes. The prefix stays part of the
// stored key so expressions can reference both "gold" and "area.gold"
// without ambiguity.
const (
	AreaPrefix   = "area."
	PersonPrefix = "person."
)

// reservedNames can never be variables; they are script syntax.
var reservedNames = map[string]bool{
	"false": true, "true": true, "is": true, "when": true,
	"then": true, "and": true, "or": true, "if": true, "not": true,
}

// Reserved reports whether a token is script syntax rather than a
// possible variable name.
func Reserved(name string) bool { return reservedNames[name] }

// Normalize trims and lowercases a variable name and strips characters
// reserved for wire framing.
func Normalize(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, ";", "")
	name = strings.ReplaceAll(name, "|", "")
	return name
}

const validNameChars = "abcdefghijklmnopqrstuvwxyz0123456789_."

// ScopeOf validates a normalized name and reports its scope. Names must
// start with a letter, contain only lowercase letters, digits,
// underscores and at most one scoping dot, and not be reserved.
func ScopeOf(name string) Scope {
	if name == "" || Reserved(name) {
		return ScopeNone
	}
	if name[0] < 'a' || name[0] > 'z' {
		return ScopeNone
	}
	for _, r := range name {
		if !strings.ContainsRune(validNameChars, r) {
			return ScopeNone
		}
	}
	if strings.Contains(name, ".") {
		parts := strings.Split(name, ".")
		if len(parts) != 2 {
			return ScopeNone
		}
		switch parts[0] {
		case "area":
			return ScopeArea
		case "person":
			return ScopePerson
		}
		return ScopeNone
	}
	return ScopeThing
}

// Store is one scope's worth of variables. It is safe for concurrent
// readers; writes during dispatch come from the single engine goroutine.
type Store struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewStore returns an empty variable store.
func NewStore() *Store {
	return &Store{values: make(map[string]float64)}
}

// Get returns a variable's value, or zero when absent. The second result
// reports presence for callers that distinguish "0" from "never set".
func (s *Store) Get(name string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok
}

// Set writes a variable. It reports whether the stored value changed,
// which drives change fan-out.
func (s *Store) Set(name string, value float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, existed := s.values[name]
	if existed && old == value {
		return false
	}
	s.values[name] = value
	return true
}

// Reset drops every variable in the store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]float64)
}

// Len returns the number of stored variables.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Names returns the stored variable names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the store's contents, for tracing and test harnesses.
func (s *Store) Snapshot() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}
