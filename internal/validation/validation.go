// Package validation decides field-level and cross-field validity of the
// admin aggregates. Rules are declared as ordered predicate+message pairs per
// field; every rule is evaluated unconditionally and all failing messages are
// collected, so a single field can report several problems at once.
//
// Referential checks rely on the Exists flag carried on each referenced
// object. The flag is set by the hydration layer when it could not resolve an
// ID to a live record; the validator presents those flags, it does not query
// the store itself.
package validation

import "errors"

// ErrNilSubject is returned when a validator is handed a nil aggregate.
// Invalid data never produces an error, only messages.
var ErrNilSubject = errors.New("validation: nil subject")

// rule is a single independent check against a subject.
type rule[T any] struct {
	field   string
	message string
	ok      func(T) bool
}

// Result holds validation messages keyed by field, preserving the order in
// which fields first failed.
type Result struct {
	fields []string
	msgs   map[string][]string
}

func newResult() *Result {
	return &Result{msgs: make(map[string][]string)}
}

func (r *Result) add(field, message string) {
	if _, seen := r.msgs[field]; !seen {
		r.fields = append(r.fields, field)
	}
	r.msgs[field] = append(r.msgs[field], message)
}

// Valid reports whether no rule failed.
func (r *Result) Valid() bool {
	return len(r.msgs) == 0
}

// Fields returns the failed fields in first-failure order.
func (r *Result) Fields() []string {
	return append([]string(nil), r.fields...)
}

// Field returns all messages recorded for one field.
func (r *Result) Field(name string) []string {
	return append([]string(nil), r.msgs[name]...)
}

// Messages returns every message in field order.
func (r *Result) Messages() []string {
	var out []string
	for _, f := range r.fields {
		out = append(out, r.msgs[f]...)
	}
	return out
}

// ByField returns a copy of the message map for serialization.
func (r *Result) ByField() map[string][]string {
	out := make(map[string][]string, len(r.msgs))
	for f, msgs := range r.msgs {
		out[f] = append([]string(nil), msgs...)
	}
	return out
}

// run evaluates every rule against the subject. No short-circuiting: later
// rules for a field run even when an earlier one failed.
func run[T any](subject T, rules []rule[T]) *Result {
	res := newResult()
	for _, rl := range rules {
		if !rl.ok(subject) {
			res.add(rl.field, rl.message)
		}
	}
	return res
}

// noDuplicateIDs reports whether the id sequence contains no repeats.
// Empty sequences pass.
func noDuplicateIDs(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
