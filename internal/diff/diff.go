// Package diff classifies entries of the current snapshot against the baseline.
//
// A key counts as changed when it exists in current and either does not exist
// in baseline or holds a different value there. Keys that disappeared from
// current are not reported.
package diff

import "github.com/oakwood-commons/jsonwatch/internal/flatten"

// IsChanged reports whether key is changed in current relative to baseline.
func IsChanged(baseline, current *flatten.Table, key string) bool {
	cur, ok := current.Get(key)
	if !ok {
		return false
	}
	base, ok := baseline.Get(key)
	return !ok || base != cur
}

// ChangedKeys returns the changed keys of current in table order.
func ChangedKeys(baseline, current *flatten.Table) []string {
	var out []string
	current.Each(func(k, v string) {
		if base, ok := baseline.Get(k); !ok || base != v {
			out = append(out, k)
		}
	})
	return out
}

// Summary counts the entries of current by classification.
type Summary struct {
	Total   int // entries in current
	Changed int // changed entries, including Added
	Added   int // entries absent from baseline
}

// Summarize classifies every entry of current.
func Summarize(baseline, current *flatten.Table) Summary {
	s := Summary{Total: current.Len()}
	current.Each(func(k, v string) {
		base, ok := baseline.Get(k)
		switch {
		case !ok:
			s.Added++
			s.Changed++
		case base != v:
			s.Changed++
		}
	})
	return s
}
