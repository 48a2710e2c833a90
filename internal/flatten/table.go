package flatten

// Table is an insertion-ordered mapping of string keys to string values.
// Setting an existing key replaces its value in place.
type Table struct {
	keys   []string
	values map[string]string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{values: map[string]string{}}
}

// Set inserts or replaces key.
func (t *Table) Set(key, value string) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.values[key]
	return v, ok
}

// Len reports the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns a copy of the keys in table order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Each calls fn for every entry in table order.
func (t *Table) Each(fn func(key, value string)) {
	if t == nil {
		return
	}
	for _, k := range t.keys {
		fn(k, t.values[k])
	}
}

// Equal reports whether both tables hold the same entries in the same order.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for i, k := range t.keys {
		if other.keys[i] != k || other.values[k] != t.values[k] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	c := &Table{
		keys:   t.Keys(),
		values: make(map[string]string, t.Len()),
	}
	t.Each(func(k, v string) { c.values[k] = v })
	return c
}
