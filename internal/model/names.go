package model

import "sync"

// NameTable interns node names to small integer ids. Ids are dense and
// start at zero; -1 means unnamed. Safe for concurrent use.
type NameTable struct {
	mu    sync.RWMutex
	ids   map[string]int
	names []string
}

// NewNameTable returns an empty table.
func NewNameTable() *NameTable {
	return &NameTable{ids: make(map[string]int)}
}

// Intern returns the id for name, assigning one if needed. The empty
// string is never interned.
func (t *NameTable) Intern(name string) int {
	if name == "" {
		return -1
	}
	t.mu.RLock()
	id, ok := t.ids[name]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	id = len(t.names)
	t.ids[name] = id
	t.names = append(t.names, name)
	return id
}

// ID returns the id of an already interned name.
func (t *NameTable) ID(name string) (int, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.ids[name]
	return id, ok
}

// Name returns the string for id, or "" for -1 and unknown ids.
func (t *NameTable) Name(id int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id < 0 || id >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// Len returns the number of interned names.
func (t *NameTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.names)
}
