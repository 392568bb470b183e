package world

import "github.com/Faultbox/blockforge/pkg/formats"

// IDMap resolves packed block ids to type names.
type IDMap struct {
	names map[uint16]string
}

// NewIDMap builds a map from block list entries. Ids above 16 bits cannot
// occur in a PackedBlock and are ignored.
func NewIDMap(entries []formats.BlockEntry) *IDMap {
	m := &IDMap{names: make(map[uint16]string, len(entries))}
	for _, e := range entries {
		if e.ID > 0xFFFF {
			continue
		}
		m.names[uint16(e.ID)] = e.Name
	}
	return m
}

// BlockName returns the type name of b, or "" when unknown.
func (m *IDMap) BlockName(b PackedBlock) string {
	if m == nil {
		return ""
	}
	return m.names[b.ID()]
}

// Len returns the number of known ids.
func (m *IDMap) Len() int { return len(m.names) }
