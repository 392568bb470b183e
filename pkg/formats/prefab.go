package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidPrefab is returned for unparseable prefab documents.
var ErrInvalidPrefab = errors.New("invalid prefab")

// Prefab is a sparse list of placed blocks.
type Prefab struct {
	Version        int           `json:"version"`
	BlockIDVersion int           `json:"blockIdVersion"`
	AnchorX        float32       `json:"anchorX"`
	AnchorY        float32       `json:"anchorY"`
	AnchorZ        float32       `json:"anchorZ"`
	Blocks         []PrefabBlock `json:"blocks"`
	Fluids         []PrefabFluid `json:"fluids"`
}

// PrefabBlock is one placed block. Filler entries mark the extra cells of
// a multi-cell block and carry no geometry of their own.
type PrefabBlock struct {
	X          int                        `json:"x"`
	Y          int                        `json:"y"`
	Z          int                        `json:"z"`
	Name       string                     `json:"name"`
	Rotation   uint16                     `json:"rotation"`
	Filler     *int                       `json:"filler"`
	Components map[string]json.RawMessage `json:"components"`
}

// PrefabFluid is one fluid cell.
type PrefabFluid struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
	Name  string `json:"name"`
	Level uint8  `json:"level"`
}

// ParsePrefab parses a prefab JSON document, dropping filler entries.
func ParsePrefab(data []byte) (*Prefab, error) {
	var p Prefab
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrefab, err)
	}
	kept := p.Blocks[:0]
	for _, b := range p.Blocks {
		if b.Filler != nil {
			continue
		}
		kept = append(kept, b)
	}
	p.Blocks = kept
	return &p, nil
}

// ParsePrefabFile parses a prefab from disk.
func ParsePrefabFile(path string) (*Prefab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prefab: %w", err)
	}
	return ParsePrefab(data)
}
