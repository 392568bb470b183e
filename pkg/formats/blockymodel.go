package formats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Blocky model errors.
var (
	ErrEmptyModel   = errors.New("blocky model has no nodes")
	ErrInvalidModel = errors.New("invalid blocky model")
)

// BlockyModel is a hierarchical box/quad model document.
type BlockyModel struct {
	Lod   string       `json:"lod"`
	Nodes []BlockyNode `json:"nodes"`
}

// BlockyNode is one node of a blocky model; children nest recursively.
type BlockyNode struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Position    Vec3         `json:"position"`
	Orientation *Quat        `json:"orientation"`
	Shape       *BlockyShape `json:"shape"`
	Children    []BlockyNode `json:"children"`
}

// BlockyShape is the drawable part of a node.
type BlockyShape struct {
	Type          string                `json:"type"` // "box", "quad" or "none"
	Offset        Vec3                  `json:"offset"`
	Stretch       *Vec3                 `json:"stretch"`
	Settings      ShapeSettings         `json:"settings"`
	TextureLayout map[string]FaceLayout `json:"textureLayout"`
	Visible       *bool                 `json:"visible"`
	DoubleSided   bool                  `json:"doubleSided"`
	ShadingMode   string                `json:"shadingMode"`
	Unwrap        string                `json:"unwrapMode"`
}

// ShapeSettings holds shape dimensions.
type ShapeSettings struct {
	Size    Vec3   `json:"size"`
	Normal  string `json:"normal"` // quads only, e.g. "+Y"
	IsPiece bool   `json:"isPiece"`
}

// FaceLayout places a texture on one face.
type FaceLayout struct {
	Offset Vec2   `json:"offset"`
	Mirror Mirror `json:"mirror"`
	Angle  int    `json:"angle"`
	Hidden bool   `json:"hidden"`
}

// Mirror flags per texture axis.
type Mirror struct {
	X Flag `json:"x"`
	Y Flag `json:"y"`
}

// IsVisible reports whether the shape is drawn; absent means visible.
func (s *BlockyShape) IsVisible() bool {
	return s.Visible == nil || *s.Visible
}

// StretchOrOne returns the stretch, defaulting to (1,1,1).
func (s *BlockyShape) StretchOrOne() Vec3 {
	if s.Stretch == nil {
		return Vec3{1, 1, 1}
	}
	return *s.Stretch
}

// ParseBlockyModel parses a .blockymodel JSON document.
func ParseBlockyModel(data []byte) (*BlockyModel, error) {
	var m BlockyModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if len(m.Nodes) == 0 {
		return nil, ErrEmptyModel
	}
	return &m, nil
}

// ParseBlockyModelFile parses a blocky model from disk.
func ParseBlockyModelFile(path string) (*BlockyModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading blocky model: %w", err)
	}
	return ParseBlockyModel(data)
}

// NodeCount returns the total number of nodes, including nested children.
func (m *BlockyModel) NodeCount() int {
	var count func([]BlockyNode) int
	count = func(nodes []BlockyNode) int {
		n := len(nodes)
		for i := range nodes {
			n += count(nodes[i].Children)
		}
		return n
	}
	return count(m.Nodes)
}
