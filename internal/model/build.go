package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/logger"
	"github.com/Faultbox/blockforge/pkg/formats"
	"github.com/Faultbox/blockforge/pkg/math"
)

// Build converts a parsed blocky model into a Model. Nodes are added in
// pre-order. A document larger than maxNodes fails with ErrNodeCapacity
// and no partial model is returned.
func Build(name string, doc *formats.BlockyModel, names *NameTable, maxNodes int) (*Model, error) {
	m := New(name, names, maxNodes)
	for i := range doc.Nodes {
		if err := m.addBlockyNode(&doc.Nodes[i], -1); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Model) addBlockyNode(src *formats.BlockyNode, parent int) error {
	idx, err := m.AddNode(nodeFromBlocky(m.Name, src, m.names), parent)
	if err != nil {
		return err
	}
	for i := range src.Children {
		if err := m.addBlockyNode(&src.Children[i], idx); err != nil {
			return err
		}
	}
	return nil
}

func nodeFromBlocky(model string, src *formats.BlockyNode, names *NameTable) Node {
	shape := ShapeNone
	if src.Shape != nil {
		switch src.Shape.Type {
		case "box":
			shape = ShapeBox
		case "quad":
			shape = ShapeQuad
		}
	}

	n := NewNode(shape)
	n.NameID = names.Intern(src.Name)
	n.Position = vec3(src.Position)
	if src.Orientation != nil {
		o := src.Orientation
		n.Orientation = math.Quat{X: o.X, Y: o.Y, Z: o.Z, W: o.W}
	}

	s := src.Shape
	if s == nil {
		return n
	}
	n.Offset = vec3(s.Offset)
	n.Stretch = vec3(s.StretchOrOne())
	n.Size = vec3(s.Settings.Size)
	n.Visible = s.IsVisible()
	n.DoubleSided = s.DoubleSided
	n.IsPiece = s.Settings.IsPiece
	n.Shading = ParseShadingMode(s.ShadingMode)

	if shape == ShapeQuad {
		n.Normal = PosZ
		if s.Settings.Normal != "" {
			if d, err := ParseDirection(s.Settings.Normal); err == nil {
				n.Normal = d
			} else {
				logger.Debug("bad quad normal", zap.String("model", model), zap.String("normal", s.Settings.Normal))
			}
		}
	}

	if len(s.TextureLayout) == 0 || shape == ShapeNone {
		return n
	}

	// A box face missing from a non-empty layout map is not drawn.
	if shape == ShapeBox {
		for i := range n.Faces {
			n.Faces[i].Hidden = true
		}
	}
	for key, fl := range s.TextureLayout {
		d, err := ParseDirection(key)
		if err != nil {
			logger.Debug("unknown face key", zap.String("model", model), zap.String("face", key))
			continue
		}
		slot := int(d)
		if shape == ShapeQuad {
			if d != NegZ && len(s.TextureLayout) > 1 {
				continue
			}
			slot = 0
		}
		n.Faces[slot] = FaceLayout{
			Offset:     math.Vec2{X: fl.Offset.X, Y: fl.Offset.Y},
			Angle:      fl.Angle,
			MirrorX:    bool(fl.Mirror.X),
			MirrorY:    bool(fl.Mirror.Y),
			Hidden:     fl.Hidden,
			AtlasIndex: -1,
		}
	}
	return n
}

func vec3(v formats.Vec3) math.Vec3 {
	return math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// NewCube returns a one-node model filling a whole block cell. Its faces
// are unresolved until SetFaceRegion is called for each direction.
func NewCube(name string, names *NameTable) *Model {
	m := New(name, names, 1)
	n := NewNode(ShapeBox)
	n.NameID = m.names.Intern(name)
	n.Position = math.Vec3{Y: PixelsPerUnit / 2}
	n.Size = math.Vec3{X: PixelsPerUnit, Y: PixelsPerUnit, Z: PixelsPerUnit}
	// A fresh one-node model can always take its first node.
	_, _ = m.AddNode(n, -1)
	return m
}
