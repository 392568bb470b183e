// Package model holds block and item shapes as an arena of nodes.
//
// Nodes are stored in pre-order, so a node's parent index is always lower
// than its own. Every mutation keeps that ordering, which lets world
// matrices be computed in one forward pass.
package model

import (
	"fmt"

	"github.com/Faultbox/blockforge/pkg/math"
)

// PixelsPerUnit converts model pixel units to block units.
const PixelsPerUnit = 32

// ShapeType is the primitive a node draws.
type ShapeType uint8

const (
	ShapeNone ShapeType = iota
	ShapeBox
	ShapeQuad
)

func (s ShapeType) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeQuad:
		return "quad"
	default:
		return "none"
	}
}

// FaceCount returns the number of texture layouts the shape requires.
func (s ShapeType) FaceCount() int {
	switch s {
	case ShapeBox:
		return 6
	case ShapeQuad:
		return 1
	default:
		return 0
	}
}

// ShadingMode selects how a node is lit.
type ShadingMode uint8

const (
	ShadingStandard ShadingMode = iota
	ShadingFlat
	ShadingFullbright
	ShadingReflective
)

// ParseShadingMode maps the model file spelling to a ShadingMode.
func ParseShadingMode(s string) ShadingMode {
	switch s {
	case "flat":
		return ShadingFlat
	case "fullbright":
		return ShadingFullbright
	case "reflective":
		return ShadingReflective
	default:
		return ShadingStandard
	}
}

// UVRect is a face's texture rectangle in atlas space.
type UVRect struct {
	Min, Max math.Vec2
	Resolved bool
}

// FaceLayout describes how a texture maps onto one face.
type FaceLayout struct {
	Offset  math.Vec2 // pixels in the source texture
	Angle   int       // degrees, multiple of 90
	MirrorX bool
	MirrorY bool
	Hidden  bool

	// AtlasIndex overrides the node's slot for this face; -1 inherits.
	AtlasIndex int
	UV         UVRect
}

// DefaultFaceLayout returns a visible, unresolved layout.
func DefaultFaceLayout() FaceLayout {
	return FaceLayout{AtlasIndex: -1}
}

// Node is one shape in a model. Positional fields are in pixel units.
type Node struct {
	NameID int
	Shape  ShapeType

	Position    math.Vec3
	Orientation math.Quat
	Offset      math.Vec3 // shape centre relative to the node origin
	Stretch     math.Vec3

	ProceduralOffset   math.Vec3
	ProceduralRotation math.Quat

	Size   math.Vec3
	Normal Direction // facing of a quad

	Faces      []FaceLayout
	AtlasIndex int
	GradientID int
	Shading    ShadingMode

	Visible     bool
	DoubleSided bool
	IsPiece     bool

	Children []int
}

// NewNode returns a visible node of the given shape with identity
// transforms and the right number of face layouts.
func NewNode(shape ShapeType) Node {
	n := Node{
		NameID:             -1,
		Shape:              shape,
		Orientation:        math.QuatIdentity(),
		ProceduralRotation: math.QuatIdentity(),
		Stretch:            math.One(),
		Normal:             PosZ,
		AtlasIndex:         -1,
		GradientID:         -1,
		Visible:            true,
	}
	if c := shape.FaceCount(); c > 0 {
		n.Faces = make([]FaceLayout, c)
		for i := range n.Faces {
			n.Faces[i] = DefaultFaceLayout()
		}
	}
	return n
}

// Validate checks the layout count invariant.
func (n *Node) Validate() error {
	if want := n.Shape.FaceCount(); len(n.Faces) != want {
		return fmt.Errorf("%w: %s node has %d face layouts, want %d",
			ErrInvalidNode, n.Shape, len(n.Faces), want)
	}
	return nil
}

// Face returns the layout for direction d, or nil when the shape has no
// face there. Quads answer only for their own normal.
func (n *Node) Face(d Direction) *FaceLayout {
	switch n.Shape {
	case ShapeBox:
		return &n.Faces[d]
	case ShapeQuad:
		if d == n.Normal {
			return &n.Faces[0]
		}
	}
	return nil
}

// clone deep-copies the node's slices.
func (n *Node) clone() Node {
	c := *n
	if n.Faces != nil {
		c.Faces = make([]FaceLayout, len(n.Faces))
		copy(c.Faces, n.Faces)
	}
	if n.Children != nil {
		c.Children = make([]int, len(n.Children))
		copy(c.Children, n.Children)
	}
	return c
}
