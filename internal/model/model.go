package model

import (
	"errors"
	"fmt"

	"github.com/Faultbox/blockforge/pkg/math"
)

// DefaultMaxNodes is the node cap used when none is given.
const DefaultMaxNodes = 256

const initialCapacity = 8

var (
	ErrNodeCapacity  = errors.New("model: node capacity exceeded")
	ErrInvalidParent = errors.New("model: invalid parent index")
	ErrInvalidNode   = errors.New("model: invalid node")
)

// Model is an arena of nodes with parent links and a name index.
type Model struct {
	Name       string
	GradientID int

	nodes    []Node
	parents  []int
	roots    []int
	byName   map[int]int
	names    *NameTable
	maxNodes int
}

// New creates an empty model. maxNodes <= 0 selects DefaultMaxNodes.
func New(name string, names *NameTable, maxNodes int) *Model {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	if names == nil {
		names = NewNameTable()
	}
	c := min(initialCapacity, maxNodes)
	return &Model{
		Name:       name,
		GradientID: -1,
		nodes:      make([]Node, 0, c),
		parents:    make([]int, 0, c),
		byName:     make(map[int]int),
		names:      names,
		maxNodes:   maxNodes,
	}
}

// Len returns the number of nodes.
func (m *Model) Len() int { return len(m.nodes) }

// MaxNodes returns the hard node cap.
func (m *Model) MaxNodes() int { return m.maxNodes }

// Names returns the table node names are interned in.
func (m *Model) Names() *NameTable { return m.names }

// Node returns a pointer to node i. The pointer is invalidated by AddNode.
func (m *Model) Node(i int) *Node { return &m.nodes[i] }

// Parent returns the parent index of node i, or -1 for roots.
func (m *Model) Parent(i int) int { return m.parents[i] }

// Roots returns the root node indices in insertion order.
func (m *Model) Roots() []int { return m.roots }

// NodeName returns the name of node i.
func (m *Model) NodeName(i int) string { return m.names.Name(m.nodes[i].NameID) }

// FindByName returns the first node carrying the interned name id.
func (m *Model) FindByName(nameID int) (int, bool) {
	i, ok := m.byName[nameID]
	return i, ok
}

// FindNode returns the first node with the given name.
func (m *Model) FindNode(name string) (int, bool) {
	id, ok := m.names.ID(name)
	if !ok {
		return -1, false
	}
	return m.FindByName(id)
}

// grow makes room for n more nodes, doubling up to the cap.
func (m *Model) grow(n int) error {
	need := len(m.nodes) + n
	if need > m.maxNodes {
		return fmt.Errorf("%w: %s needs %d nodes, cap %d", ErrNodeCapacity, m.Name, need, m.maxNodes)
	}
	if need <= cap(m.nodes) {
		return nil
	}
	c := max(cap(m.nodes), 1)
	for c < need {
		c *= 2
	}
	c = min(c, m.maxNodes)

	nodes := make([]Node, len(m.nodes), c)
	copy(nodes, m.nodes)
	parents := make([]int, len(m.parents), c)
	copy(parents, m.parents)
	m.nodes, m.parents = nodes, parents
	return nil
}

// AddNode appends node under parent (-1 for a new root) and returns its
// index. The node's own child list is ignored; children are linked as they
// are added.
func (m *Model) AddNode(node Node, parent int) (int, error) {
	if parent < -1 || parent >= len(m.nodes) {
		return -1, fmt.Errorf("%w: %d of %d", ErrInvalidParent, parent, len(m.nodes))
	}
	if err := node.Validate(); err != nil {
		return -1, err
	}
	if err := m.grow(1); err != nil {
		return -1, err
	}

	node.Children = nil
	idx := len(m.nodes)
	m.nodes = append(m.nodes, node)
	m.parents = append(m.parents, parent)

	if parent == -1 {
		m.roots = append(m.roots, idx)
	} else {
		m.nodes[parent].Children = append(m.nodes[parent].Children, idx)
	}
	if node.NameID >= 0 {
		if _, seen := m.byName[node.NameID]; !seen {
			m.byName[node.NameID] = idx
		}
	}
	return idx, nil
}

// Clone returns a deep copy with identical indices. The name table is
// shared since it only ever grows.
func (m *Model) Clone() *Model {
	c := &Model{
		Name:       m.Name,
		GradientID: m.GradientID,
		nodes:      make([]Node, len(m.nodes), cap(m.nodes)),
		parents:    make([]int, len(m.parents), cap(m.parents)),
		roots:      make([]int, len(m.roots)),
		byName:     make(map[int]int, len(m.byName)),
		names:      m.names,
		maxNodes:   m.maxNodes,
	}
	for i := range m.nodes {
		c.nodes[i] = m.nodes[i].clone()
	}
	copy(c.parents, m.parents)
	copy(c.roots, m.roots)
	for k, v := range m.byName {
		c.byName[k] = v
	}
	return c
}

// AttachOptions adjusts grafted nodes.
type AttachOptions struct {
	AtlasIndex *int       // overwrite every grafted node's slot
	UVOffset   *math.Vec2 // add to every grafted face offset, in pixels
	// Target parents the grafted roots under the first node with this name
	// id. nil, or a name not present, grafts them as roots.
	Target *int
}

// RootAttach grafts as new roots with no remapping.
var RootAttach = AttachOptions{}

// Attach grafts a copy of every node of other onto m. Either every node is
// added or, when the cap would be exceeded, none is.
func (m *Model) Attach(other *Model, opts AttachOptions) error {
	if other == nil || other.Len() == 0 {
		return nil
	}
	if other == m {
		other = m.Clone()
	}
	if len(m.nodes)+other.Len() > m.maxNodes {
		return fmt.Errorf("%w: attaching %s (%d nodes) to %s (%d of %d)",
			ErrNodeCapacity, other.Name, other.Len(), m.Name, len(m.nodes), m.maxNodes)
	}
	if err := m.grow(other.Len()); err != nil {
		return err
	}

	parent := -1
	if opts.Target != nil {
		if target, ok := m.FindByName(*opts.Target); ok {
			parent = target
		}
	}
	for _, root := range other.roots {
		if err := m.attachSubtree(other, root, parent, opts); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) attachSubtree(other *Model, src, parent int, opts AttachOptions) error {
	n := other.nodes[src].clone()
	if other.names != m.names && n.NameID >= 0 {
		n.NameID = m.names.Intern(other.names.Name(n.NameID))
	}
	if opts.AtlasIndex != nil {
		n.AtlasIndex = *opts.AtlasIndex
	}
	if opts.UVOffset != nil {
		offsetFaces(&n, *opts.UVOffset)
	}

	idx, err := m.AddNode(n, parent)
	if err != nil {
		return err
	}
	for _, child := range other.nodes[src].Children {
		if err := m.attachSubtree(other, child, idx, opts); err != nil {
			return err
		}
	}
	return nil
}

// SetAtlasIndex sets the slot of every node.
func (m *Model) SetAtlasIndex(index int) {
	for i := range m.nodes {
		m.nodes[i].AtlasIndex = index
	}
}

// SetGradientID sets the colour ramp of the model and every node.
func (m *Model) SetGradientID(id int) {
	m.GradientID = id
	for i := range m.nodes {
		m.nodes[i].GradientID = id
	}
}

// OffsetUVs shifts every face's source-texture offset by delta pixels.
// Resolved atlas UVs are invalidated and must be resolved again.
func (m *Model) OffsetUVs(delta math.Vec2) {
	for i := range m.nodes {
		offsetFaces(&m.nodes[i], delta)
	}
}

func offsetFaces(n *Node, delta math.Vec2) {
	for f := range n.Faces {
		n.Faces[f].Offset = n.Faces[f].Offset.Add(delta)
		n.Faces[f].UV = UVRect{}
	}
}

// Scale scales the whole model about its origin by s.
func (m *Model) Scale(s float32) {
	for _, r := range m.roots {
		n := &m.nodes[r]
		n.Position = n.Position.Scale(s)
		n.Stretch = n.Stretch.Scale(s)
	}
}

// Walk visits nodes in storage order. Parents always come before their
// children, but after a targeted Attach the order is not pre-order.
func (m *Model) Walk(fn func(index int, node *Node) bool) {
	for i := range m.nodes {
		if !fn(i, &m.nodes[i]) {
			return
		}
	}
}
