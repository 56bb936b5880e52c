package textflow

// Node is a styled text content node. A tree of Nodes is the input to
// [Engine.Layout]. Leaf nodes carry text, interior nodes carry nested
// spans; a node with both Text and Children is treated as an interior
// node and its Text is ignored.
//
// Layout only reads the tree, it never mutates it.
type Node struct {
	// Text is the raw text content of a leaf node.
	Text string

	// Properties holds the node's own CSS text properties. Properties
	// not explicitly set are inherited from the parent during layout.
	Properties Properties

	// Transforms assigns explicit per-character positions, offsets and
	// rotations. Entry i applies to the i-th addressable character of
	// the node's subtree; excess characters inherit only the rotation
	// of the last entry.
	Transforms []CharTransform

	// TextPath anchors this subtree to a path. Only honored on direct
	// children of the root; nested text paths are unsupported.
	TextPath *TextPath

	// TextLength forces the subtree's laid-out extent to the given
	// length. Nil means no adjustment.
	TextLength *float64

	// LengthAdjust selects how TextLength is achieved.
	LengthAdjust LengthAdjust

	Children []*Node
}

// IsLeaf reports whether the node carries text content directly.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// TextPath describes a path anchor for a text subtree.
type TextPath struct {
	Path *Path

	// StartOffset shifts the text's start point along the path. When
	// Percent is set it is a fraction of the path length in percent,
	// otherwise an absolute distance.
	StartOffset float64
	Percent     bool

	Method TextPathMethod
	Side   TextPathSide
}

// offset returns the resolved start offset in path units.
func (tp *TextPath) offset(pathLength float64) float64 {
	if tp.Percent {
		return tp.StartOffset / 100 * pathLength
	}
	return tp.StartOffset
}

// CharTransform is one explicit per-character transform entry. Nil
// fields are unset. X and Y are absolute document coordinates, DX and
// DY relative offsets, Rotate an angle in degrees.
type CharTransform struct {
	X, Y   *float64
	DX, DY *float64
	Rotate *float64
}

// HasRelativeOffset reports whether DX or DY is set.
func (t CharTransform) HasRelativeOffset() bool { return t.DX != nil || t.DY != nil }

// AbsolutePos reports whether X or Y is set, which starts a new
// anchored chunk.
func (t CharTransform) AbsolutePos() bool { return t.X != nil || t.Y != nil }

// Float returns a pointer to v, for building CharTransform literals.
func Float(v float64) *float64 { return &v }

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}
