package textflow

// resolvedTransform is the per-character outcome of walking the tree's
// explicit transform lists. Nil fields are unset.
type resolvedTransform struct {
	x, y     *float64
	dx, dy   *float64
	rotate   *float64
	newChunk bool
}

func (t *resolvedTransform) absolute() bool { return t.x != nil || t.y != nil }

// resolveTransforms assigns every addressable character its explicit
// transform. Transform lists apply positionally over the addressable
// characters of a node's subtree, parents first so nested spans
// override the fields they set. Characters past the end of a list
// carry only the most recent rotation forward.
//
// The first addressable character of a path-anchored subtree has its
// inline-axis position forced to zero and its cross-axis position
// cleared, so path offsets are not applied twice.
func resolveTransforms(root *Node, c *collection, addressable []bool, horizontal bool) []resolvedTransform {
	out := make([]resolvedTransform, len(c.text))
	var walk func(n *Node)
	walk = func(n *Node) {
		sp := c.spans[n]
		entry := 0
		var carryRotate *float64
		for i := sp.start; i < sp.end; i++ {
			if !addressable[i] {
				continue
			}
			if entry < len(n.Transforms) {
				t := n.Transforms[entry]
				entry++
				if t.X != nil {
					out[i].x = t.X
				}
				if t.Y != nil {
					out[i].y = t.Y
				}
				if t.DX != nil {
					out[i].dx = t.DX
				}
				if t.DY != nil {
					out[i].dy = t.DY
				}
				if t.Rotate != nil {
					out[i].rotate = t.Rotate
					carryRotate = t.Rotate
				}
			} else if carryRotate != nil && out[i].rotate == nil {
				out[i].rotate = carryRotate
			}
		}
		for _, child := range n.Children {
			walk(child)
		}
		if n.TextPath != nil {
			c.clearPathStart(n, out, addressable, horizontal)
		}
	}
	walk(root)

	// The first character always starts the first anchored chunk at
	// the origin.
	for i := range out {
		if addressable[i] {
			zero := 0.0
			if out[i].x == nil {
				out[i].x = &zero
			}
			if out[i].y == nil {
				out[i].y = &zero
			}
			break
		}
	}

	for i := range out {
		if out[i].absolute() {
			out[i].newChunk = true
		}
	}
	return out
}

// clearPathStart resets the explicit position of the first addressable
// character in a path-anchored subtree.
func (c *collection) clearPathStart(n *Node, out []resolvedTransform, addressable []bool, horizontal bool) {
	sp := c.spans[n]
	for i := sp.start; i < sp.end; i++ {
		if !addressable[i] {
			continue
		}
		zero := 0.0
		if horizontal {
			out[i].x = &zero
			out[i].y = nil
		} else {
			out[i].y = &zero
			out[i].x = nil
		}
		return
	}
}
