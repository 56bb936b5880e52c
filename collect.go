package textflow

// origin maps a flattened rune back to its source node and the rune
// index inside that node's text. Synthetic bidi controls have a nil
// node and index -1.
type origin struct {
	node  *Node
	index int
}

// span is a half-open rune range in the flattened text.
type span struct {
	start, end int
}

func (s span) length() int { return s.end - s.start }

// styleRun is a contiguous flattened range sharing one style snapshot.
type styleRun struct {
	span
	props   Properties
	node    *Node
	control bool
}

// collection is the collector's output: the flattened text, its style
// runs, the back-mapping to source nodes, and the rune span of every
// node's subtree.
type collection struct {
	text    []rune
	origins []origin
	runs    []styleRun
	spans   map[*Node]span
}

// runAt returns the style run covering flattened index i.
func (c *collection) runAt(i int) *styleRun {
	for r := range c.runs {
		if i >= c.runs[r].start && i < c.runs[r].end {
			return &c.runs[r]
		}
	}
	return nil
}

// propsAt returns the effective properties at flattened index i.
func (c *collection) propsAt(i int) Properties {
	if r := c.runAt(i); r != nil {
		return r.props
	}
	return DefaultProperties()
}

// bidiControls returns the opening and closing control characters for
// a unicode-bidi value, empty when no isolation is needed.
func bidiControls(bidi UnicodeBidi, dir Direction) (open, close string) {
	const (
		lre, rle = "‪", "‫"
		lro, rlo = "‭", "‮"
		pdf      = "‬"
		lri, rli = "⁦", "⁧"
		fsi, pdi = "⁨", "⁩"
	)
	rtl := dir == DirectionRTL
	switch bidi {
	case BidiEmbed:
		if rtl {
			return rle, pdf
		}
		return lre, pdf
	case BidiOverride:
		if rtl {
			return rlo, pdf
		}
		return lro, pdf
	case BidiIsolate:
		if rtl {
			return rli, pdi
		}
		return lri, pdi
	case BidiIsolateOverride:
		if rtl {
			return rli + rlo, pdf + pdi
		}
		return lri + lro, pdf + pdi
	case BidiPlainText:
		return fsi, pdi
	}
	return "", ""
}

// collect flattens the styled tree into text plus style runs, in
// document order. Bidi isolation is made explicit by inserting control
// characters around nodes that request it, so the later single
// shaping pass reorders each span independently.
func collect(root *Node, defaults Properties) *collection {
	c := &collection{spans: make(map[*Node]span)}
	rootProps := root.Properties.Inherit(defaults)
	c.collectNode(root, rootProps)
	return c
}

func (c *collection) collectNode(n *Node, props Properties) {
	start := len(c.text)

	open, closing := bidiControls(props.UnicodeBidi, props.Direction)
	if open != "" {
		c.appendControl(open, props)
	}

	if n.IsLeaf() {
		c.appendText(n, props)
	} else {
		for _, child := range n.Children {
			c.collectNode(child, child.Properties.Inherit(props))
		}
	}

	if closing != "" {
		c.appendControl(closing, props)
	}
	c.spans[n] = span{start: start, end: len(c.text)}
}

func (c *collection) appendControl(s string, props Properties) {
	start := len(c.text)
	for _, r := range s {
		c.text = append(c.text, r)
		c.origins = append(c.origins, origin{index: -1})
	}
	c.runs = append(c.runs, styleRun{
		span:    span{start: start, end: len(c.text)},
		props:   props,
		control: true,
	})
}

func (c *collection) appendText(n *Node, props Properties) {
	start := len(c.text)
	transformed := transformText(n.Text, props.TextTransform, props.Language)
	raw := []rune(n.Text)
	for i, r := range []rune(transformed) {
		c.text = append(c.text, r)
		// Case transforms can change rune counts; clamp the
		// back-mapping to the original length.
		idx := i
		if idx >= len(raw) {
			idx = len(raw) - 1
		}
		c.origins = append(c.origins, origin{node: n, index: idx})
	}
	if len(c.text) > start {
		c.runs = append(c.runs, styleRun{
			span:  span{start: start, end: len(c.text)},
			props: props,
			node:  n,
		})
	}
}
