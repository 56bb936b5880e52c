package textflow

import "sort"

// buildCursorInfo finishes the per-character cursor metadata and
// builds the caret position index. It also accumulates the document
// ink bounds while it walks the characters.
func (e *Engine) buildCursorInfo(res *Result, plainLen int) {
	chars := res.Characters

	for i := range chars {
		cr := &chars[i]
		if !cr.Addressable || cr.Middle {
			continue
		}

		// A chunk start always carries a caret position of its own,
		// even when the chunk is empty.
		if cr.AnchoredChunk {
			res.CursorPositions = append(res.CursorPositions, CursorPos{
				Cluster:   i,
				Index:     cr.PlainTextIndex,
				Offset:    0,
				Synthetic: true,
			})
		}

		// The synthetic trailing character after a hard break carries
		// only its chunk-start caret.
		if cr.PlainTextIndex >= plainLen {
			continue
		}

		n := len(cr.Cursor.GraphemeIndices)
		if n == 0 && cr.PlainTextIndex >= 0 {
			cr.Cursor.GraphemeIndices = []int{cr.PlainTextIndex + 1}
			n = 1
		}

		// Sub-cluster caret offsets interpolate the cluster advance,
		// mirrored for RTL clusters.
		cr.Cursor.Offsets = cr.Cursor.Offsets[:0]
		for k := 0; k < n; k++ {
			frac := float64(k+1) / float64(n)
			if cr.Cursor.RTL {
				frac = 1 - frac
			}
			cr.Cursor.Offsets = append(cr.Cursor.Offsets, cr.Advance.Mul(frac))
		}

		for k, idx := range cr.Cursor.GraphemeIndices {
			// The position after a trailing hard break belongs to the
			// synthetic character on the next line.
			if cr.BreakType == HardBreak && k == n-1 {
				continue
			}
			res.CursorPositions = append(res.CursorPositions, CursorPos{
				Cluster: i,
				Index:   idx,
				Offset:  k + 1,
			})
		}

		if !cr.Hidden {
			res.Bounds = res.Bounds.Union(cr.InkBounds.Translate(cr.FinalPosition))
		}
	}

	sort.SliceStable(res.CursorPositions, func(a, b int) bool {
		pa, pb := res.CursorPositions[a], res.CursorPositions[b]
		if pa.Index != pb.Index {
			return pa.Index < pb.Index
		}
		return pa.Offset < pb.Offset
	})

	res.LogicalToVisualCursor = e.cursorVisualOrder(res)
}

// cursorVisualOrder maps each logical cursor position to its rank in
// visual traversal order. Positions are grouped per line chunk,
// ordered by shaped visual index, then by sub-cluster offset with RTL
// clusters reversed.
func (e *Engine) cursorVisualOrder(res *Result) []int {
	chars := res.Characters

	// Cursor positions per cluster, keyed by character index.
	byCluster := make(map[int][]int)
	for p, pos := range res.CursorPositions {
		byCluster[pos.Cluster] = append(byCluster[pos.Cluster], p)
	}
	for _, ps := range byCluster {
		sort.Slice(ps, func(a, b int) bool {
			return res.CursorPositions[ps[a]].Offset < res.CursorPositions[ps[b]].Offset
		})
	}

	var visual []int
	seen := make(map[int]bool)
	appendCluster := func(i int) {
		ps := byCluster[i]
		if chars[i].Cursor.RTL {
			for k := len(ps) - 1; k >= 0; k-- {
				if !seen[ps[k]] {
					visual = append(visual, ps[k])
					seen[ps[k]] = true
				}
			}
			return
		}
		for _, p := range ps {
			if !seen[p] {
				visual = append(visual, p)
				seen[p] = true
			}
		}
	}

	for l := range res.Lines {
		for _, chunk := range res.Lines[l].Chunks {
			ordered := append([]int(nil), chunk.Indices...)
			sort.Slice(ordered, func(a, b int) bool {
				return chars[ordered[a]].VisualIndex < chars[ordered[b]].VisualIndex
			})
			for _, i := range ordered {
				appendCluster(i)
			}
		}
	}
	// Positions on no line (hidden or overflowed) keep logical order
	// at the end.
	for p := range res.CursorPositions {
		if !seen[p] {
			visual = append(visual, p)
		}
	}

	out := make([]int, len(res.CursorPositions))
	for rank, p := range visual {
		out[p] = rank
	}
	return out
}

// CursorPosForIndex returns the first caret position at a plain-text
// index.
func (r *Result) CursorPosForIndex(index int) (CursorPos, error) {
	for _, pos := range r.CursorPositions {
		if pos.Index == index {
			return pos, nil
		}
	}
	return CursorPos{}, ErrInvalidRange
}

// NextVisual returns the cursor position one visual step from pos in
// the given direction (+1 right/down, -1 left/up).
func (r *Result) NextVisual(pos int, dir int) (int, error) {
	if pos < 0 || pos >= len(r.CursorPositions) {
		return 0, ErrInvalidRange
	}
	rank := r.LogicalToVisualCursor[pos]
	rank += dir
	if rank < 0 || rank >= len(r.LogicalToVisualCursor) {
		return pos, nil
	}
	for p, rk := range r.LogicalToVisualCursor {
		if rk == rank {
			return p, nil
		}
	}
	return pos, nil
}
