package textflow

// LineCap selects the shape of stroke endpoints.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "unknown"
}

// LineJoin selects the shape of stroke corners.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return "unknown"
}

// Stroke describes how a path should be stroked. Decoration paths in a
// [Result] carry a Stroke so renderers can draw them without knowing
// the decoration style that produced them.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       *Dash
}

// DefaultStroke returns a 1-unit butt-capped miter-joined stroke.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, MiterLimit: 4}
}

// WithWidth returns the stroke with a new width.
func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

// WithDash returns the stroke with a dash pattern.
func (s Stroke) WithDash(d *Dash) Stroke {
	s.Dash = d
	return s
}

// IsDashed reports whether the stroke has a non-trivial dash pattern.
func (s Stroke) IsDashed() bool {
	return s.Dash != nil && s.Dash.IsDashed()
}

// Dash is an on/off dash pattern in path units.
type Dash struct {
	Lengths []float64
	Offset  float64
}

// NewDash returns a dash with the given on/off lengths.
func NewDash(lengths ...float64) *Dash {
	return &Dash{Lengths: lengths}
}

// IsDashed reports whether the pattern has any positive length.
func (d *Dash) IsDashed() bool {
	if d == nil {
		return false
	}
	for _, l := range d.Lengths {
		if l > 0 {
			return true
		}
	}
	return false
}

// PatternLength returns the total length of one pattern repeat.
func (d *Dash) PatternLength() float64 {
	var sum float64
	for _, l := range d.Lengths {
		sum += l
	}
	return sum
}

// Scale returns a copy of the pattern scaled by factor.
func (d *Dash) Scale(factor float64) *Dash {
	out := &Dash{Offset: d.Offset * factor, Lengths: make([]float64, len(d.Lengths))}
	for i, l := range d.Lengths {
		out.Lengths[i] = l * factor
	}
	return out
}

// decorationStroke maps a decoration style and line width to a stroke.
// Double and Wavy produce plain solid strokes, their shape comes from
// the generated geometry instead.
func decorationStroke(style DecorationStyle, width float64) Stroke {
	s := DefaultStroke().WithWidth(width)
	switch style {
	case Dotted:
		s.Cap = CapRound
		s.Dash = NewDash(0, width*2)
	case Dashed:
		s.Dash = NewDash(width*3, width*3)
	}
	return s
}
