package textflow

import (
	"strconv"
	"strings"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/textflow/fonts"
)

// ShapeRun is one contiguous rune range with uniform shaping settings.
type ShapeRun struct {
	Start, End int
	Props      Properties
}

// ShapeRequest describes one shaping pass over the flattened text.
// ChunkStarts lists the rune indices that begin independently anchored
// chunks; shaping and bidi reordering never cross those boundaries.
type ShapeRequest struct {
	Text        []rune
	Direction   Direction
	Vertical    bool
	Runs        []ShapeRun
	ChunkStarts []int
}

// ShapedGlyph is one glyph from the shaping engine. Advances and
// offsets are in points, cluster indices are absolute rune indices
// into the request text.
type ShapedGlyph struct {
	Cluster  int
	GID      font.GID
	Face     *font.Face
	FontSize float64
	XAdvance float64
	YAdvance float64
	XOffset  float64
	YOffset  float64
	RTL      bool
	Vertical bool
}

// Shaper converts text into a glyph sequence in visual order.
type Shaper interface {
	Shape(req ShapeRequest) ([]ShapedGlyph, error)
}

// GoTextShaper shapes with go-text/typesetting's HarfBuzz port, using
// a fonts.Source for face resolution and face fallback splitting.
// Not safe for concurrent use; layout passes are single threaded.
type GoTextShaper struct {
	src      fonts.Source
	shaper   shaping.HarfbuzzShaper
	splitter shaping.Segmenter
}

// NewGoTextShaper returns a shaper resolving faces from src.
func NewGoTextShaper(src fonts.Source) *GoTextShaper {
	return &GoTextShaper{src: src}
}

// Shape implements Shaper. The text is shaped chunk by chunk; inside a
// chunk the Unicode bidi algorithm orders runs visually, each run is
// split further at style boundaries and by face fallback, and HarfBuzz
// shapes every piece. The returned glyphs are in visual order.
func (s *GoTextShaper) Shape(req ShapeRequest) ([]ShapedGlyph, error) {
	if len(req.Text) == 0 {
		return nil, nil
	}
	chunkStart := map[int]bool{}
	for _, i := range req.ChunkStarts {
		chunkStart[i] = true
	}
	var out []ShapedGlyph
	start := 0
	for i := 1; i <= len(req.Text); i++ {
		if i == len(req.Text) || chunkStart[i] {
			glyphs, err := s.shapeChunk(req, start, i)
			if err != nil {
				return nil, err
			}
			out = append(out, glyphs...)
			start = i
		}
	}
	return out, nil
}

func (s *GoTextShaper) shapeChunk(req ShapeRequest, start, end int) ([]ShapedGlyph, error) {
	text := req.Text[start:end]

	var p bidi.Paragraph
	def := bidi.LeftToRight
	if req.Direction == DirectionRTL {
		def = bidi.RightToLeft
	}
	if _, err := p.SetString(string(text), bidi.DefaultDirection(def)); err != nil {
		return nil, err
	}
	order, err := p.Order()
	if err != nil {
		return nil, err
	}

	// Ordering reports runs in logical order with per-run direction.
	// For an RTL paragraph the visual order of runs is reversed.
	var out []ShapedGlyph
	for n := 0; n < order.NumRuns(); n++ {
		i := n
		if req.Direction == DirectionRTL {
			i = order.NumRuns() - 1 - n
		}
		run := order.Run(i)
		runStart, runEnd := run.Pos()
		runEnd++ // Pos reports an inclusive end
		rtl := run.Direction() == bidi.RightToLeft

		// Style boundaries split the bidi run; for RTL runs the style
		// pieces are emitted right to left to keep visual order.
		pieces := splitByStyle(req.Runs, start+runStart, start+runEnd)
		if rtl {
			for l, r := 0, len(pieces)-1; l < r; l, r = l+1, r-1 {
				pieces[l], pieces[r] = pieces[r], pieces[l]
			}
		}
		for _, piece := range pieces {
			glyphs := s.shapePiece(req, piece, rtl)
			out = append(out, glyphs...)
		}
	}
	return out, nil
}

// splitByStyle intersects [start, end) with the style runs.
func splitByStyle(runs []ShapeRun, start, end int) []ShapeRun {
	var out []ShapeRun
	for _, r := range runs {
		s := max(r.Start, start)
		e := min(r.End, end)
		if s < e {
			out = append(out, ShapeRun{Start: s, End: e, Props: r.Props})
		}
	}
	return out
}

func (s *GoTextShaper) shapePiece(req ShapeRequest, run ShapeRun, rtl bool) []ShapedGlyph {
	props := run.Props
	s.src.SetQuery(fonts.Query{
		Families: props.FontFamilies,
		Aspect:   aspectFor(props),
	})

	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	if req.Vertical {
		dir = di.DirectionTTB
	}
	in := shaping.Input{
		Text:         req.Text,
		RunStart:     run.Start,
		RunEnd:       run.End,
		Direction:    dir,
		Size:         fixed.Int26_6(props.FontSize * 64),
		Script:       scriptFor(req.Text[run.Start:run.End]),
		Language:     language.NewLanguage(orDefault(props.Language, "en")),
		FontFeatures: parseFeatures(props.FontFeatures),
	}

	var out []ShapedGlyph
	// Split handles face fallback per rune coverage.
	for _, sub := range s.splitter.Split(in, fontmap{s.src}) {
		if sub.Face == nil {
			logger().Warn("no face for run", "start", sub.RunStart, "end", sub.RunEnd)
			continue
		}
		res := s.shaper.Shape(sub)
		scale := 1.0 / 64
		for _, g := range res.Glyphs {
			out = append(out, ShapedGlyph{
				Cluster:  g.ClusterIndex,
				GID:      g.GlyphID,
				Face:     sub.Face,
				FontSize: props.FontSize,
				XAdvance: float64(g.XAdvance) * scale,
				YAdvance: float64(g.YAdvance) * scale,
				XOffset:  float64(g.XOffset) * scale,
				YOffset:  float64(g.YOffset) * scale,
				RTL:      rtl,
				Vertical: req.Vertical,
			})
		}
	}
	applySpacing(out, req.Text, props)
	return out
}

// fontmap adapts fonts.Source to go-text's shaping.Fontmap.
type fontmap struct {
	src fonts.Source
}

func (m fontmap) ResolveFace(r rune) *font.Face { return m.src.ResolveFace(r) }

// applySpacing adds letter and word spacing to cluster-final glyphs.
func applySpacing(glyphs []ShapedGlyph, text []rune, props Properties) {
	letter, word := 0.0, 0.0
	if props.LetterSpacing != nil {
		letter = *props.LetterSpacing
	}
	if props.WordSpacing != nil {
		word = *props.WordSpacing
	}
	if letter == 0 && word == 0 {
		return
	}
	for i := range glyphs {
		// The last glyph of a cluster is the one whose neighbor (in
		// the slice) belongs to a different cluster.
		if i+1 < len(glyphs) && glyphs[i+1].Cluster == glyphs[i].Cluster {
			continue
		}
		extra := letter
		if text[glyphs[i].Cluster] == ' ' {
			extra += word
		}
		if glyphs[i].Vertical {
			glyphs[i].YAdvance -= extra
		} else {
			glyphs[i].XAdvance += extra
		}
	}
}

func aspectFor(props Properties) font.Aspect {
	a := font.Aspect{
		Style:   font.StyleNormal,
		Weight:  font.Weight(props.FontWeight),
		Stretch: font.Stretch(props.FontStretch / 100),
	}
	if props.FontStyle != StyleNormal {
		a.Style = font.StyleItalic
	}
	if a.Weight == 0 {
		a.Weight = font.WeightNormal
	}
	if a.Stretch == 0 {
		a.Stretch = font.StretchNormal
	}
	return a
}

// scriptFor returns the script of the first non-space rune.
func scriptFor(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// parseFeatures parses OpenType feature strings of the form "liga" or
// "ss01=2". A bare tag enables the feature.
func parseFeatures(specs []string) []shaping.FontFeature {
	var out []shaping.FontFeature
	for _, spec := range specs {
		name, valStr, hasVal := strings.Cut(strings.TrimSpace(spec), "=")
		if len(name) != 4 {
			continue
		}
		val := uint32(1)
		if hasVal {
			v, err := strconv.ParseUint(valStr, 10, 32)
			if err != nil {
				continue
			}
			val = uint32(v)
		}
		out = append(out, shaping.FontFeature{
			Tag:   opentype.MustNewTag(name),
			Value: val,
		})
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
