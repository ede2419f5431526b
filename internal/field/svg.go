package field

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ErrFormationUnavailable is returned when the silhouette geometry cannot
// be loaded or contains no usable area. Initialization must not start the
// frame loop when it sees this error.
var ErrFormationUnavailable = errors.New("formation unavailable")

// Point2 is a 2D sample in SVG user units.
type Point2 struct {
	X, Y float64
}

// Box is an axis-aligned bounding box in SVG user units.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Box) Width() float64  { return b.MaxX - b.MinX }
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Silhouette is the target shape: closed rings in SVG user units with an
// even-odd fill rule, plus their bounding box.
type Silhouette struct {
	Rings [][]Point2
	Box   Box
}

// LoadSilhouette parses an SVG file into a silhouette. Supported elements:
// polygon, polyline, rect, circle, ellipse, and path (curve commands are
// flattened to their endpoints). Zero-area rings are dropped.
func LoadSilhouette(path string) (*Silhouette, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFormationUnavailable, path, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, fmt.Errorf("%w: %s: no <svg> root", ErrFormationUnavailable, path)
	}

	var rings [][]Point2
	collectRings(root, &rings)

	// Filter degenerate rings so zero-area geometry never reaches sampling.
	kept := rings[:0]
	for _, r := range rings {
		if len(r) >= 3 && math.Abs(ringArea(r)) > 1e-9 {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: %s: no fillable geometry", ErrFormationUnavailable, path)
	}

	s := &Silhouette{Rings: kept}
	s.Box = ringsBounds(kept)
	if s.Box.Width() <= 0 || s.Box.Height() <= 0 {
		return nil, fmt.Errorf("%w: %s: degenerate bounding box", ErrFormationUnavailable, path)
	}
	return s, nil
}

func collectRings(el *etree.Element, out *[][]Point2) {
	switch el.Tag {
	case "polygon", "polyline":
		if ring := parsePointList(el.SelectAttrValue("points", "")); len(ring) >= 3 {
			*out = append(*out, ring)
		}
	case "rect":
		x := attrF(el, "x")
		y := attrF(el, "y")
		w := attrF(el, "width")
		h := attrF(el, "height")
		if w > 0 && h > 0 {
			*out = append(*out, []Point2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}})
		}
	case "circle":
		*out = append(*out, ellipseRing(attrF(el, "cx"), attrF(el, "cy"), attrF(el, "r"), attrF(el, "r")))
	case "ellipse":
		*out = append(*out, ellipseRing(attrF(el, "cx"), attrF(el, "cy"), attrF(el, "rx"), attrF(el, "ry")))
	case "path":
		for _, ring := range parsePathRings(el.SelectAttrValue("d", "")) {
			if len(ring) >= 3 {
				*out = append(*out, ring)
			}
		}
	}
	for _, child := range el.ChildElements() {
		collectRings(child, out)
	}
}

func attrF(el *etree.Element, name string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(el.SelectAttrValue(name, "0")), 64)
	return v
}

func ellipseRing(cx, cy, rx, ry float64) []Point2 {
	const segments = 48
	if rx <= 0 || ry <= 0 {
		return nil
	}
	ring := make([]Point2, 0, segments)
	for i := 0; i < segments; i++ {
		a := float64(i) / segments * 2 * math.Pi
		ring = append(ring, Point2{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
	}
	return ring
}

func parsePointList(s string) []Point2 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) < 6 {
		return nil
	}
	ring := make([]Point2, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			return nil
		}
		ring = append(ring, Point2{x, y})
	}
	return ring
}

// parsePathRings walks an SVG path "d" string. Lines and closes are exact;
// curve commands (C/S/Q/T/A) are flattened to their endpoints, which is
// enough fidelity for silhouette sampling.
func parsePathRings(d string) [][]Point2 {
	tokens := tokenizePath(d)
	var rings [][]Point2
	var cur []Point2
	var pen, start Point2
	var cmd byte

	i := 0
	next := func() (float64, bool) {
		if i >= len(tokens) {
			return 0, false
		}
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return 0, false
		}
		i++
		return v, true
	}

	closeRing := func() {
		if len(cur) >= 3 {
			rings = append(rings, cur)
		}
		cur = nil
	}

	for i < len(tokens) {
		tok := tokens[i]
		if len(tok) == 1 && isPathCmd(tok[0]) {
			cmd = tok[0]
			i++
			if cmd == 'Z' || cmd == 'z' {
				closeRing()
				pen = start
				continue
			}
		}
		rel := cmd >= 'a'
		switch cmd {
		case 'M', 'm':
			x, ok1 := next()
			y, ok2 := next()
			if !ok1 || !ok2 {
				i = len(tokens)
				break
			}
			closeRing()
			if rel {
				x += pen.X
				y += pen.Y
			}
			pen = Point2{x, y}
			start = pen
			cur = append(cur, pen)
			// Subsequent pairs after a moveto are implicit linetos.
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			x, ok1 := next()
			y, ok2 := next()
			if !ok1 || !ok2 {
				i = len(tokens)
				break
			}
			if rel {
				x += pen.X
				y += pen.Y
			}
			pen = Point2{x, y}
			cur = append(cur, pen)
		case 'H', 'h':
			x, ok := next()
			if !ok {
				i = len(tokens)
				break
			}
			if rel {
				x += pen.X
			}
			pen = Point2{x, pen.Y}
			cur = append(cur, pen)
		case 'V', 'v':
			y, ok := next()
			if !ok {
				i = len(tokens)
				break
			}
			if rel {
				y += pen.Y
			}
			pen = Point2{pen.X, y}
			cur = append(cur, pen)
		case 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
			n := pathArgCount(cmd)
			args := make([]float64, 0, n)
			ok := true
			for k := 0; k < n; k++ {
				v, o := next()
				if !o {
					ok = false
					break
				}
				args = append(args, v)
			}
			if !ok {
				i = len(tokens)
				break
			}
			x, y := args[n-2], args[n-1]
			if rel {
				x += pen.X
				y += pen.Y
			}
			pen = Point2{x, y}
			cur = append(cur, pen)
		default:
			i++ // skip unknown token
		}
	}
	closeRing()
	return rings
}

func isPathCmd(b byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", b) >= 0
}

func pathArgCount(cmd byte) int {
	switch cmd {
	case 'C', 'c':
		return 6
	case 'S', 's', 'Q', 'q':
		return 4
	case 'A', 'a':
		return 7
	default:
		return 2
	}
}

func tokenizePath(d string) []string {
	var toks []string
	var num strings.Builder
	flush := func() {
		if num.Len() > 0 {
			toks = append(toks, num.String())
			num.Reset()
		}
	}
	for idx := 0; idx < len(d); idx++ {
		c := d[idx]
		switch {
		case isPathCmd(c):
			flush()
			toks = append(toks, string(c))
		case c == '-' || c == '+':
			// Sign starts a new number unless it follows an exponent marker.
			s := num.String()
			if num.Len() > 0 && !strings.HasSuffix(s, "e") && !strings.HasSuffix(s, "E") {
				flush()
			}
			num.WriteByte(c)
		case (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E':
			// A second dot starts a new number ("1.5.5" means "1.5 .5").
			if c == '.' && strings.Contains(num.String(), ".") {
				flush()
			}
			num.WriteByte(c)
		default:
			flush()
		}
	}
	flush()
	return toks
}

// Contains reports whether (x,y) is inside the silhouette under the
// even-odd fill rule.
func (s *Silhouette) Contains(x, y float64) bool {
	inside := false
	for _, ring := range s.Rings {
		j := len(ring) - 1
		for i := 0; i < len(ring); i++ {
			a, b := ring[i], ring[j]
			if (a.Y > y) != (b.Y > y) {
				t := (y - a.Y) / (b.Y - a.Y)
				if x < a.X+(b.X-a.X)*t {
					inside = !inside
				}
			}
			j = i
		}
	}
	return inside
}

// SampleInside rejection-samples n points inside the silhouette. Returns
// fewer than n only for pathological shapes (fill fraction near zero).
func (s *Silhouette) SampleInside(n int, r *Rand) []Point2 {
	pts := make([]Point2, 0, n)
	maxAttempts := n * 200
	for att := 0; len(pts) < n && att < maxAttempts; att++ {
		x := r.RangeF(s.Box.MinX, s.Box.MaxX)
		y := r.RangeF(s.Box.MinY, s.Box.MaxY)
		if s.Contains(x, y) {
			pts = append(pts, Point2{x, y})
		}
	}
	return pts
}

func ringArea(ring []Point2) float64 {
	area := 0.0
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		area += (ring[j].X + ring[i].X) * (ring[j].Y - ring[i].Y)
		j = i
	}
	return area / 2
}

func ringsBounds(rings [][]Point2) Box {
	b := Box{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, ring := range rings {
		for _, p := range ring {
			b.MinX = math.Min(b.MinX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MaxY = math.Max(b.MaxY, p.Y)
		}
	}
	return b
}
