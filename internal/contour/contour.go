package contour

import (
	"math"

	"github.com/danielpatrickdp/convo-terrain/internal/field"
)

// #region types

// Segment is one iso-line piece in grid-space coordinates.
type Segment struct {
	A field.Point `json:"a"`
	B field.Point `json:"b"`
}

// Contour groups every segment extracted at one threshold.
type Contour struct {
	Elevation float64   `json:"elevation"`
	IsMajor   bool      `json:"is_major"`
	Lines     []Segment `json:"lines"`
}

const (
	lowerBound = 0.1
	upperBound = 0.9
	majorEvery = 5
	epsilon    = 1e-10
)

// #endregion types

// #region generate

// Generate evaluates count+1 evenly spaced thresholds in [0.1, 0.9], marks every
// fifth as major, and drops thresholds that produce no segments. Contours come
// back in ascending threshold order. count < 1 yields nil.
func Generate(grid field.Grid, count int) []Contour {
	if count < 1 || grid.Size < 2 {
		return nil
	}
	var out []Contour
	for i := 0; i <= count; i++ {
		threshold := lowerBound + (upperBound-lowerBound)*float64(i)/float64(count)
		lines := MarchingSquares(grid, threshold)
		if len(lines) == 0 {
			continue
		}
		out = append(out, Contour{
			Elevation: threshold,
			IsMajor:   i%majorEvery == 0,
			Lines:     lines,
		})
	}
	return out
}

// #endregion generate

// #region marching-squares

// edge identifies one side of a 2×2 cell.
type edge uint8

const (
	edgeTop edge = iota
	edgeRight
	edgeBottom
	edgeLeft
)

// caseEdges maps the 4-bit corner mask (tl=8, tr=4, br=2, bl=1) to the edge
// pairs joined in that cell. Saddles 5 and 10 use a fixed pairing.
var caseEdges = [16][][2]edge{
	0:  nil,
	1:  {{edgeLeft, edgeBottom}},
	2:  {{edgeBottom, edgeRight}},
	3:  {{edgeLeft, edgeRight}},
	4:  {{edgeTop, edgeRight}},
	5:  {{edgeLeft, edgeTop}, {edgeBottom, edgeRight}},
	6:  {{edgeTop, edgeBottom}},
	7:  {{edgeLeft, edgeTop}},
	8:  {{edgeLeft, edgeTop}},
	9:  {{edgeTop, edgeBottom}},
	10: {{edgeTop, edgeRight}, {edgeLeft, edgeBottom}},
	11: {{edgeTop, edgeRight}},
	12: {{edgeLeft, edgeRight}},
	13: {{edgeBottom, edgeRight}},
	14: {{edgeLeft, edgeBottom}},
	15: nil,
}

// MarchingSquares extracts the iso-line segments of grid at threshold.
// Corners at or above the threshold count as inside.
func MarchingSquares(grid field.Grid, threshold float64) []Segment {
	if grid.Size < 2 || math.IsNaN(threshold) {
		return nil
	}
	var segs []Segment
	for y := 0; y < grid.Size-1; y++ {
		for x := 0; x < grid.Size-1; x++ {
			c := cell{
				x: x, y: y,
				tl: grid.At(x, y),
				tr: grid.At(x+1, y),
				br: grid.At(x+1, y+1),
				bl: grid.At(x, y+1),
			}
			for _, pair := range caseEdges[c.mask(threshold)] {
				segs = append(segs, Segment{
					A: c.crossing(pair[0], threshold),
					B: c.crossing(pair[1], threshold),
				})
			}
		}
	}
	return segs
}

// #endregion marching-squares

// #region cell

type cell struct {
	x, y           int
	tl, tr, br, bl float64
}

func (c cell) mask(threshold float64) int {
	m := 0
	if c.tl >= threshold {
		m |= 8
	}
	if c.tr >= threshold {
		m |= 4
	}
	if c.br >= threshold {
		m |= 2
	}
	if c.bl >= threshold {
		m |= 1
	}
	return m
}

// crossing interpolates where the threshold crosses edge e.
func (c cell) crossing(e edge, threshold float64) field.Point {
	fx, fy := float64(c.x), float64(c.y)
	switch e {
	case edgeTop:
		return field.Point{X: fx + interp(c.tl, c.tr, threshold), Y: fy}
	case edgeRight:
		return field.Point{X: fx + 1, Y: fy + interp(c.tr, c.br, threshold)}
	case edgeBottom:
		return field.Point{X: fx + interp(c.bl, c.br, threshold), Y: fy + 1}
	default:
		return field.Point{X: fx, Y: fy + interp(c.tl, c.bl, threshold)}
	}
}

// interp returns the fractional offset of threshold between a and b, falling
// back to the midpoint when the corners are equal.
func interp(a, b, threshold float64) float64 {
	if math.Abs(b-a) < epsilon {
		return 0.5
	}
	t := (threshold - a) / (b - a)
	return math.Max(0, math.Min(1, t))
}

// #endregion cell
