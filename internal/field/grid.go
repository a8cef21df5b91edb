package field

import "math"

// #region point

// Point is a 2D coordinate. Grid-space for contours, unit-square for paths.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// #endregion point

// #region grid

// Grid stores a square elevation field in row-major order.
type Grid struct {
	Size  int       `json:"size"`
	Cells []float64 `json:"cells"`
}

// New allocates a zero-valued size×size grid. Non-positive sizes yield an empty grid.
func New(size int) Grid {
	if size <= 0 {
		return Grid{}
	}
	return Grid{Size: size, Cells: make([]float64, size*size)}
}

// Index returns the linear slice index for coordinates (x, y).
func (g Grid) Index(x, y int) int { return y*g.Size + x }

// At returns the value at (x, y). Out-of-range coordinates read as 0.
func (g Grid) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= g.Size || y >= g.Size {
		return 0
	}
	return g.Cells[g.Index(x, y)]
}

// Set writes v at (x, y), ignoring out-of-range coordinates.
func (g Grid) Set(x, y int, v float64) {
	if x < 0 || y < 0 || x >= g.Size || y >= g.Size {
		return
	}
	g.Cells[g.Index(x, y)] = v
}

// Empty reports whether the grid holds no cells.
func (g Grid) Empty() bool { return g.Size == 0 || len(g.Cells) == 0 }

// MinMax returns the smallest and largest cell values. Empty grids return (0, 0).
func (g Grid) MinMax() (float64, float64) {
	if g.Empty() {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.Cells {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Sample bilinearly interpolates the grid at unit-square coordinates (u, v).
// Coordinates are clamped into [0, 1]; an empty grid samples as 0.
func (g Grid) Sample(u, v float64) float64 {
	if g.Empty() {
		return 0
	}
	if g.Size == 1 {
		return g.Cells[0]
	}
	fx := clampUnit(u) * float64(g.Size-1)
	fy := clampUnit(v) * float64(g.Size-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := min(x0+1, g.Size-1), min(y0+1, g.Size-1)
	tx, ty := fx-float64(x0), fy-float64(y0)

	top := g.At(x0, y0)*(1-tx) + g.At(x1, y0)*tx
	bottom := g.At(x0, y1)*(1-tx) + g.At(x1, y1)*tx
	return top*(1-ty) + bottom*ty
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := Grid{Size: g.Size, Cells: make([]float64, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}

// #endregion grid

// #region helpers

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// #endregion helpers
