// Package dpmatrix provides the scratch dynamic-programming matrix filled
// by the MSV engine.
//
// A Matrix holds the match-state plane: (L+1) rows by (M+1) columns. Row 0
// and column 0 are boundary cells set to 0 so that a local segment can
// begin anywhere; every other cell starts at negative infinity. A Matrix
// is overwritten in place by a scoring call and must not be shared
// between concurrent calls.
package dpmatrix

import (
	"fmt"
	"math"
)

// Matrix is a match-state DP grid.
type Matrix struct {
	m, l int
	// cells is row-major; rows[i] slices it.
	cells []float64
	rows  [][]float64
}

// New allocates and initializes a matrix for model length m and sequence
// length l.
func New(m, l int) (*Matrix, error) {
	mx := &Matrix{}
	if err := mx.Reinit(m, l); err != nil {
		return nil, err
	}
	return mx, nil
}

// Reinit resizes the matrix to (m, l) and resets every cell to its
// initial value. The backing array is reused when it is large enough.
func (mx *Matrix) Reinit(m, l int) error {
	if m < 0 || l < 0 {
		return fmt.Errorf("matrix dimensions must be non-negative, got M=%d L=%d", m, l)
	}

	width := m + 1
	n := (l + 1) * width
	if cap(mx.cells) < n {
		mx.cells = make([]float64, n)
	}
	mx.cells = mx.cells[:n]

	if cap(mx.rows) < l+1 {
		mx.rows = make([][]float64, l+1)
	}
	mx.rows = mx.rows[:l+1]
	for i := range mx.rows {
		mx.rows[i] = mx.cells[i*width : (i+1)*width : (i+1)*width]
	}

	mx.m, mx.l = m, l

	negInf := math.Inf(-1)
	for i, row := range mx.rows {
		for k := range row {
			if i == 0 || k == 0 {
				row[k] = 0
			} else {
				row[k] = negInf
			}
		}
	}
	return nil
}

// M returns the model length the matrix is sized for.
func (mx *Matrix) M() int { return mx.m }

// L returns the sequence length the matrix is sized for.
func (mx *Matrix) L() int { return mx.l }

func (mx *Matrix) check(i, k int) error {
	if i < 0 || i > mx.l {
		return &IndexError{Axis: "row", Index: i, Max: mx.l}
	}
	if k < 0 || k > mx.m {
		return &IndexError{Axis: "column", Index: k, Max: mx.m}
	}
	return nil
}

// Match returns cell (i, k).
func (mx *Matrix) Match(i, k int) (float64, error) {
	if err := mx.check(i, k); err != nil {
		return 0, err
	}
	return mx.rows[i][k], nil
}

// SetMatch writes cell (i, k).
func (mx *Matrix) SetMatch(i, k int, v float64) error {
	if err := mx.check(i, k); err != nil {
		return err
	}
	mx.rows[i][k] = v
	return nil
}

// Row returns row i (M+1 cells), aliasing the matrix storage. It panics
// if i is outside [0, L].
func (mx *Matrix) Row(i int) []float64 {
	return mx.rows[i]
}

// Rows returns a copy of the whole grid for inspection.
func (mx *Matrix) Rows() [][]float64 {
	out := make([][]float64, len(mx.rows))
	for i, row := range mx.rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Cells returns the number of cells in the grid.
func (mx *Matrix) Cells() int {
	return (mx.l + 1) * (mx.m + 1)
}

// IndexError is returned for a cell outside the grid.
type IndexError struct {
	Axis  string
	Index int
	Max   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("matrix %s index %d out of range [0, %d]", e.Axis, e.Index, e.Max)
}
