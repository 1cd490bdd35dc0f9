package profile

import (
	"errors"
	"fmt"
)

// ErrGapRow is returned by SetMatch for the gap symbol, whose scores are
// fixed at -inf.
var ErrGapRow = errors.New("gap row cannot be scored")

// IndexError is returned for a position or residue outside the table.
type IndexError struct {
	Axis  string
	Index int
	Min   int
	Max   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("profile %s index %d out of range [%d, %d]", e.Axis, e.Index, e.Min, e.Max)
}
