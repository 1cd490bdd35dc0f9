package sequence

import (
	"fmt"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
)

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence is empty.
type EmptySequenceError struct{}

func (e *EmptySequenceError) Error() string {
	return "sequence must have at least one residue"
}

func (e *EmptySequenceError) IsSequenceError() {}

// InvalidResidueError is returned by Validate for an unmapped character.
// Position is 1-based, matching the digital sequence index.
type InvalidResidueError struct {
	Position int
	Found    byte
}

func (e *InvalidResidueError) Error() string {
	return fmt.Sprintf("invalid residue '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidResidueError) IsSequenceError() {}

// Validate checks that every byte of text maps into abc, folding ASCII
// case like Digitize. Digitize never fails; Validate is for callers that
// want to reject such input up front.
func Validate(abc *alphabet.Alphabet, text string) error {
	for i := 0; i < len(text); i++ {
		if abc.IndexFold(text[i]) == alphabet.Illegal {
			return &InvalidResidueError{Position: i + 1, Found: text[i]}
		}
	}
	return nil
}
