// Package sequence provides digital sequences for profile scoring.
//
// A digital sequence is the residue array consumed by the MSV engine:
// index 0 and index L+1 hold alphabet.Sentinel and indices 1..L hold
// residue codes. Characters the alphabet cannot map are carried as
// alphabet.Illegal rather than rejected; the scoring policy decides what
// they contribute.
package sequence

import (
	"strings"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
)

// Digital is a 1-indexed residue buffer of length L+2.
type Digital []alphabet.Residue

// NewDigital wraps residues in sentinels. The input is copied.
func NewDigital(residues ...alphabet.Residue) Digital {
	dsq := make(Digital, len(residues)+2)
	dsq[0] = alphabet.Sentinel
	copy(dsq[1:], residues)
	dsq[len(dsq)-1] = alphabet.Sentinel
	return dsq
}

// Digitize maps text through abc one byte per residue. ASCII letters
// are folded to upper case; bytes without a mapping, including non-ASCII
// bytes, become alphabet.Illegal.
func Digitize(abc *alphabet.Alphabet, text string) Digital {
	dsq := make(Digital, len(text)+2)
	dsq[0] = alphabet.Sentinel
	for i := 0; i < len(text); i++ {
		dsq[i+1] = abc.IndexFold(text[i])
	}
	dsq[len(dsq)-1] = alphabet.Sentinel
	return dsq
}

// upperASCII folds a-z to upper case and leaves every other byte as is,
// so the result has exactly one byte per input byte.
func upperASCII(text string) string {
	b := []byte(text)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// Len returns L, the number of residues between the sentinels. A buffer
// too short to hold both sentinels has length 0.
func (d Digital) Len() int {
	if len(d) < 2 {
		return 0
	}
	return len(d) - 2
}

// Residues returns the residues at positions 1..L.
func (d Digital) Residues() []alphabet.Residue {
	if len(d) < 2 {
		return nil
	}
	return d[1 : len(d)-1]
}

// HasSentinels reports whether both boundary positions hold the sentinel.
func (d Digital) HasSentinels() bool {
	return len(d) >= 2 && d[0] == alphabet.Sentinel && d[len(d)-1] == alphabet.Sentinel
}

// Text converts the residues back to characters. Codes outside the table
// render as '?'.
func (d Digital) Text(abc *alphabet.Alphabet) string {
	var sb strings.Builder
	sb.Grow(d.Len())
	for _, r := range d.Residues() {
		sb.WriteByte(abc.Symbol(r))
	}
	return sb.String()
}

// CountNonCanonical counts residues that the engine will not score.
func (d Digital) CountNonCanonical(abc *alphabet.Alphabet) int {
	count := 0
	for _, r := range d.Residues() {
		if !abc.IsCanonical(r) {
			count++
		}
	}
	return count
}

// Sequence is a named sequence with its digital form.
type Sequence struct {
	Name        string
	Description string
	Text        string
	Dsq         Digital
}

// New digitizes text and rejects empty input.
func New(abc *alphabet.Alphabet, text string) (*Sequence, error) {
	if len(text) == 0 {
		return nil, &EmptySequenceError{}
	}
	return &Sequence{
		Text: upperASCII(text),
		Dsq:  Digitize(abc, text),
	}, nil
}

// Len returns the number of residues.
func (s *Sequence) Len() int {
	return s.Dsq.Len()
}
