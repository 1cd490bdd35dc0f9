// Package profile provides the position-specific match-score table that
// the MSV engine scores sequences against.
//
// Positions are 1-indexed (1..M); position 0 exists only to keep the
// indexing natural and is never scored. Every cell starts at negative
// infinity, meaning "unset". The gap symbol can never match, so its
// scores stay at negative infinity.
package profile

import (
	"fmt"
	"math"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
)

// Profile is a match-score lookup table over (position, residue).
type Profile struct {
	// Name is an optional model identifier.
	Name string
	// MaxLength is the declared upper bound on emitted sequence length.
	// It is metadata only; scoring does not consult it.
	MaxLength int

	m   int
	abc *alphabet.Alphabet

	// msc[x][k] is the match score of residue x at position k.
	msc [][]float64
}

// New allocates a profile of model length m with every score unset.
func New(m int, abc *alphabet.Alphabet) (*Profile, error) {
	if m < 0 {
		return nil, fmt.Errorf("model length must be non-negative, got %d", m)
	}
	if abc == nil {
		return nil, fmt.Errorf("alphabet is required")
	}

	p := &Profile{
		MaxLength: -1,
		m:         m,
		abc:       abc,
		msc:       make([][]float64, abc.Kp()),
	}

	negInf := math.Inf(-1)
	for x := range p.msc {
		row := make([]float64, m+1)
		for k := range row {
			row[k] = negInf
		}
		p.msc[x] = row
	}

	return p, nil
}

// M returns the model length.
func (p *Profile) M() int { return p.m }

// Alphabet returns the alphabet the profile was built over.
func (p *Profile) Alphabet() *alphabet.Alphabet { return p.abc }

func (p *Profile) check(k, x int) error {
	if k < 1 || k > p.m {
		return &IndexError{Axis: "position", Index: k, Min: 1, Max: p.m}
	}
	if x < 0 || x >= p.abc.Kp() {
		return &IndexError{Axis: "residue", Index: x, Min: 0, Max: p.abc.Kp() - 1}
	}
	return nil
}

// SetMatch sets the match score of residue x at position k. The gap row
// cannot be written and returns ErrGapRow.
func (p *Profile) SetMatch(k, x int, sc float64) error {
	if err := p.check(k, x); err != nil {
		return err
	}
	if alphabet.Residue(x) == p.abc.Gap() {
		return ErrGapRow
	}
	p.msc[x][k] = sc
	return nil
}

// Match returns the match score of residue x at position k.
func (p *Profile) Match(k, x int) (float64, error) {
	if err := p.check(k, x); err != nil {
		return 0, err
	}
	return p.msc[x][k], nil
}

// MatchScores returns the scores of residue x for positions 0..M. The
// slice aliases the profile's storage and must not be modified.
func (p *Profile) MatchScores(x alphabet.Residue) ([]float64, error) {
	if int(x) >= p.abc.Kp() {
		return nil, &IndexError{Axis: "residue", Index: int(x), Min: 0, Max: p.abc.Kp() - 1}
	}
	return p.msc[x], nil
}

// Fill sets every canonical residue score from fn, for k in 1..M and x
// in 0..K-1.
func (p *Profile) Fill(fn func(k, x int) float64) {
	for k := 1; k <= p.m; k++ {
		for x := 0; x < p.abc.K(); x++ {
			p.msc[x][k] = fn(k, x)
		}
	}
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	c := &Profile{
		Name:      p.Name,
		MaxLength: p.MaxLength,
		m:         p.m,
		abc:       p.abc,
		msc:       make([][]float64, len(p.msc)),
	}
	for x, row := range p.msc {
		c.msc[x] = append([]float64(nil), row...)
	}
	return c
}

func (p *Profile) String() string {
	name := p.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("Profile { name: %s, M: %d, max_length: %d }", name, p.m, p.MaxLength)
}
