// Package synth builds deterministic sequences and profiles for demos and
// tests.
package synth

import (
	"math"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
	"github.com/aria-lang/msvfilter-go/internal/profile"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
)

// SimpleSequence returns A, C, D, E, ... cycling through the K canonical
// residues for l positions.
func SimpleSequence(l int, abc *alphabet.Alphabet) sequence.Digital {
	if l < 0 {
		l = 0
	}
	residues := make([]alphabet.Residue, l)
	for i := range residues {
		residues[i] = alphabet.Residue(i % abc.K())
	}
	return sequence.NewDigital(residues...)
}

// SequenceOf digitizes a residue string such as "ACDE". It is a short
// form of sequence.Digitize for fixtures.
func SequenceOf(abc *alphabet.Alphabet, text string) sequence.Digital {
	return sequence.Digitize(abc, text)
}

// SimpleProfile scores residue x at position k as 2*sin(k+x).
func SimpleProfile(m int, abc *alphabet.Alphabet) (*profile.Profile, error) {
	p, err := newNamed(m, abc, "test_model")
	if err != nil {
		return nil, err
	}
	p.Fill(func(k, x int) float64 {
		return math.Sin(float64(k+x)) * 2.0
	})
	return p, nil
}

// ConstantProfile gives every canonical residue the same score at every
// position.
func ConstantProfile(m int, abc *alphabet.Alphabet, sc float64) (*profile.Profile, error) {
	p, err := newNamed(m, abc, "constant_model")
	if err != nil {
		return nil, err
	}
	p.Fill(func(int, int) float64 { return sc })
	return p, nil
}

// PatternProfile makes position k prefer residue (k-1) mod K: that residue
// scores hit and every other canonical residue scores miss.
func PatternProfile(m int, abc *alphabet.Alphabet, hit, miss float64) (*profile.Profile, error) {
	p, err := newNamed(m, abc, "pattern_model")
	if err != nil {
		return nil, err
	}
	p.Fill(func(k, x int) float64 {
		if x == (k-1)%abc.K() {
			return hit
		}
		return miss
	})
	return p, nil
}

// ZeroProfile fills every canonical score with 0.
func ZeroProfile(m int, abc *alphabet.Alphabet) (*profile.Profile, error) {
	return ConstantProfile(m, abc, 0)
}

func newNamed(m int, abc *alphabet.Alphabet, name string) (*profile.Profile, error) {
	p, err := profile.New(m, abc)
	if err != nil {
		return nil, err
	}
	p.Name = name
	p.MaxLength = 100
	return p, nil
}
