package handlers

import (
	"fmt"

	"github.com/aria-lang/msvfilter-go/pkg/msvfilter"
)

// ProfileSpec describes the profile to score against. Either Scores is
// given (one map per model position, residue symbol to score; symbols
// are case-insensitive, the gap symbol is rejected and missing residues
// stay unset) or Kind selects a generated profile of Length
// positions.
type ProfileSpec struct {
	Name   string               `json:"name,omitempty"`
	Kind   string               `json:"kind,omitempty"`
	Length int                  `json:"length,omitempty"`
	Score  float64              `json:"score,omitempty"`
	Hit    float64              `json:"hit,omitempty"`
	Miss   float64              `json:"miss,omitempty"`
	Scores []map[string]float64 `json:"scores,omitempty"`
}

// M returns the model length s describes, without building it.
func (s *ProfileSpec) M() int {
	if len(s.Scores) > 0 {
		return len(s.Scores)
	}
	return s.Length
}

// Build creates the profile described by s.
func (s *ProfileSpec) Build() (*msvfilter.Profile, error) {
	var (
		prof *msvfilter.Profile
		err  error
	)

	switch {
	case len(s.Scores) > 0:
		prof, err = s.buildExplicit()
	case s.Kind == "constant":
		prof, err = msvfilter.ConstantProfile(s.Length, s.Score)
	case s.Kind == "pattern":
		prof, err = msvfilter.PatternProfile(s.Length, s.Hit, s.Miss)
	case s.Kind == "":
		return nil, fmt.Errorf("profile needs scores or a kind")
	default:
		return nil, fmt.Errorf("unknown profile kind %q", s.Kind)
	}
	if err != nil {
		return nil, err
	}

	if s.Name != "" {
		prof.Name = s.Name
	}
	return prof, nil
}

func (s *ProfileSpec) buildExplicit() (*msvfilter.Profile, error) {
	abc := msvfilter.Amino
	prof, err := msvfilter.NewProfile(len(s.Scores))
	if err != nil {
		return nil, err
	}

	for i, column := range s.Scores {
		k := i + 1
		for sym, sc := range column {
			if len(sym) != 1 {
				return nil, fmt.Errorf("position %d: residue key %q must be a single symbol", k, sym)
			}
			x := abc.IndexFold(sym[0])
			if x == msvfilter.Illegal {
				return nil, fmt.Errorf("position %d: unknown residue %q", k, sym)
			}
			if err := prof.SetMatch(k, int(x), sc); err != nil {
				return nil, fmt.Errorf("position %d: residue %q: %w", k, sym, err)
			}
		}
	}
	return prof, nil
}
