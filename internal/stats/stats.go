// Package stats provides summaries of sequence sets and batch MSV scores.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
	"github.com/aria-lang/msvfilter-go/internal/msv"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
)

// SequenceSetStats summarizes the lengths of a set of sequences.
type SequenceSetStats struct {
	Count         int     `json:"count"`
	TotalResidues int     `json:"total_residues"`
	MinLength     int     `json:"min_length"`
	MaxLength     int     `json:"max_length"`
	MeanLength    float64 `json:"mean_length"`
	MedianLength  int     `json:"median_length"`
	N50           int     `json:"n50"`
	NonCanonical  int     `json:"non_canonical"`
}

// FromSequences calculates statistics for a collection of sequences.
func FromSequences(sequences []*sequence.Sequence, abc *alphabet.Alphabet) (*SequenceSetStats, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("sequence list cannot be empty")
	}

	count := len(sequences)
	lengths := make([]int, count)
	total := 0
	nonCanonical := 0

	for i, seq := range sequences {
		lengths[i] = seq.Len()
		total += seq.Len()
		nonCanonical += seq.Dsq.CountNonCanonical(abc)
	}

	sorted := make([]int, count)
	copy(sorted, lengths)
	sort.Ints(sorted)

	mid := count / 2
	var median int
	if count%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	// N50: the length at which half of all residues lie in sequences at
	// least that long.
	half := total / 2
	running := 0
	n50 := sorted[count-1]
	for i := count - 1; i >= 0; i-- {
		running += sorted[i]
		if running >= half {
			n50 = sorted[i]
			break
		}
	}

	return &SequenceSetStats{
		Count:         count,
		TotalResidues: total,
		MinLength:     sorted[0],
		MaxLength:     sorted[count-1],
		MeanLength:    float64(total) / float64(count),
		MedianLength:  median,
		N50:           n50,
		NonCanonical:  nonCanonical,
	}, nil
}

func (s *SequenceSetStats) String() string {
	return fmt.Sprintf(`SequenceSetStats {
  count: %d
  total residues: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  N50: %d
  non-canonical residues: %d
}`, s.Count, s.TotalResidues, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.N50, s.NonCanonical)
}

// ScoreStats summarizes the scores of a batch.
type ScoreStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
	// Zero counts sequences without any positive-scoring segment.
	Zero int `json:"zero"`
	// Best names the highest-scoring sequence; ties go to the earliest.
	Best string `json:"best"`
}

// FromResults calculates statistics over batch results.
func FromResults(results []msv.Result) (*ScoreStats, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("result list cannot be empty")
	}

	count := len(results)
	scores := make([]float64, count)
	s := &ScoreStats{
		Count: count,
		Min:   results[0].Score,
		Max:   results[0].Score,
		Best:  results[0].Name,
	}

	sum := 0.0
	for i, r := range results {
		scores[i] = r.Score
		sum += r.Score
		if r.Score < s.Min {
			s.Min = r.Score
		}
		if r.Score > s.Max {
			s.Max = r.Score
			s.Best = r.Name
		}
		if r.Score == 0 {
			s.Zero++
		}
	}
	s.Mean = sum / float64(count)

	sort.Float64s(scores)
	mid := count / 2
	if count%2 == 0 {
		s.Median = (scores[mid-1] + scores[mid]) / 2
	} else {
		s.Median = scores[mid]
	}

	variance := 0.0
	for _, sc := range scores {
		d := sc - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / float64(count))

	return s, nil
}

func (s *ScoreStats) String() string {
	return fmt.Sprintf(`ScoreStats {
  count: %d
  score range: %.3f - %.3f
  mean: %.3f
  median: %.3f
  stddev: %.3f
  without hit: %d
  best: %s
}`, s.Count, s.Min, s.Max, s.Mean, s.Median, s.StdDev, s.Zero, s.Best)
}
