// Package msvfilter provides a high-level API for MSV pre-filter scoring of
// protein sequences against position-specific profiles.
//
// Example usage:
//
//	prof, err := msvfilter.NewProfile(4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	prof.SetMatch(1, int(msvfilter.Amino.Index('A')), 2.0)
//
//	score, err := msvfilter.ScoreText("ACDE", prof)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("MSV score: %.2f\n", score)
package msvfilter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
	"github.com/aria-lang/msvfilter-go/internal/dpmatrix"
	"github.com/aria-lang/msvfilter-go/internal/msv"
	"github.com/aria-lang/msvfilter-go/internal/profile"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
	"github.com/aria-lang/msvfilter-go/internal/stats"
	"github.com/aria-lang/msvfilter-go/internal/synth"
)

// Re-export types for convenience
type (
	Alphabet            = alphabet.Alphabet
	Residue             = alphabet.Residue
	Digital             = sequence.Digital
	Sequence            = sequence.Sequence
	Profile             = profile.Profile
	Matrix              = dpmatrix.Matrix
	Result              = msv.Result
	ScoreStats          = stats.ScoreStats
	SequenceSetStats    = stats.SequenceSetStats
	DimensionError      = msv.DimensionError
	InvalidResidueError = sequence.InvalidResidueError
)

// Constants
const (
	Sentinel = alphabet.Sentinel
	Illegal  = alphabet.Illegal
)

// Shared values
var (
	Amino                = alphabet.Amino
	ErrDimensionMismatch = msv.ErrDimensionMismatch
	ErrGapRow            = profile.ErrGapRow
)

var defaultPool = msv.NewPool()

// NewProfile creates an amino acid profile of model length m with every
// score unset.
func NewProfile(m int) (*Profile, error) {
	return profile.New(m, Amino)
}

// NewMatrix allocates a DP matrix for model length m and sequence length l.
func NewMatrix(m, l int) (*Matrix, error) {
	return dpmatrix.New(m, l)
}

// Digitize maps text to a digital sequence with sentinels.
func Digitize(text string) Digital {
	return sequence.Digitize(Amino, text)
}

// NewSequence creates a digitized sequence from text.
func NewSequence(text string) (*Sequence, error) {
	return sequence.New(Amino, text)
}

// Validate reports the first character of text that does not map into
// the alphabet as an *InvalidResidueError.
func Validate(text string) error {
	return sequence.Validate(Amino, text)
}

// IsSequenceError reports whether err comes from sequence input, such
// as an empty or invalid sequence.
func IsSequenceError(err error) bool {
	var seqErr sequence.SequenceError
	return errors.As(err, &seqErr)
}

// Score fills mx and returns the MSV score.
func Score(dsq Digital, prof *Profile, mx *Matrix) (float64, error) {
	return msv.Score(dsq, prof, mx)
}

// ScoreText digitizes text and scores it with a pooled matrix.
func ScoreText(text string, prof *Profile) (float64, error) {
	return defaultPool.Score(Digitize(text), prof)
}

// ScoreMatrix scores dsq and returns the filled matrix for inspection.
func ScoreMatrix(dsq Digital, prof *Profile) (float64, *Matrix, error) {
	return msv.Run(dsq, prof)
}

// ScoreAll scores sequences concurrently.
func ScoreAll(ctx context.Context, prof *Profile, seqs []*Sequence, workers int) ([]Result, error) {
	return msv.ScoreAll(ctx, prof, seqs, workers)
}

// ScoreFASTA parses FASTA from r and scores every record.
func ScoreFASTA(ctx context.Context, r io.Reader, prof *Profile, workers int) ([]Result, error) {
	seqs, err := sequence.ParseFASTA(r, Amino)
	if err != nil {
		return nil, fmt.Errorf("parsing fasta: %w", err)
	}
	return msv.ScoreAll(ctx, prof, seqs, workers)
}

// ReadFASTA reads sequences from a FASTA file.
func ReadFASTA(filename string) ([]*Sequence, error) {
	return sequence.ReadFASTA(filename, Amino)
}

// Summarize computes statistics over batch results.
func Summarize(results []Result) (*ScoreStats, error) {
	return stats.FromResults(results)
}

// SummarizeSequences computes length statistics over seqs.
func SummarizeSequences(seqs []*Sequence) (*SequenceSetStats, error) {
	return stats.FromSequences(seqs, Amino)
}

// ConstantProfile creates a profile where every canonical score is sc.
func ConstantProfile(m int, sc float64) (*Profile, error) {
	return synth.ConstantProfile(m, Amino, sc)
}

// PatternProfile creates a profile where position k prefers residue
// (k-1) mod 20.
func PatternProfile(m int, hit, miss float64) (*Profile, error) {
	return synth.PatternProfile(m, Amino, hit, miss)
}

// Version returns the msvfilter version.
func Version() string {
	return "1.0.0"
}

// Info returns information about msvfilter.
func Info() string {
	return fmt.Sprintf(`msvfilter v%s - MSV profile pre-filter

Features:
  - 29-symbol amino acid alphabet with degeneracy table
  - Position-specific match-score profiles
  - Ungapped local (MSV) scoring with a zero floor
  - Pooled DP matrices and concurrent batch scoring
  - FASTA input
`, Version())
}
