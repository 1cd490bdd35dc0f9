// Package msv implements the MSV (multiple segment Viterbi) score: the
// best ungapped local alignment between a digital sequence and a profile,
// used as a cheap filter ahead of full profile alignment.
//
// The recurrence fills the match plane of a DP matrix:
//
//	DP(0, k) = 0
//	DP(i, k) = max(0, max(msc(k, x), DP(i-1, k-1) + msc(k, x)))   x = dsq[i]
//
// and the score is the largest cell. A residue that is not canonical
// (gap, ambiguity code, Illegal) sets its whole row to 0.
package msv

import (
	"errors"
	"fmt"

	"github.com/aria-lang/msvfilter-go/internal/dpmatrix"
	"github.com/aria-lang/msvfilter-go/internal/profile"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
)

var (
	// ErrDimensionMismatch matches every *DimensionError.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrMalformedSequence is returned for a buffer shorter than its two
	// sentinels.
	ErrMalformedSequence = errors.New("malformed digital sequence")
)

// DimensionError reports a matrix that was not sized for the profile and
// sequence being scored.
type DimensionError struct {
	ProfileM  int
	MatrixM   int
	SequenceL int
	MatrixL   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: profile M=%d, sequence L=%d, matrix M=%d L=%d",
		ErrDimensionMismatch, e.ProfileM, e.SequenceL, e.MatrixM, e.MatrixL)
}

// Is makes errors.Is(err, ErrDimensionMismatch) hold.
func (e *DimensionError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// Score fills mx and returns the MSV score of dsq against prof.
//
// mx must be freshly initialized (New or Reinit) with M equal to
// prof.M() and L equal to dsq.Len(). dsq is never modified. When M or L
// is 0 the score is 0 and mx keeps its initial boundary state.
func Score(dsq sequence.Digital, prof *profile.Profile, mx *dpmatrix.Matrix) (float64, error) {
	if len(dsq) < 2 {
		return 0, ErrMalformedSequence
	}
	if prof == nil {
		return 0, fmt.Errorf("profile is required")
	}
	if mx == nil {
		return 0, fmt.Errorf("matrix is required")
	}

	M, L := prof.M(), dsq.Len()
	if mx.M() != M || mx.L() != L {
		return 0, &DimensionError{ProfileM: M, MatrixM: mx.M(), SequenceL: L, MatrixL: mx.L()}
	}
	if M == 0 || L == 0 {
		return 0, nil
	}

	abc := prof.Alphabet()
	best := 0.0

	for i := 1; i <= L; i++ {
		prev, cur := mx.Row(i-1), mx.Row(i)
		x := dsq[i]

		if !abc.IsCanonical(x) {
			for k := 1; k <= M; k++ {
				cur[k] = 0
			}
			continue
		}

		msc, err := prof.MatchScores(x)
		if err != nil {
			return 0, err
		}

		for k := 1; k <= M; k++ {
			sc := msc[k]

			// NaN never wins a comparison, so it floors to 0 like an
			// unset (-inf) score.
			v := sc
			if ext := prev[k-1] + sc; ext > v {
				v = ext
			}
			if !(v > 0) {
				v = 0
			}

			cur[k] = v
			if v > best {
				best = v
			}
		}
	}

	return best, nil
}

// Run allocates a matrix for dsq and prof, scores, and returns both the
// score and the filled matrix.
func Run(dsq sequence.Digital, prof *profile.Profile) (float64, *dpmatrix.Matrix, error) {
	if len(dsq) < 2 {
		return 0, nil, ErrMalformedSequence
	}
	if prof == nil {
		return 0, nil, fmt.Errorf("profile is required")
	}

	mx, err := dpmatrix.New(prof.M(), dsq.Len())
	if err != nil {
		return 0, nil, err
	}

	sc, err := Score(dsq, prof, mx)
	if err != nil {
		return 0, nil, err
	}
	return sc, mx, nil
}
