package msv

import (
	"math"
	"testing"

	"github.com/aria-lang/msvfilter-go/internal/alphabet"
	"github.com/aria-lang/msvfilter-go/internal/dpmatrix"
	"github.com/aria-lang/msvfilter-go/internal/profile"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
	"github.com/aria-lang/msvfilter-go/internal/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoreFresh(t *testing.T, dsq sequence.Digital, prof *profile.Profile) (float64, *dpmatrix.Matrix) {
	t.Helper()
	mx, err := dpmatrix.New(prof.M(), dsq.Len())
	require.NoError(t, err)
	sc, err := Score(dsq, prof, mx)
	require.NoError(t, err)
	return sc, mx
}

func constant(t *testing.T, m int, sc float64) *profile.Profile {
	t.Helper()
	p, err := synth.ConstantProfile(m, alphabet.Amino, sc)
	require.NoError(t, err)
	return p
}

func pattern(t *testing.T, m int, hit, miss float64) *profile.Profile {
	t.Helper()
	p, err := synth.PatternProfile(m, alphabet.Amino, hit, miss)
	require.NoError(t, err)
	return p
}

func TestScoreConstantProfiles(t *testing.T) {
	abc := alphabet.Amino

	tests := []struct {
		name string
		m, l int
		sc   float64
		want float64
	}{
		{"all ones", 5, 5, 1.0, 5.0},
		{"all twos", 5, 5, 2.0, 10.0},
		{"single position model", 1, 5, 1.0, 1.0},
		{"single residue sequence", 5, 1, 1.0, 1.0},
		{"minimal", 1, 1, 1.0, 1.0},
		{"shorter sequence", 10, 3, 2.0, 6.0},
		{"longer sequence", 5, 20, 1.5, 7.5},
		{"long model short sequence", 100, 5, 2.0, 10.0},
		{"short model long sequence", 5, 100, 2.0, 10.0},
		{"large positive", 3, 3, 1000.0, 3000.0},
		{"zero scores", 5, 5, 0.0, 0.0},
		{"all negative floors to zero", 5, 5, -2.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsq := synth.SimpleSequence(tt.l, abc)
			sc, _ := scoreFresh(t, dsq, constant(t, tt.m, tt.sc))
			assert.InDelta(t, tt.want, sc, 1e-9)
		})
	}
}

func TestScoreConstantIsMinTimesScore(t *testing.T) {
	abc := alphabet.Amino
	for m := 0; m <= 8; m++ {
		for l := 0; l <= 8; l++ {
			for _, c := range []float64{0, 0.5, 1, 3.25} {
				dsq := synth.SimpleSequence(l, abc)
				sc, _ := scoreFresh(t, dsq, constant(t, m, c))
				assert.InDelta(t, float64(min(m, l))*c, sc, 1e-9, "M=%d L=%d c=%v", m, l, c)
			}
		}
	}
}

func TestScorePatterns(t *testing.T) {
	abc := alphabet.Amino

	t.Run("alternating pattern", func(t *testing.T) {
		sc, _ := scoreFresh(t, synth.SimpleSequence(10, abc), pattern(t, 10, 3, -1))
		assert.InDelta(t, 30.0, sc, 1e-9)
	})

	t.Run("all same residue", func(t *testing.T) {
		sc, _ := scoreFresh(t, synth.SequenceOf(abc, "AAAAA"), pattern(t, 5, 3, -1))
		assert.InDelta(t, 3.0, sc, 1e-9)
	})

	t.Run("all different residues", func(t *testing.T) {
		dsq := synth.SequenceOf(abc, "ACDEFGHIKLMNPQRSTVWY")
		sc, _ := scoreFresh(t, dsq, pattern(t, 20, 2, -1))
		assert.InDelta(t, 40.0, sc, 1e-9)
	})
}

func TestScoreLargeNegative(t *testing.T) {
	abc := alphabet.Amino
	p, err := profile.New(3, abc)
	require.NoError(t, err)
	p.Fill(func(k, x int) float64 {
		if k == 1 && x == int(abc.Index('A')) {
			return 5
		}
		return -100
	})

	sc, _ := scoreFresh(t, synth.SequenceOf(abc, "AAA"), p)
	assert.InDelta(t, 5.0, sc, 1e-9)
}

func TestScoreMixedTrace(t *testing.T) {
	abc := alphabet.Amino
	p := constant(t, 4, 0)
	require.NoError(t, p.SetMatch(1, int(abc.Index('A')), 2))
	require.NoError(t, p.SetMatch(2, int(abc.Index('C')), 3))
	require.NoError(t, p.SetMatch(3, int(abc.Index('D')), 2))
	require.NoError(t, p.SetMatch(4, int(abc.Index('E')), 3))

	sc, mx := scoreFresh(t, synth.SequenceOf(abc, "ACDE"), p)
	assert.InDelta(t, 10.0, sc, 1e-9)

	for i, want := range []float64{2, 5, 7, 10} {
		v, err := mx.Match(i+1, i+1)
		require.NoError(t, err)
		assert.Equal(t, want, v, "DP(%d,%d)", i+1, i+1)
	}
}

func TestScoreSingleCell(t *testing.T) {
	abc := alphabet.Amino

	t.Run("single position over long sequence", func(t *testing.T) {
		sc, _ := scoreFresh(t, synth.SequenceOf(abc, "ACDEFGHIKL"), constant(t, 1, 5))
		assert.InDelta(t, 5.0, sc, 1e-9)
	})

	t.Run("only one residue set", func(t *testing.T) {
		p, err := profile.New(1, abc)
		require.NoError(t, err)
		require.NoError(t, p.SetMatch(1, 0, 7.5))
		sc, _ := scoreFresh(t, synth.SequenceOf(abc, "A"), p)
		assert.InDelta(t, 7.5, sc, 1e-9)
	})

	t.Run("unset scores floor to zero", func(t *testing.T) {
		p, err := profile.New(3, abc)
		require.NoError(t, err)
		sc, mx := scoreFresh(t, synth.SequenceOf(abc, "ACD"), p)
		assert.Equal(t, 0.0, sc)
		v, _ := mx.Match(2, 2)
		assert.Equal(t, 0.0, v)
	})
}

func TestScoreNonCanonicalResidues(t *testing.T) {
	abc := alphabet.Amino
	p := constant(t, 3, 1)

	tests := []struct {
		name string
		dsq  sequence.Digital
		want float64
	}{
		{"canonical", synth.SequenceOf(abc, "ACD"), 3},
		{"wildcard breaks the run", synth.SequenceOf(abc, "AXC"), 1},
		{"gap breaks the run", synth.SequenceOf(abc, "A-C"), 1},
		{"illegal breaks the run", sequence.NewDigital(0, alphabet.Illegal, 1), 1},
		{"all non-canonical", synth.SequenceOf(abc, "XB*"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, mx := scoreFresh(t, tt.dsq, p)
			assert.InDelta(t, tt.want, sc, 1e-9)

			for i := 1; i <= tt.dsq.Len(); i++ {
				if abc.IsCanonical(tt.dsq[i]) {
					continue
				}
				for k := 1; k <= p.M(); k++ {
					v, err := mx.Match(i, k)
					require.NoError(t, err)
					assert.Equal(t, 0.0, v)
				}
			}
		})
	}
}

func TestScoreEmptyDimensions(t *testing.T) {
	abc := alphabet.Amino

	t.Run("empty sequence", func(t *testing.T) {
		sc, mx := scoreFresh(t, sequence.NewDigital(), constant(t, 5, 1))
		assert.Equal(t, 0.0, sc)
		assert.Equal(t, [][]float64{{0, 0, 0, 0, 0, 0}}, mx.Rows())
	})

	t.Run("empty model", func(t *testing.T) {
		sc, mx := scoreFresh(t, synth.SequenceOf(abc, "ACDEF"), constant(t, 0, 1))
		assert.Equal(t, 0.0, sc)
		for _, row := range mx.Rows() {
			assert.Equal(t, []float64{0}, row)
		}
	})
}

func TestScoreSentinelsUnchanged(t *testing.T) {
	abc := alphabet.Amino
	dsq := synth.SequenceOf(abc, "ACDEF")
	before := append(sequence.Digital(nil), dsq...)

	scoreFresh(t, dsq, constant(t, 5, 1))

	assert.Equal(t, alphabet.Sentinel, dsq[0])
	assert.Equal(t, alphabet.Sentinel, dsq[len(dsq)-1])
	assert.Equal(t, before, dsq)
}

func TestScoreDeterministic(t *testing.T) {
	abc := alphabet.Amino
	p, err := synth.SimpleProfile(10, abc)
	require.NoError(t, err)
	dsq := synth.SimpleSequence(15, abc)

	first, mx1 := scoreFresh(t, dsq, p)
	second, mx2 := scoreFresh(t, dsq, p)

	assert.Equal(t, first, second)
	assert.Equal(t, mx1.Rows(), mx2.Rows())
	assert.Greater(t, first, 0.0)
}

func TestScoreMonotonic(t *testing.T) {
	abc := alphabet.Amino
	base, err := synth.SimpleProfile(6, abc)
	require.NoError(t, err)
	dsq := synth.SimpleSequence(12, abc)
	baseScore, _ := scoreFresh(t, dsq, base)

	for k := 1; k <= base.M(); k++ {
		for x := 0; x < abc.K(); x++ {
			p := base.Clone()
			old, err := p.Match(k, x)
			require.NoError(t, err)
			require.NoError(t, p.SetMatch(k, x, old+1.5))

			sc, _ := scoreFresh(t, dsq, p)
			assert.GreaterOrEqual(t, sc, baseScore, "raising (%d,%d)", k, x)
		}
	}
}

func TestScoreExtremeValues(t *testing.T) {
	abc := alphabet.Amino

	t.Run("NaN cell floors to zero", func(t *testing.T) {
		p := constant(t, 2, 1)
		require.NoError(t, p.SetMatch(1, 0, math.NaN()))
		sc, mx := scoreFresh(t, synth.SequenceOf(abc, "AC"), p)
		v, _ := mx.Match(1, 1)
		assert.Equal(t, 0.0, v)
		assert.InDelta(t, 1.0, sc, 1e-9)
	})

	t.Run("positive infinity propagates", func(t *testing.T) {
		p := constant(t, 2, 1)
		require.NoError(t, p.SetMatch(1, 0, math.Inf(1)))
		sc, _ := scoreFresh(t, synth.SequenceOf(abc, "AC"), p)
		assert.True(t, math.IsInf(sc, 1))
	})
}

func TestScoreErrors(t *testing.T) {
	abc := alphabet.Amino
	p := constant(t, 5, 1)
	dsq := synth.SimpleSequence(5, abc)

	t.Run("model dimension mismatch", func(t *testing.T) {
		mx, err := dpmatrix.New(4, 5)
		require.NoError(t, err)
		_, err = Score(dsq, p, mx)
		require.ErrorIs(t, err, ErrDimensionMismatch)

		var de *DimensionError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 5, de.ProfileM)
		assert.Equal(t, 4, de.MatrixM)
	})

	t.Run("sequence dimension mismatch", func(t *testing.T) {
		mx, err := dpmatrix.New(5, 6)
		require.NoError(t, err)
		_, err = Score(dsq, p, mx)
		require.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("malformed sequence", func(t *testing.T) {
		mx, err := dpmatrix.New(5, 0)
		require.NoError(t, err)
		_, err = Score(sequence.Digital{alphabet.Sentinel}, p, mx)
		require.ErrorIs(t, err, ErrMalformedSequence)
	})

	t.Run("nil arguments", func(t *testing.T) {
		mx, err := dpmatrix.New(5, 5)
		require.NoError(t, err)
		_, err = Score(dsq, nil, mx)
		require.Error(t, err)
		_, err = Score(dsq, p, nil)
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	abc := alphabet.Amino
	sc, mx, err := Run(synth.SequenceOf(abc, "ACDEF"), constant(t, 5, 1))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, sc, 1e-9)
	assert.Equal(t, 5, mx.M())
	assert.Equal(t, 5, mx.L())

	_, _, err = Run(nil, constant(t, 5, 1))
	require.ErrorIs(t, err, ErrMalformedSequence)
}
