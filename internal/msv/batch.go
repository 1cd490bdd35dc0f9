package msv

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aria-lang/msvfilter-go/internal/profile"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
)

// Result is the score of one sequence in a batch.
type Result struct {
	Name  string  `json:"name"`
	L     int     `json:"length"`
	Score float64 `json:"score"`
}

// ScoreAll scores every sequence against prof using up to workers
// goroutines (GOMAXPROCS when workers < 1). Each in-flight call holds its
// own pooled matrix; prof is shared read-only. Results keep input order.
// Cancellation is checked between sequences, not inside a single call.
func ScoreAll(ctx context.Context, prof *profile.Profile, seqs []*sequence.Sequence, workers int) ([]Result, error) {
	if prof == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	for i, seq := range seqs {
		if seq == nil {
			return nil, fmt.Errorf("sequence %d is nil", i)
		}
	}

	results := make([]Result, len(seqs))
	pool := NewPool()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seq := range seqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sc, err := pool.Score(seq.Dsq, prof)
			if err != nil {
				return fmt.Errorf("scoring %q: %w", seq.Name, err)
			}
			results[i] = Result{Name: seq.Name, L: seq.Len(), Score: sc}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
