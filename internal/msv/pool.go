package msv

import (
	"fmt"
	"sync"

	"github.com/aria-lang/msvfilter-go/internal/dpmatrix"
	"github.com/aria-lang/msvfilter-go/internal/profile"
	"github.com/aria-lang/msvfilter-go/internal/sequence"
)

// Pool recycles DP matrices between scoring calls. A matrix handed out by
// Get belongs to the caller until it is passed back to Put.
type Pool struct {
	p sync.Pool
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		p: sync.Pool{
			New: func() any { return &dpmatrix.Matrix{} },
		},
	}
}

// Get returns a matrix initialized for (m, l).
func (p *Pool) Get(m, l int) (*dpmatrix.Matrix, error) {
	mx := p.p.Get().(*dpmatrix.Matrix)
	if err := mx.Reinit(m, l); err != nil {
		p.p.Put(mx)
		return nil, err
	}
	return mx, nil
}

// Put returns mx to the pool. The caller must not use mx afterwards.
func (p *Pool) Put(mx *dpmatrix.Matrix) {
	if mx == nil {
		return
	}
	p.p.Put(mx)
}

// Score scores dsq against prof with a pooled matrix that is released
// before returning.
func (p *Pool) Score(dsq sequence.Digital, prof *profile.Profile) (float64, error) {
	if len(dsq) < 2 {
		return 0, ErrMalformedSequence
	}
	if prof == nil {
		return 0, fmt.Errorf("profile is required")
	}

	mx, err := p.Get(prof.M(), dsq.Len())
	if err != nil {
		return 0, err
	}
	defer p.Put(mx)

	return Score(dsq, prof, mx)
}
