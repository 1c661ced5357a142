// Package refgen generates the 6-digit external references used for
// purchase orders, replenishment orders and product SKUs.
//
// References are drawn uniformly from [100000, 999999] and re-drawn on
// collision against a caller-supplied existence predicate. The check is a
// single non-blocking probe per iteration, not a lock: callers must run the
// whole generate+insert sequence inside one transaction, otherwise two
// concurrent writers can race the same candidate.
package refgen

import (
	"context"
	"math/rand/v2"
)

// RefMin and RefMax bound the external reference space.
const (
	RefMin int64 = 100000
	RefMax int64 = 999999
)

// ExistsFunc reports whether a candidate reference is already taken.
// Backed by persistent storage; evaluated inside the caller's transaction.
type ExistsFunc func(ctx context.Context, ref int64) (bool, error)

// Generator produces unique 6-digit references.
type Generator interface {
	// Next returns a reference not currently taken according to exists.
	// Loops until a free value is found or ctx is cancelled. No retry cap
	// is imposed; the 900000-value space is sparsely occupied in practice.
	Next(ctx context.Context, exists ExistsFunc) (int64, error)
}

// Service implements Generator with a uniform RNG.
type Service struct {
	draw func() int64
}

// New creates a Service using the process-wide random source.
func New() *Service {
	return &Service{
		draw: func() int64 {
			return RefMin + rand.Int64N(RefMax-RefMin+1)
		},
	}
}

// NewWithDraw creates a Service with an injected draw function.
// Used by tests to script the candidate sequence.
func NewWithDraw(draw func() int64) *Service {
	return &Service{draw: draw}
}

// Next implements Generator.
func (s *Service) Next(ctx context.Context, exists ExistsFunc) (int64, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		candidate := s.draw()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return 0, err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// Ensure interface compliance at compile time.
var _ Generator = (*Service)(nil)
