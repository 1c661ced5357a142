package refgen

import (
	"context"
)

// MockGenerator is a test implementation of Generator.
// Use in unit tests to make generated references deterministic.
type MockGenerator struct {
	// Refs is the scripted sequence of references to hand out.
	Refs []int64

	// NextFunc overrides Next entirely when set.
	NextFunc func(ctx context.Context, exists ExistsFunc) (int64, error)

	pos int
}

// Next implements Generator.
func (m *MockGenerator) Next(ctx context.Context, exists ExistsFunc) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, exists)
	}
	if m.pos < len(m.Refs) {
		ref := m.Refs[m.pos]
		m.pos++
		return ref, nil
	}
	// Default: predictable counter inside the valid range.
	m.pos++
	return RefMin + int64(m.pos) - 1, nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
