package session

import "sync/atomic"

// IDGenerator hands out integer identifiers that are never repeated for the
// lifetime of the generator. It is not persisted; a generator rebuilt from a
// snapshot is seeded above the highest identifier already in use.
type IDGenerator struct {
	last atomic.Int64
}

// NewIDGenerator returns a generator whose first Next call yields after+1.
func NewIDGenerator(after int64) *IDGenerator {
	g := &IDGenerator{}
	g.last.Store(after)
	return g
}

// Next returns a previously unused identifier. Safe for concurrent use.
func (g *IDGenerator) Next() int64 {
	return g.last.Add(1)
}
