package memkernel

import (
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

// Builder constructs a Kernel with a fluent, chainable API, the same
// shape used across this module's other component builders.
type Builder struct {
	tolerance float64
	segments  int
}

// NewBuilder returns a Builder seeded with workable defaults.
func NewBuilder() *Builder {
	return &Builder{tolerance: 1e-6, segments: 24}
}

// WithTolerance sets the absolute distance tolerance stored on the
// Kernel; no current kernel operation reads it.
func (b *Builder) WithTolerance(t float64) *Builder {
	b.tolerance = t
	return b
}

// WithSegments sets the number of flat facets used to approximate a
// revolve's curved surface.
func (b *Builder) WithSegments(n int) *Builder {
	b.segments = n
	return b
}

// Build materializes the Kernel.
func (b *Builder) Build() *Kernel {
	segments := b.segments
	if segments < 3 {
		segments = 3
	}
	return &Kernel{
		tolerance: b.tolerance,
		segments:  segments,
		solids:    make(map[kernel.SolidHandle]*solid),
		profiles:  make(map[sig.KernelId]kernel.Profile),
	}
}
