package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tebeka/atexit"

	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/kernel"
)

// Builder constructs an Engine with a fluent, chainable API, the same
// shape the kernel's own component builders use.
type Builder struct {
	kernel     kernel.Kernel
	introspect kernel.Introspect
	mesher     kernel.Mesher
	logWriter  io.Writer
	queueSize  int
	nextID     func(prefix string) string
}

// NewBuilder returns a Builder seeded with workable defaults: an
// unbuffered-feeling but small command queue and logs to the writer set
// with WithLogWriter (discarded if none is set).
func NewBuilder() Builder {
	return Builder{queueSize: 16}
}

// WithKernel sets the mutating kernel capability the engine rebuilds
// against.
func (b Builder) WithKernel(k kernel.Kernel) Builder {
	b.kernel = k
	return b
}

// WithIntrospect sets the read-only introspection capability used by the
// GeomRef resolver, the diff machinery, and mesh-view face attribution.
func (b Builder) WithIntrospect(in kernel.Introspect) Builder {
	b.introspect = in
	return b
}

// WithMesher sets the triangulator used to build MeshViews and STL
// exports.
func (b Builder) WithMesher(m kernel.Mesher) Builder {
	b.mesher = m
	return b
}

// WithQueueSize sets the command queue's buffer depth.
func (b Builder) WithQueueSize(n int) Builder {
	b.queueSize = n
	return b
}

// WithLogWriter sets where the engine's structured log records go.
func (b Builder) WithLogWriter(w io.Writer) Builder {
	b.logWriter = w
	return b
}

// WithIDGenerator overrides how auto-generated feature ids (for
// FinishSketch-committed sketches) are minted; the default mints a
// random UUID per id, so tests that need deterministic ids should
// override it.
func (b Builder) WithIDGenerator(fn func(prefix string) string) Builder {
	b.nextID = fn
	return b
}

// defaultIDGenerator mints prefix-tagged UUIDs, the same role
// `jtomasevic/synapse` uses `google/uuid` for: a stable, collision-free
// id handed out with no central counter to coordinate.
func defaultIDGenerator(prefix string) string {
	return prefix + uuid.NewString()
}

// Build assembles the Engine and starts its single worker goroutine.
// Build registers an atexit teardown that logs a final "engine teardown"
// line when the process exits through atexit.Exit; it does not run on
// os.Exit or a plain return from main.
func (b Builder) Build(ctx context.Context) *Engine {
	w := b.logWriter
	if w == nil {
		w = io.Discard
	}
	logger := slog.New(slog.NewJSONHandler(w, nil))

	nextID := b.nextID
	if nextID == nil {
		nextID = defaultIDGenerator
	}

	e := &Engine{
		tree:       feature.NewTree(),
		rebuild:    &feature.RebuildEngine{Kernel: b.kernel, Introspect: b.introspect},
		mesher:     b.mesher,
		introspect: b.introspect,
		logger:     logger,
		nextID:     nextID,
		queue:      make(chan inbox, b.queueSize),
		done:       make(chan struct{}),
	}

	atexit.Register(func() {
		e.logger.Info("engine teardown")
	})

	go e.run(ctx)
	return e
}
