// Package engine owns the single feature tree, kernel, and undo history
// behind one modeling session, and drives them from a FIFO command queue
// the way the concurrency model describes: one logical worker, commands
// processed to completion in arrival order, at most one rebuild active
// at a time.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/protocol"
	"github.com/foundrycad/waffle-iron/sketch"
)

// inbox carries a command alongside the channel its eventual events are
// delivered on, so a caller can wait for the specific response to its
// own request without racing other requesters' traffic.
type inbox struct {
	cmd    protocol.Command
	events chan<- protocol.Event
}

// sketchSession is the in-progress staging area opened by BeginSketch and
// closed by FinishSketch. A session holds no kernel state of its own;
// it is just the entity/constraint list that will become one SketchOp
// feature once finished.
type sketchSession struct {
	open        bool
	plane       geomref.GeomRef
	entities    []sketch.Entity
	constraints []sketch.Constraint
}

// Engine is the process-wide modeling context described in the
// concurrency model: its lifecycle spans the whole session, but every
// mutation flows through Submit rather than direct field access.
type Engine struct {
	tree       *feature.FeatureTree
	rebuild    *feature.RebuildEngine
	history    feature.History
	mesher     kernel.Mesher
	introspect kernel.Introspect
	logger     *slog.Logger
	nextID     func(prefix string) string

	session sketchSession

	queue chan inbox
	done  chan struct{}
}

// Submit enqueues cmd and blocks until the engine has processed it,
// returning every event the engine emitted in response (in emission
// order; usually exactly one ModelUpdated or Error, sometimes more).
func (e *Engine) Submit(ctx context.Context, cmd protocol.Command) ([]protocol.Event, error) {
	events := make(chan protocol.Event, 8)
	select {
	case <-e.done:
		return nil, fmt.Errorf("engine: closed")
	default:
	}
	select {
	case e.queue <- inbox{cmd: cmd, events: events}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-e.done:
		return nil, fmt.Errorf("engine: closed")
	}

	var out []protocol.Event
	for evt := range events {
		out = append(out, evt)
	}
	return out, nil
}

// Close stops the engine's worker goroutine after any in-flight command
// finishes. Submitting after Close returns an error.
func (e *Engine) Close() {
	close(e.done)
}

// run is the single FIFO worker loop: one command handled to completion,
// including its rebuild, before the next is dequeued.
func (e *Engine) run(ctx context.Context) {
	for {
		select {
		case msg := <-e.queue:
			e.handle(ctx, msg)
			close(msg.events)
		case <-e.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine) emit(msg inbox, evt protocol.Event) {
	msg.events <- evt
}

func (e *Engine) fail(msg inbox, featureID *string, err error) {
	e.logger.Warn("command failed", "error", err)
	e.emit(msg, protocol.Error{Message: err.Error(), FeatureID: featureID})
}

// modelUpdated rebuilds the tree and emits the resulting ModelUpdated
// (or an Error if the rebuild itself could not run at all; per-feature
// failures surface in ModelUpdated.Diagnostics, not as a top-level
// Error).
func (e *Engine) modelUpdated(ctx context.Context, msg inbox) {
	result, err := e.rebuild.Rebuild(ctx, e.tree)
	if err != nil {
		e.fail(msg, nil, err)
		return
	}
	for _, d := range result.Diagnostics {
		e.logger.Info("rebuild diagnostic", "severity", d.Severity, "feature", d.FeatureID, "message", d.Message)
	}

	meshes, err := e.buildMeshes(ctx)
	if err != nil {
		e.fail(msg, nil, err)
		return
	}

	e.emit(msg, protocol.ModelUpdated{
		Features:    protocol.FeatureSummaries(e.tree),
		ActiveIndex: copyIntPtr(e.tree.ActiveIndex),
		Meshes:      meshes,
		Diagnostics: result.Diagnostics,
	})
}

// copyIntPtr detaches an event's ActiveIndex from the tree's own pointer
// so a later SetRollbackIndex can't reach back through an event the
// shell is still holding, even in-process.
func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (e *Engine) buildMeshes(ctx context.Context) ([]protocol.MeshView, error) {
	handle, ok := e.tree.TipSolid()
	if !ok {
		return nil, nil
	}
	view, err := meshView(ctx, e.mesher, e.introspect, handle, e.tipFeatureID())
	if err != nil {
		return nil, err
	}
	return []protocol.MeshView{view}, nil
}

// tipFeatureID returns the id of the feature whose output TipSolid
// currently returns, matching the same scan TipSolid itself runs.
func (e *Engine) tipFeatureID() string {
	limit := e.tree.ActiveIndex
	n := len(e.tree.Features)
	if limit != nil && *limit < n {
		n = *limit
	}
	for i := n - 1; i >= 0; i-- {
		f := e.tree.Features[i]
		if cached, ok := e.tree.Cache[f.ID]; ok {
			if _, ok := cached.OpResult.Outputs[ops.Main]; ok {
				return f.ID
			}
		}
	}
	return ""
}

func (e *Engine) newFeatureID(prefix string) string {
	return e.nextID(prefix)
}
