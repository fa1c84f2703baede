package engine

import (
	"context"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/project"
	"github.com/foundrycad/waffle-iron/project/stlexport"
	"github.com/foundrycad/waffle-iron/protocol"
	"github.com/foundrycad/waffle-iron/sketch/solve"
)

// handle dispatches one dequeued command to completion, emitting every
// event it produces on msg.events before returning.
func (e *Engine) handle(ctx context.Context, msg inbox) {
	switch cmd := msg.cmd.(type) {
	case protocol.AddFeature:
		e.history.Record(e.tree)
		if _, err := e.tree.AddFeature(cmd.FeatureID, cmd.Name, cmd.Operation); err != nil {
			e.fail(msg, &cmd.FeatureID, err)
			return
		}
		e.modelUpdated(ctx, msg)

	case protocol.DeleteFeature:
		e.history.Record(e.tree)
		if err := e.tree.DeleteFeature(cmd.FeatureID); err != nil {
			e.fail(msg, &cmd.FeatureID, err)
			return
		}
		e.modelUpdated(ctx, msg)

	case protocol.EditFeature:
		e.history.Record(e.tree)
		if err := e.tree.EditFeature(cmd.FeatureID, cmd.Operation); err != nil {
			e.fail(msg, &cmd.FeatureID, err)
			return
		}
		e.modelUpdated(ctx, msg)

	case protocol.RenameFeature:
		// A rename touches no geometry and nothing downstream of it can
		// have gone stale, so this skips history.Record and the rebuild
		// that modelUpdated would otherwise trigger.
		if err := e.tree.RenameFeature(cmd.FeatureID, cmd.NewName); err != nil {
			e.fail(msg, &cmd.FeatureID, err)
			return
		}
		e.emit(msg, protocol.ModelUpdated{Features: protocol.FeatureSummaries(e.tree), ActiveIndex: copyIntPtr(e.tree.ActiveIndex)})

	case protocol.ReorderFeature:
		e.history.Record(e.tree)
		if err := e.tree.ReorderFeature(cmd.FeatureID, cmd.NewPosition); err != nil {
			e.fail(msg, &cmd.FeatureID, err)
			return
		}
		e.modelUpdated(ctx, msg)

	case protocol.SuppressFeature:
		e.history.Record(e.tree)
		if err := e.tree.SuppressFeature(cmd.FeatureID, cmd.Suppressed); err != nil {
			e.fail(msg, &cmd.FeatureID, err)
			return
		}
		e.modelUpdated(ctx, msg)

	case protocol.SetRollbackIndex:
		e.history.Record(e.tree)
		e.tree.SetRollbackIndex(cmd.Index)
		e.modelUpdated(ctx, msg)

	case protocol.BeginSketch:
		e.session = sketchSession{open: true, plane: cmd.Plane}

	case protocol.AddSketchEntity:
		if !e.session.open {
			e.fail(msg, nil, &diag.ValidationError{Name: "sketch_session", Reason: "no BeginSketch in progress"})
			return
		}
		e.session.entities = append(e.session.entities, cmd.Entity)

	case protocol.AddConstraint:
		if !e.session.open {
			e.fail(msg, nil, &diag.ValidationError{Name: "sketch_session", Reason: "no BeginSketch in progress"})
			return
		}
		e.session.constraints = append(e.session.constraints, cmd.Constraint)

	case protocol.FinishSketch:
		e.finishSketch(ctx, msg, cmd)

	case protocol.SolveSketchLocal:
		e.solveSketchLocal(ctx, msg, cmd)

	case protocol.HoverEntity:
		// Selection/hover state is shell-side UI state; the engine only
		// validates that the reference still resolves against the live
		// tip, surfacing an Error if it does not.
		if _, err := e.resolveSelection(ctx, cmd.GeomRef); err != nil {
			e.fail(msg, nil, err)
		}

	case protocol.SelectEntity:
		if _, err := e.resolveSelection(ctx, cmd.GeomRef); err != nil {
			e.fail(msg, nil, err)
		}

	case protocol.Undo:
		if e.history.Undo(e.tree) {
			e.modelUpdated(ctx, msg)
		}

	case protocol.Redo:
		if e.history.Redo(e.tree) {
			e.modelUpdated(ctx, msg)
		}

	case protocol.SaveProject:
		data, err := project.Marshal(e.tree)
		if err != nil {
			e.fail(msg, nil, err)
			return
		}
		e.emit(msg, protocol.SaveReady{JSONData: data})

	case protocol.LoadProject:
		loaded, err := project.Unmarshal(cmd.Data)
		if err != nil {
			e.fail(msg, nil, err)
			return
		}
		e.tree = loaded
		e.history = feature.History{}
		e.modelUpdated(ctx, msg)

	case protocol.ExportStl:
		handle, ok := e.tree.TipSolid()
		if !ok {
			e.fail(msg, nil, &diag.ValidationError{Name: "tip_solid", Reason: "no solid at the current rollback position"})
			return
		}
		data, err := stlexport.Export(ctx, e.mesher, handle, "waffle-iron")
		if err != nil {
			e.fail(msg, nil, err)
			return
		}
		e.emit(msg, protocol.StlExportReady{StlData: data})
	}
}

// finishSketch commits the currently staged entities/constraints into a
// new SketchOp feature anchored on the plane BeginSketch opened. The
// solved_positions/profiles the shell attaches are advisory preview data
// only; rebuild re-solves authoritatively right after.
func (e *Engine) finishSketch(ctx context.Context, msg inbox, cmd protocol.FinishSketch) {
	if !e.session.open {
		e.fail(msg, nil, &diag.ValidationError{Name: "sketch_session", Reason: "no BeginSketch in progress"})
		return
	}

	op := feature.SketchOp{
		Plane:       e.session.plane,
		Entities:    e.session.entities,
		Constraints: e.session.constraints,
	}
	e.session = sketchSession{}

	id := e.newFeatureID("sketch")
	e.history.Record(e.tree)
	if _, err := e.tree.AddFeature(id, id, op); err != nil {
		e.fail(msg, &id, err)
		return
	}
	e.modelUpdated(ctx, msg)
}

// solveSketchLocal runs the solver against a bare entity/constraint list
// without touching the feature tree, per the protocol's "bypass" note.
func (e *Engine) solveSketchLocal(ctx context.Context, msg inbox, cmd protocol.SolveSketchLocal) {
	solver := e.rebuild.Solver
	if solver == nil {
		solver = solve.NewLocal()
	}
	outcome, err := solver.Solve(ctx, cmd.Entities, cmd.Constraints, solve.Hints(cmd.Positions))
	if err != nil {
		e.fail(msg, nil, err)
		return
	}

	positions := cmd.Positions
	if outcome.Status == solve.Ok {
		positions = outcome.Positions
	}

	e.emit(msg, protocol.SketchSolved{
		Positions: positions,
		Status:    outcome.Status,
		DOF:       outcome.DOF,
		Failed:    outcome.Failed,
		SolveTime: outcome.SolveTime,
	})
}
