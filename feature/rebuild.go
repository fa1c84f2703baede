package feature

import (
	"context"
	"fmt"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/sketch"
	"github.com/foundrycad/waffle-iron/sketch/solve"
)

// RebuildEngine executes a FeatureTree's operations against one kernel,
// memoizing by fingerprint and implicitly suppressing any feature whose
// op fails for a given rebuild.
type RebuildEngine struct {
	Kernel     kernel.Kernel
	Introspect kernel.Introspect
	Solver     solve.Solver // defaults to solve.NewLocal() when nil
}

func (e *RebuildEngine) solver() solve.Solver {
	if e.Solver != nil {
		return e.Solver
	}
	return solve.NewLocal()
}

// Result summarizes one Rebuild call.
type Result struct {
	FirstDirty  int
	Diagnostics []diag.Diagnostic
}

// Rebuild implements the incremental rebuild algorithm: find the first
// feature whose suppressed flag, parameters, or upstream
// fingerprint changed, then re-execute everything from there through the
// active index, suppressing (and diagnosing) any feature whose op fails
// without aborting the rest of the tree.
func (e *RebuildEngine) Rebuild(ctx context.Context, tree *FeatureTree) (Result, error) {
	firstDirty := e.computeFirstDirty(tree)
	limit := tree.activeLimit()

	var diagnostics []diag.Diagnostic
	upstream := uint64(0)

	for i := 0; i < limit; i++ {
		f := tree.Features[i]
		paramFP := fingerprintOperation(f.Operation)

		if i < firstDirty {
			cached := tree.Cache[f.ID]
			upstream = combineFingerprint(cached.ParamFingerprint, cached.UpstreamFingerprint)
			continue
		}

		if f.Suppressed {
			delete(tree.Cache, f.ID)
			upstream = combineFingerprint(paramFP, upstream)
			continue
		}

		select {
		case <-ctx.Done():
			return Result{FirstDirty: firstDirty, Diagnostics: diagnostics}, ctx.Err()
		default:
		}

		result, profileFace, err := e.executeFeature(ctx, tree, f, &diagnostics)
		if err != nil {
			delete(tree.Cache, f.ID)
			diagnostics = append(diagnostics, diag.Diagnostic{
				Severity:  diag.SeverityError,
				FeatureID: f.ID,
				Message:   err.Error(),
			})
			upstream = combineFingerprint(paramFP, upstream)
			continue
		}

		upstreamBefore := upstream
		upstream = combineFingerprint(paramFP, upstream)
		tree.Cache[f.ID] = CachedBuild{
			OpResult:            result,
			ProfileFace:         profileFace,
			Suppressed:          false,
			ParamFingerprint:    paramFP,
			UpstreamFingerprint: upstreamBefore,
		}
	}

	return Result{FirstDirty: firstDirty, Diagnostics: diagnostics}, nil
}

func (e *RebuildEngine) computeFirstDirty(tree *FeatureTree) int {
	upstream := uint64(0)
	for i, f := range tree.Features {
		paramFP := fingerprintOperation(f.Operation)
		cached, ok := tree.Cache[f.ID]
		if !ok || cached.Suppressed != f.Suppressed || cached.ParamFingerprint != paramFP || cached.UpstreamFingerprint != upstream {
			return i
		}
		upstream = combineFingerprint(paramFP, upstream)
	}
	return len(tree.Features)
}

func (e *RebuildEngine) executeFeature(ctx context.Context, tree *FeatureTree, f *Feature, diags *[]diag.Diagnostic) (ops.OpResult, sig.KernelId, error) {
	switch op := f.Operation.(type) {
	case SketchOp:
		return e.executeSketch(ctx, tree, op, diags)
	case ExtrudeOp:
		r, err := e.executeExtrude(ctx, tree, op, diags)
		return r, "", err
	case RevolveOp:
		r, err := e.executeRevolve(ctx, tree, op, diags)
		return r, "", err
	case FilletOp:
		r, err := e.executeFillet(ctx, tree, op, diags)
		return r, "", err
	case ChamferOp:
		r, err := e.executeChamfer(ctx, tree, op, diags)
		return r, "", err
	case ShellOp:
		r, err := e.executeShell(ctx, tree, op, diags)
		return r, "", err
	case BooleanOp:
		r, err := e.executeBoolean(ctx, tree, op, diags)
		return r, "", err
	default:
		return ops.OpResult{}, "", fmt.Errorf("feature: unhandled operation type %T", f.Operation)
	}
}

func (e *RebuildEngine) executeSketch(ctx context.Context, tree *FeatureTree, op SketchOp, diags *[]diag.Diagnostic) (ops.OpResult, sig.KernelId, error) {
	plane, err := e.resolveRef(ctx, tree, op.Plane, diags)
	if err != nil {
		return ops.OpResult{}, "", err
	}

	sk := &sketch.Sketch{Entities: op.Entities, Constraints: op.Constraints}
	if err := sk.Validate(); err != nil {
		return ops.OpResult{}, "", &diag.ValidationError{Name: "sketch", Reason: err.Error()}
	}

	outcome, err := solve.ApplyTo(ctx, e.solver(), sk)
	if err != nil {
		return ops.OpResult{}, "", err
	}
	if outcome.Status != solve.Ok {
		return ops.OpResult{}, "", &diag.SolverError{
			Kind:    diag.SolverKind(outcome.Status.String()),
			Message: "sketch did not solve to completion",
		}
	}
	if len(sk.Profiles) == 0 {
		return ops.OpResult{}, "", &diag.ValidationError{Name: "sketch", Reason: "no closed profile to extrude from"}
	}

	profile := sk.Profiles[0]
	loop := make([][2]float64, len(profile.Points))
	for i, id := range profile.Points {
		p := sk.Positions[id]
		loop[i] = [2]float64{p.X, p.Y}
	}

	faceID, err := e.Kernel.RegisterProfileFace(ctx, kernel.Profile{
		Plane:   plane.Workplane,
		Loop:    loop,
		IsOuter: profile.IsOuter,
	})
	if err != nil {
		return ops.OpResult{}, "", err
	}

	return ops.OpResult{
		Roles: []ops.RoleAssignment{{ID: faceID, Role: ops.SemanticRole{Kind: ops.ProfileFace}}},
	}, faceID, nil
}

func (e *RebuildEngine) executeExtrude(ctx context.Context, tree *FeatureTree, op ExtrudeOp, diags *[]diag.Diagnostic) (ops.OpResult, error) {
	face, err := e.resolveRef(ctx, tree, op.Profile, diags)
	if err != nil {
		return ops.OpResult{}, err
	}

	params := ops.ExtrudeParams{
		Face:      face.ID,
		Direction: op.Direction,
		Depth:     op.Depth,
		Symmetric: op.Symmetric,
	}
	if op.Cut {
		solid, err := e.solidOf(tree, op.CutTargetFeatureID)
		if err != nil {
			return ops.OpResult{}, err
		}
		params.Cut = true
		params.CutTarget = solid
	}

	return ops.ExecuteExtrude(ctx, e.Kernel, e.Introspect, params)
}

func (e *RebuildEngine) executeRevolve(ctx context.Context, tree *FeatureTree, op RevolveOp, diags *[]diag.Diagnostic) (ops.OpResult, error) {
	face, err := e.resolveRef(ctx, tree, op.Profile, diags)
	if err != nil {
		return ops.OpResult{}, err
	}
	return ops.ExecuteRevolve(ctx, e.Kernel, e.Introspect, ops.RevolveParams{
		Face:       face.ID,
		AxisOrigin: op.AxisOrigin,
		AxisDir:    op.AxisDir,
		AngleRad:   op.AngleRad,
	})
}

func (e *RebuildEngine) executeFillet(ctx context.Context, tree *FeatureTree, op FilletOp, diags *[]diag.Diagnostic) (ops.OpResult, error) {
	solid, err := e.solidOf(tree, op.SolidFeatureID)
	if err != nil {
		return ops.OpResult{}, err
	}
	edges, err := e.resolveRefs(ctx, tree, op.Edges, diags)
	if err != nil {
		return ops.OpResult{}, err
	}
	return ops.ExecuteFillet(ctx, e.Kernel, e.Introspect, ops.FilletParams{Solid: solid, Edges: edges, Radius: op.Radius})
}

func (e *RebuildEngine) executeChamfer(ctx context.Context, tree *FeatureTree, op ChamferOp, diags *[]diag.Diagnostic) (ops.OpResult, error) {
	solid, err := e.solidOf(tree, op.SolidFeatureID)
	if err != nil {
		return ops.OpResult{}, err
	}
	edges, err := e.resolveRefs(ctx, tree, op.Edges, diags)
	if err != nil {
		return ops.OpResult{}, err
	}
	return ops.ExecuteChamfer(ctx, e.Kernel, e.Introspect, ops.ChamferParams{Solid: solid, Edges: edges, Distance: op.Distance})
}

func (e *RebuildEngine) executeShell(ctx context.Context, tree *FeatureTree, op ShellOp, diags *[]diag.Diagnostic) (ops.OpResult, error) {
	solid, err := e.solidOf(tree, op.SolidFeatureID)
	if err != nil {
		return ops.OpResult{}, err
	}
	faces, err := e.resolveRefs(ctx, tree, op.OpenFaces, diags)
	if err != nil {
		return ops.OpResult{}, err
	}
	return ops.ExecuteShell(ctx, e.Kernel, e.Introspect, ops.ShellParams{Solid: solid, OpenFaces: faces, Thickness: op.Thickness})
}

func (e *RebuildEngine) executeBoolean(ctx context.Context, tree *FeatureTree, op BooleanOp, diags *[]diag.Diagnostic) (ops.OpResult, error) {
	bodyA, err := e.solidOf(tree, op.BodyA)
	if err != nil {
		return ops.OpResult{}, err
	}
	bodyB, err := e.solidOf(tree, op.BodyB)
	if err != nil {
		return ops.OpResult{}, err
	}
	return ops.ExecuteBoolean(ctx, e.Kernel, e.Introspect, ops.BooleanParams{Op: op.Kind, BodyA: bodyA, BodyB: bodyB})
}

func (e *RebuildEngine) solidOf(tree *FeatureTree, featureID string) (kernel.SolidHandle, error) {
	cached, ok := tree.Cache[featureID]
	if !ok {
		return "", &diag.RebuildError{Kind: diag.UpstreamFailed, FeatureID: featureID, Message: "upstream feature has no cached build"}
	}
	solid, ok := cached.OpResult.Outputs[ops.Main]
	if !ok {
		return "", &diag.RebuildError{Kind: diag.UpstreamFailed, FeatureID: featureID, Message: "upstream feature produced no solid output"}
	}
	return solid, nil
}

func (e *RebuildEngine) anchorStateFor(tree *FeatureTree, anchor geomref.Anchor) (geomref.AnchorState, error) {
	if anchor.Kind == geomref.AnchorDatumPlane {
		return geomref.AnchorState{}, nil
	}
	featureID := anchor.FeatureID
	if anchor.Kind == geomref.AnchorDatum {
		featureID = anchor.DatumID
	}
	cached, ok := tree.Cache[featureID]
	if !ok {
		return geomref.AnchorState{}, &diag.RebuildError{Kind: diag.GeomRefBroken, FeatureID: featureID, Message: "anchor feature has no cached build"}
	}
	return geomref.AnchorState{Solid: cached.OpResult.Outputs[ops.Main], Roles: cached.OpResult.Roles}, nil
}

func (e *RebuildEngine) resolveRef(ctx context.Context, tree *FeatureTree, ref geomref.GeomRef, diags *[]diag.Diagnostic) (geomref.Resolved, error) {
	anchor, err := e.anchorStateFor(tree, ref.Anchor)
	if err != nil {
		return geomref.Resolved{}, err
	}
	resolver := geomref.Resolver{Introspect: e.Introspect}
	resolved, warn, err := resolver.Resolve(ctx, ref, anchor)
	if err != nil {
		return geomref.Resolved{}, err
	}
	if warn != nil {
		*diags = append(*diags, diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Message:  fmt.Sprintf("reference resolved via best-effort match (similarity %.2f)", warn.Similarity),
		})
	}
	return resolved, nil
}

func (e *RebuildEngine) resolveRefs(ctx context.Context, tree *FeatureTree, refs []geomref.GeomRef, diags *[]diag.Diagnostic) ([]sig.KernelId, error) {
	out := make([]sig.KernelId, len(refs))
	for i, ref := range refs {
		resolved, err := e.resolveRef(ctx, tree, ref, diags)
		if err != nil {
			return nil, err
		}
		out[i] = resolved.ID
	}
	return out, nil
}
