// Package ops implements the modeling operations (extrude, revolve,
// fillet, chamfer, shell, boolean): each wraps a single kernel mutation
// in the uniform before/after/diff/role-assignment shape, producing an
// OpResult that is the sole provenance record the rest of the module
// trusts.
package ops

import (
	"sort"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/topodiff"
)

// OutputKey names one of an op's output solids; almost every op produces
// just Main, but boolean keeps the door open for future multi-output ops.
type OutputKey string

const Main OutputKey = "Main"

// RoleKind enumerates the fixed set of semantic roles an op can assign to
// a face/edge it produces.
type RoleKind int

const (
	EndCapPositive RoleKind = iota
	EndCapNegative
	SideFace
	RevStartFace
	RevEndFace
	FilletFace
	ChamferFace
	ShellInnerFace
	BooleanBodyAFace
	BooleanBodyBFace
	ProfileFace
	PatternInstance
)

func (k RoleKind) String() string {
	switch k {
	case EndCapPositive:
		return "EndCapPositive"
	case EndCapNegative:
		return "EndCapNegative"
	case SideFace:
		return "SideFace"
	case RevStartFace:
		return "RevStartFace"
	case RevEndFace:
		return "RevEndFace"
	case FilletFace:
		return "FilletFace"
	case ChamferFace:
		return "ChamferFace"
	case ShellInnerFace:
		return "ShellInnerFace"
	case BooleanBodyAFace:
		return "BooleanBodyAFace"
	case BooleanBodyBFace:
		return "BooleanBodyBFace"
	case ProfileFace:
		return "ProfileFace"
	case PatternInstance:
		return "PatternInstance"
	default:
		return "Unknown"
	}
}

// SemanticRole tags one kernel entity with a role and, for indexed roles
// (SideFace, FilletFace, ...), a stable ordinal. Index is meaningless (0)
// for the unindexed roles (EndCapPositive/Negative, RevStartFace,
// RevEndFace).
type SemanticRole struct {
	Kind  RoleKind
	Index int
}

// RoleAssignment pins one SemanticRole to the kernel entity that earned it.
type RoleAssignment struct {
	ID   sig.KernelId
	Role SemanticRole
}

// EntityRecord is a created entity plus the signature that lets future
// rebuilds recognize it again.
type EntityRecord struct {
	ID        sig.KernelId
	Kind      sig.Kind
	Signature sig.Signature
}

// Rewrite records an old id that the diff pass decided was replaced by a
// new one, and why.
type Rewrite struct {
	From       sig.KernelId
	To         sig.KernelId
	Reason     topodiff.Reason
	Similarity float64
}

// OpResult is the provenance record every op executor returns. Invariant:
// for an op that mutates an input solid, every entity of the result is
// exactly one of {Created, Modified(from)}; every entity of the input is
// exactly one of {Deleted, Modified(to)}.
type OpResult struct {
	Outputs     map[OutputKey]kernel.SolidHandle
	Created     []EntityRecord
	Deleted     []sig.KernelId
	Modified    []Rewrite
	Roles       []RoleAssignment
	Diagnostics []diag.Diagnostic
}

// entitiesByOrder sorts a slice of entities by the deterministic
// (centroid.x, centroid.y, centroid.z, measure) total order so role
// indices are stable across repeated identical executions.
func entitiesByOrder(entities []sig.Entity) []sig.Entity {
	out := append([]sig.Entity(nil), entities...)
	sort.Slice(out, func(i, j int) bool { return sig.EntityLess(out[i], out[j]) })
	return out
}

func toRecords(entities []sig.Entity) []EntityRecord {
	out := make([]EntityRecord, len(entities))
	for i, e := range entities {
		out[i] = EntityRecord{ID: e.ID, Kind: e.Sig.Kind, Signature: e.Sig}
	}
	return out
}

func toRewrites(pairs []topodiff.ModifiedPair) []Rewrite {
	out := make([]Rewrite, len(pairs))
	for i, p := range pairs {
		out[i] = Rewrite{
			From:       p.Before.ID,
			To:         p.After.ID,
			Reason:     p.Reason,
			Similarity: sig.Similarity(p.Before.Sig, p.After.Sig),
		}
	}
	return out
}

func toDeletedIDs(entities []sig.Entity) []sig.KernelId {
	out := make([]sig.KernelId, len(entities))
	for i, e := range entities {
		out[i] = e.ID
	}
	return out
}

func facesOnly(entities []sig.Entity) []sig.Entity {
	var out []sig.Entity
	for _, e := range entities {
		if e.Sig.Kind == sig.Face {
			out = append(out, e)
		}
	}
	return out
}
