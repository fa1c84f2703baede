// Package solve adapts a sketch's entity/constraint graph into a numeric
// problem and back. The solver is treated as an external black box: it
// never mutates the sketch directly, and any non-Ok status leaves the
// caller's positions untouched.
package solve

import (
	"context"

	"github.com/foundrycad/waffle-iron/sketch"
)

// Status classifies a solve attempt.
type Status int

const (
	Ok Status = iota
	Inconsistent
	DidNotConverge
	TooManyUnknowns
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case Inconsistent:
		return "Inconsistent"
	case DidNotConverge:
		return "DidNotConverge"
	case TooManyUnknowns:
		return "TooManyUnknowns"
	default:
		return "Unknown"
	}
}

// Hints seeds the solver with a starting guess; a nil/empty map lets the
// solver fall back to the entities' own stored coordinates.
type Hints map[sketch.EntityID]sketch.Vec2

// Outcome is everything a solve attempt reports back.
type Outcome struct {
	Status    Status
	Positions map[sketch.EntityID]sketch.Vec2
	DOF       int
	Failed    []sketch.Constraint
	SolveTime float64 // seconds
}

// Solver is the adapter contract every concrete solver implements.
type Solver interface {
	Solve(ctx context.Context, entities []sketch.Entity, constraints []sketch.Constraint, hints Hints) (Outcome, error)
}

// ApplyTo runs s against sk's current entities/constraints and writes the
// result back into sk only if the outcome status is Ok; any other status
// leaves sk.Positions, sk.DOF, sk.Failed, and sk.Profiles exactly as they
// were.
func ApplyTo(ctx context.Context, s Solver, sk *sketch.Sketch) (Outcome, error) {
	hints := make(Hints, len(sk.Entities))
	for _, e := range sk.Entities {
		if p, ok := e.(sketch.Point); ok {
			hints[p.PointID] = sketch.Vec2{X: p.X, Y: p.Y}
		}
	}

	outcome, err := s.Solve(ctx, sk.Entities, sk.Constraints, hints)
	if err != nil {
		return outcome, err
	}
	if outcome.Status != Ok {
		return outcome, nil
	}

	sk.Positions = outcome.Positions
	sk.DOF = outcome.DOF
	sk.Failed = outcome.Failed
	sk.Profiles = sk.ExtractProfiles()
	return outcome, nil
}
