package sketch

import (
	"fmt"
	"sort"
)

// Vec2 is a solved sketch-plane position.
type Vec2 struct{ X, Y float64 }

// Sketch holds a sketch's entity/constraint graph, its last solved
// result (if any), and the closed profiles extracted from it.
type Sketch struct {
	Entities    []Entity
	Constraints []Constraint

	Positions map[EntityID]Vec2
	DOF       int
	Failed    []Constraint
	Profiles  []ClosedProfile
}

func (s *Sketch) entityByID(id EntityID) (Entity, bool) {
	for _, e := range s.Entities {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// Validate checks that every entity/constraint reference resolves to an
// existing entity of the kind the reference requires.
func (s *Sketch) Validate() error {
	for _, e := range s.Entities {
		switch v := e.(type) {
		case Line:
			if err := s.requirePoint(v.Start); err != nil {
				return fmt.Errorf("line %d: %w", v.LineID, err)
			}
			if err := s.requirePoint(v.End); err != nil {
				return fmt.Errorf("line %d: %w", v.LineID, err)
			}
		case Circle:
			if err := s.requirePoint(v.Center); err != nil {
				return fmt.Errorf("circle %d: %w", v.CircleID, err)
			}
		case Arc:
			for _, id := range []EntityID{v.Center, v.Start, v.End} {
				if err := s.requirePoint(id); err != nil {
					return fmt.Errorf("arc %d: %w", v.ArcID, err)
				}
			}
		}
	}
	for i, c := range s.Constraints {
		for _, id := range referencedEntities(c) {
			if _, ok := s.entityByID(id); !ok {
				return fmt.Errorf("constraint %d: references unknown entity %d", i, id)
			}
		}
	}
	return nil
}

func (s *Sketch) requirePoint(id EntityID) error {
	e, ok := s.entityByID(id)
	if !ok {
		return fmt.Errorf("references unknown entity %d", id)
	}
	if _, ok := e.(Point); !ok {
		return fmt.Errorf("entity %d is not a Point", id)
	}
	return nil
}

// OverConstraintWarning flags a specific entity suspected of being
// over-constrained, tagged with which heuristic produced it.
type OverConstraintWarning struct {
	Entity EntityID
	Reason string // "structural" or "dof"
}

// OverConstraintWarnings runs both the structural heuristic (a Line or
// Point touched by more than two geometric constraints) and the DOF
// heuristic (a negative solved DOF), since neither alone catches every
// over-constraint case a user can build.
func (s *Sketch) OverConstraintWarnings() []OverConstraintWarning {
	var warnings []OverConstraintWarning
	warnings = append(warnings, s.structuralOverConstraints()...)
	warnings = append(warnings, s.dofOverConstraints()...)
	return warnings
}

func (s *Sketch) structuralOverConstraints() []OverConstraintWarning {
	touchCount := make(map[EntityID]int)
	for _, c := range s.Constraints {
		for _, id := range referencedEntities(c) {
			touchCount[id]++
		}
	}

	var ids []EntityID
	for id := range touchCount {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var warnings []OverConstraintWarning
	for _, id := range ids {
		e, ok := s.entityByID(id)
		if !ok {
			continue
		}
		switch e.(type) {
		case Line, Point:
			if touchCount[id] > 2 {
				warnings = append(warnings, OverConstraintWarning{Entity: id, Reason: "structural"})
			}
		}
	}
	return warnings
}

// dofOverConstraints flags every point when the reported solved DOF is
// negative: the solver found more constraints than the geometry can
// absorb, regardless of which specific constraint is "at fault"
// structurally. It does not compute an expected DOF from the entity
// count.
func (s *Sketch) dofOverConstraints() []OverConstraintWarning {
	if s.DOF >= 0 {
		return nil
	}

	var warnings []OverConstraintWarning
	for _, e := range s.Entities {
		if _, ok := e.(Point); ok {
			warnings = append(warnings, OverConstraintWarning{Entity: e.ID(), Reason: "dof"})
		}
	}
	return warnings
}
