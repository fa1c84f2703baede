package feature

import "github.com/foundrycad/waffle-iron/diag"

// AddFeature appends a new feature at the end of the tree. Rejected with
// CycleDetected if op's GeomRefs (or direct upstream-feature fields) would
// close a loop in the "uses GeomRef anchored in" relation. On an append
// that happens when the feature names its own id, or when an existing
// feature already references the id being added.
func (t *FeatureTree) AddFeature(id, name string, op Operation) (*Feature, error) {
	if hasCycle(t.edgesFor(id, op)) {
		return nil, cycleErr(id)
	}
	f := &Feature{ID: id, Name: name, Operation: op}
	t.Features = append(t.Features, f)
	return f, nil
}

// DeleteFeature removes a feature and its cache entry. Deleting a feature
// before the rollback bar shifts the bar left to keep pointing at the
// same logical position.
func (t *FeatureTree) DeleteFeature(id string) error {
	idx := t.indexOf(id)
	if idx < 0 {
		return notFound(id)
	}
	t.Features = append(t.Features[:idx], t.Features[idx+1:]...)
	delete(t.Cache, id)
	if t.ActiveIndex != nil && *t.ActiveIndex > idx {
		*t.ActiveIndex--
	}
	return nil
}

// EditFeature replaces a feature's operation parameters wholesale.
// Rejected with CycleDetected if the new op would make this feature
// depend, directly or transitively, on itself, the "a sketch on a face
// that itself depends on the sketch" case.
func (t *FeatureTree) EditFeature(id string, op Operation) error {
	f, err := t.feature(id)
	if err != nil {
		return err
	}
	if hasCycle(t.edgesFor(id, op)) {
		return cycleErr(id)
	}
	f.Operation = op
	return nil
}

// RenameFeature changes a feature's display name only.
func (t *FeatureTree) RenameFeature(id, name string) error {
	f, err := t.feature(id)
	if err != nil {
		return err
	}
	f.Name = name
	return nil
}

// ReorderFeature moves a feature to a new position in the list.
func (t *FeatureTree) ReorderFeature(id string, newPosition int) error {
	idx := t.indexOf(id)
	if idx < 0 {
		return notFound(id)
	}
	if newPosition < 0 || newPosition >= len(t.Features) {
		return &diag.ValidationError{Name: "new_position", Reason: "out of range"}
	}
	f := t.Features[idx]
	if hasCycle(t.edgesFor(f.ID, f.Operation)) {
		return cycleErr(id)
	}
	remaining := append(append([]*Feature{}, t.Features[:idx]...), t.Features[idx+1:]...)
	if newPosition > len(remaining) {
		newPosition = len(remaining)
	}
	out := make([]*Feature, 0, len(remaining)+1)
	out = append(out, remaining[:newPosition]...)
	out = append(out, f)
	out = append(out, remaining[newPosition:]...)
	t.Features = out
	return nil
}

// SuppressFeature flips a feature's suppressed flag; rebuild will clear
// its cache entry and skip executing it.
func (t *FeatureTree) SuppressFeature(id string, suppressed bool) error {
	f, err := t.feature(id)
	if err != nil {
		return err
	}
	f.Suppressed = suppressed
	return nil
}

// SetRollbackIndex sets or clears the active-feature bar.
func (t *FeatureTree) SetRollbackIndex(index *int) {
	t.ActiveIndex = index
}

func (t *FeatureTree) feature(id string) (*Feature, error) {
	idx := t.indexOf(id)
	if idx < 0 {
		return nil, notFound(id)
	}
	return t.Features[idx], nil
}

func (t *FeatureTree) indexOf(id string) int {
	for i, f := range t.Features {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id string) error {
	return &diag.RebuildError{Kind: diag.FeatureNotFound, FeatureID: id, Message: "no such feature"}
}

func cycleErr(id string) error {
	return &diag.RebuildError{Kind: diag.CycleDetected, FeatureID: id, Message: "feature graph would contain a cycle"}
}
