package feature

import "github.com/foundrycad/waffle-iron/geomref"

// usesFeatureIDs returns every feature id an Operation names, whether
// through a GeomRef anchored on AnchorFeature or a direct upstream
// feature-id field (SolidFeatureID, CutTargetFeatureID, BodyA/BodyB).
// Together these are the edges of the "uses GeomRef anchored in"
// relation a cycle check walks.
func usesFeatureIDs(op Operation) []string {
	var ids []string
	useRef := func(ref geomref.GeomRef) {
		if ref.Anchor.Kind == geomref.AnchorFeature && ref.Anchor.FeatureID != "" {
			ids = append(ids, ref.Anchor.FeatureID)
		}
	}
	useID := func(id string) {
		if id != "" {
			ids = append(ids, id)
		}
	}

	switch v := op.(type) {
	case SketchOp:
		useRef(v.Plane)
	case ExtrudeOp:
		useRef(v.Profile)
		if v.Cut {
			useID(v.CutTargetFeatureID)
		}
	case RevolveOp:
		useRef(v.Profile)
	case FilletOp:
		useID(v.SolidFeatureID)
		for _, e := range v.Edges {
			useRef(e)
		}
	case ChamferOp:
		useID(v.SolidFeatureID)
		for _, e := range v.Edges {
			useRef(e)
		}
	case ShellOp:
		useID(v.SolidFeatureID)
		for _, e := range v.OpenFaces {
			useRef(e)
		}
	case BooleanOp:
		useID(v.BodyA)
		useID(v.BodyB)
	}
	return ids
}

// edgesFor builds the full "uses" graph over the tree's current features,
// substituting override for whichever feature carries overrideID (present
// or not yet committed) so a prospective add/edit/reorder can be checked
// before it lands.
func (t *FeatureTree) edgesFor(overrideID string, override Operation) map[string][]string {
	edges := make(map[string][]string, len(t.Features)+1)
	for _, f := range t.Features {
		if f.ID == overrideID {
			continue
		}
		edges[f.ID] = usesFeatureIDs(f.Operation)
	}
	edges[overrideID] = usesFeatureIDs(override)
	return edges
}

// hasCycle reports whether edges, a feature-id adjacency list, contains a
// cycle, via the standard three-color DFS.
func hasCycle(edges map[string][]string) bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(edges))

	var visit func(id string) bool
	visit = func(id string) bool {
		switch color[id] {
		case gray:
			return true
		case black:
			return false
		}
		color[id] = gray
		for _, dep := range edges[id] {
			if visit(dep) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for id := range edges {
		if color[id] == white {
			if visit(id) {
				return true
			}
		}
	}
	return false
}
