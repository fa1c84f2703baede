package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/foundrycad/waffle-iron/diag"
	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/sketch"
	"github.com/foundrycad/waffle-iron/sketch/solve"
)

// Event is the closed set of engine->shell events.
type Event interface {
	eventKind()
}

// FaceRange maps a contiguous run of triangle indices in a MeshView back
// to the GeomRef that produced them.
type FaceRange struct {
	GeomRef    geomref.GeomRef
	StartIndex int
	EndIndex   int
}

// MeshView is the copy-on-send snapshot of one solid's triangulation;
// the shell never touches kernel.Triangle directly.
type MeshView struct {
	Vertices   [][3]float64
	Normals    [][3]float64
	Indices    []int
	FaceRanges []FaceRange
}

// FeatureSummary is the copy-on-send view of one feature: enough for the
// shell's feature-tree panel, without exposing CachedBuild internals.
type FeatureSummary struct {
	ID         string
	Name       string
	Suppressed bool
}

// ModelUpdated reports the feature tree (summarized) and the rebuilt
// meshes after any mutating command.
type ModelUpdated struct {
	Features    []FeatureSummary
	ActiveIndex *int
	Meshes      []MeshView
	Diagnostics []diag.Diagnostic
}

// SketchSolved reports a solve attempt's outcome, whether triggered by a
// sketch feature rebuild or a SolveSketchLocal bypass.
type SketchSolved struct {
	Positions map[sketch.EntityID]sketch.Vec2
	Status    solve.Status
	DOF       int
	Failed    []sketch.Constraint
	SolveTime float64
}

// Error reports a failure. FeatureID is set when the failure is scoped
// to one feature.
type Error struct {
	Message   string
	FeatureID *string
}

// SaveReady carries a project's serialized JSON, ready for the shell to
// write to disk.
type SaveReady struct {
	JSONData []byte
}

// StlExportReady carries a binary STL payload; encoding/json renders
// []byte as base64 automatically, giving the wire form its
// stl_data: base64 field.
type StlExportReady struct {
	StlData []byte `json:"stl_data"`
}

func (ModelUpdated) eventKind()   {}
func (SketchSolved) eventKind()   {}
func (Error) eventKind()          {}
func (SaveReady) eventKind()      {}
func (StlExportReady) eventKind() {}

// FeatureSummaries reduces a FeatureTree to the copy-on-send view
// ModelUpdated carries.
func FeatureSummaries(tree *feature.FeatureTree) []FeatureSummary {
	out := make([]FeatureSummary, len(tree.Features))
	for i, f := range tree.Features {
		out[i] = FeatureSummary{ID: f.ID, Name: feature.DisplayName(f.Name), Suppressed: f.Suppressed}
	}
	return out
}

type eventEnvelope struct {
	Type string          `json:"type"`
	Body json.RawMessage `json:"body,omitempty"`
}

// EncodeEvent renders an Event as a tagged JSON message.
func EncodeEvent(evt Event) ([]byte, error) {
	var typeTag string
	var body []byte
	var err error

	switch e := evt.(type) {
	case ModelUpdated:
		typeTag = "ModelUpdated"
		body, err = json.Marshal(e)
	case SketchSolved:
		typeTag = "SketchSolved"
		body, err = json.Marshal(struct {
			Positions map[sketch.EntityID]sketch.Vec2 `json:"positions"`
			Status    string                           `json:"status"`
			DOF       int                              `json:"dof"`
			Failed    json.RawMessage                  `json:"failed"`
			SolveTime float64                           `json:"solve_time"`
		}{
			Positions: e.Positions,
			Status:    e.Status.String(),
			DOF:       e.DOF,
			Failed:    mustMarshalConstraints(e.Failed),
			SolveTime: e.SolveTime,
		})
	case Error:
		typeTag = "Error"
		body, err = json.Marshal(e)
	case SaveReady:
		typeTag = "SaveReady"
		body, err = json.Marshal(e)
	case StlExportReady:
		typeTag = "StlExportReady"
		body, err = json.Marshal(e)
	default:
		return nil, fmt.Errorf("protocol: unknown event type %T", evt)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(eventEnvelope{Type: typeTag, Body: body})
}

func mustMarshalConstraints(cs []sketch.Constraint) json.RawMessage {
	b, err := sketch.MarshalConstraints(cs)
	if err != nil {
		// Failed only carries constraints that already round-tripped
		// in through this same package, so a marshal failure here means a
		// new Constraint variant was added without updating sketch/json.go.
		panic(err)
	}
	return b
}

// DecodeEvent parses a tagged JSON message into its concrete Event
// variant.
func DecodeEvent(data []byte) (Event, error) {
	var env eventEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case "ModelUpdated":
		var e ModelUpdated
		return e, json.Unmarshal(env.Body, &e)
	case "SketchSolved":
		var dto struct {
			Positions map[sketch.EntityID]sketch.Vec2 `json:"positions"`
			Status    string                           `json:"status"`
			DOF       int                              `json:"dof"`
			Failed    json.RawMessage                  `json:"failed"`
			SolveTime float64                           `json:"solve_time"`
		}
		if err := json.Unmarshal(env.Body, &dto); err != nil {
			return nil, err
		}
		failed, err := sketch.UnmarshalConstraints(dto.Failed)
		if err != nil {
			return nil, err
		}
		return SketchSolved{
			Positions: dto.Positions,
			Status:    parseStatus(dto.Status),
			DOF:       dto.DOF,
			Failed:    failed,
			SolveTime: dto.SolveTime,
		}, nil
	case "Error":
		var e Error
		return e, json.Unmarshal(env.Body, &e)
	case "SaveReady":
		var e SaveReady
		return e, json.Unmarshal(env.Body, &e)
	case "StlExportReady":
		var e StlExportReady
		return e, json.Unmarshal(env.Body, &e)
	default:
		return nil, fmt.Errorf("protocol: unknown event type %q", env.Type)
	}
}

func parseStatus(s string) solve.Status {
	switch s {
	case "Ok":
		return solve.Ok
	case "Inconsistent":
		return solve.Inconsistent
	case "DidNotConverge":
		return solve.DidNotConverge
	case "TooManyUnknowns":
		return solve.TooManyUnknowns
	default:
		return solve.Status(-1)
	}
}
