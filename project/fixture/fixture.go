// Package fixture loads YAML test scripts that stage a sequence of
// features onto a fresh feature tree, the shorthand integration tests
// and the CLI's script runner use instead of hand-building a
// feature.FeatureTree call by call.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/foundrycad/waffle-iron/feature"
	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/ops"
	"github.com/foundrycad/waffle-iron/sig"
	"github.com/foundrycad/waffle-iron/sketch"
)

// Script is a named, ordered list of features to stage onto a fresh
// tree.
type Script struct {
	Name     string          `yaml:"name"`
	Features []FeatureScript `yaml:"features"`
}

// FeatureScript is one feature entry in a YAML script. Only the fields
// relevant to Type are read; the rest are left at their zero value.
type FeatureScript struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Type string `yaml:"type"` // "sketch" | "extrude" | "boolean"

	// sketch
	Plane     string         `yaml:"plane"` // "XY" | "XZ" | "YZ"
	Rectangle *RectangleSpec `yaml:"rectangle"`

	// extrude
	ProfileFeatureID string     `yaml:"profile_feature_id"`
	Depth            float64    `yaml:"depth"`
	Direction        [3]float64 `yaml:"direction"`

	// boolean
	Kind  string `yaml:"kind"` // "Union" | "Subtract" | "Intersect"
	BodyA string `yaml:"body_a"`
	BodyB string `yaml:"body_b"`
}

// RectangleSpec is shorthand for the common case of a single axis-
// aligned rectangular profile centered on its plane's origin, so a
// script doesn't have to spell out four points and four lines by hand.
type RectangleSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Load reads and parses a YAML script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	return &script, nil
}

// Build stages every feature in a script onto a fresh tree in order.
func Build(script *Script) (*feature.FeatureTree, error) {
	tree := feature.NewTree()
	for _, fs := range script.Features {
		op, err := fs.toOperation()
		if err != nil {
			return nil, fmt.Errorf("fixture: feature %q: %w", fs.ID, err)
		}
		if _, err := tree.AddFeature(fs.ID, fs.Name, op); err != nil {
			return nil, fmt.Errorf("fixture: feature %q: %w", fs.ID, err)
		}
	}
	return tree, nil
}

func (fs FeatureScript) toOperation() (feature.Operation, error) {
	switch fs.Type {
	case "sketch":
		plane := fs.Plane
		if plane == "" {
			plane = "XY"
		}
		entities := []sketch.Entity{}
		if fs.Rectangle != nil {
			entities = rectangleEntities(fs.Rectangle.Width, fs.Rectangle.Height)
		}
		return feature.SketchOp{
			Plane: geomref.GeomRef{
				Kind:   geomref.KindFace,
				Anchor: geomref.Anchor{Kind: geomref.AnchorDatumPlane, DatumPlane: plane},
				Policy: geomref.Strict,
			},
			Entities: entities,
		}, nil
	case "extrude":
		if fs.ProfileFeatureID == "" {
			return nil, fmt.Errorf("extrude feature missing profile_feature_id")
		}
		dir := sig.Vec3{X: fs.Direction[0], Y: fs.Direction[1], Z: fs.Direction[2]}
		if dir == (sig.Vec3{}) {
			dir = sig.Vec3{Z: 1}
		}
		return feature.ExtrudeOp{
			Profile: geomref.GeomRef{
				Kind:     geomref.KindFace,
				Anchor:   geomref.Anchor{Kind: geomref.AnchorFeature, FeatureID: fs.ProfileFeatureID},
				Selector: geomref.Selector{Kind: geomref.SelectorRole, Role: ops.SemanticRole{Kind: ops.ProfileFace}},
				Policy:   geomref.Strict,
			},
			Direction: dir,
			Depth:     fs.Depth,
		}, nil
	case "boolean":
		kind, err := parseBooleanOp(fs.Kind)
		if err != nil {
			return nil, err
		}
		if fs.BodyA == "" || fs.BodyB == "" {
			return nil, fmt.Errorf("boolean feature requires body_a and body_b")
		}
		return feature.BooleanOp{Kind: kind, BodyA: fs.BodyA, BodyB: fs.BodyB}, nil
	default:
		return nil, fmt.Errorf("unknown feature type %q", fs.Type)
	}
}

func parseBooleanOp(kind string) (kernel.BooleanOp, error) {
	switch kind {
	case "Union":
		return kernel.Union, nil
	case "Subtract":
		return kernel.Subtract, nil
	case "Intersect":
		return kernel.Intersect, nil
	default:
		return 0, fmt.Errorf("unknown boolean kind %q", kind)
	}
}

func rectangleEntities(width, height float64) []sketch.Entity {
	hw, hh := width/2, height/2
	return []sketch.Entity{
		sketch.Point{PointID: 0, X: -hw, Y: -hh},
		sketch.Point{PointID: 1, X: hw, Y: -hh},
		sketch.Point{PointID: 2, X: hw, Y: hh},
		sketch.Point{PointID: 3, X: -hw, Y: hh},
		sketch.Line{LineID: 10, Start: 0, End: 1},
		sketch.Line{LineID: 11, Start: 1, End: 2},
		sketch.Line{LineID: 12, Start: 2, End: 3},
		sketch.Line{LineID: 13, Start: 3, End: 0},
	}
}
