package sketch

import (
	"encoding/json"
	"fmt"
)

type typeEnvelope struct {
	Type string `json:"type"`
}

// marshalTagged JSON-encodes v and splices in an explicit "type" tag, the
// same flattened-tagged-variant shape used across this module wherever a
// closed interface needs to round-trip through JSON.
func marshalTagged(tag string, v interface{}) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	tagBytes, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	fields["type"] = tagBytes
	return json.Marshal(fields)
}

// MarshalEntity renders a single entity with its "type" tag.
func MarshalEntity(e Entity) ([]byte, error) {
	return marshalEntity(e)
}

// UnmarshalEntity is MarshalEntity's inverse.
func UnmarshalEntity(data []byte) (Entity, error) {
	return unmarshalEntity(data)
}

func marshalEntity(e Entity) ([]byte, error) {
	switch v := e.(type) {
	case Point:
		return marshalTagged("Point", v)
	case Line:
		return marshalTagged("Line", v)
	case Circle:
		return marshalTagged("Circle", v)
	case Arc:
		return marshalTagged("Arc", v)
	default:
		return nil, fmt.Errorf("sketch: unknown entity type %T", e)
	}
}

func unmarshalEntity(data []byte) (Entity, error) {
	var env typeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case "Point":
		var v Point
		err := json.Unmarshal(data, &v)
		return v, err
	case "Line":
		var v Line
		err := json.Unmarshal(data, &v)
		return v, err
	case "Circle":
		var v Circle
		err := json.Unmarshal(data, &v)
		return v, err
	case "Arc":
		var v Arc
		err := json.Unmarshal(data, &v)
		return v, err
	default:
		return nil, fmt.Errorf("sketch: unknown entity type %q", env.Type)
	}
}

// MarshalEntities renders a sketch's entity list as a JSON array whose
// elements each carry an explicit "type" tag.
func MarshalEntities(entities []Entity) ([]byte, error) {
	raws := make([]json.RawMessage, len(entities))
	for i, e := range entities {
		b, err := marshalEntity(e)
		if err != nil {
			return nil, err
		}
		raws[i] = b
	}
	return json.Marshal(raws)
}

// UnmarshalEntities is MarshalEntities's inverse.
func UnmarshalEntities(data []byte) ([]Entity, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	out := make([]Entity, len(raws))
	for i, r := range raws {
		e, err := unmarshalEntity(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// MarshalConstraint renders a single constraint with its "type" tag.
func MarshalConstraint(c Constraint) ([]byte, error) {
	return marshalConstraint(c)
}

// UnmarshalConstraint is MarshalConstraint's inverse.
func UnmarshalConstraint(data []byte) (Constraint, error) {
	return unmarshalConstraint(data)
}

func marshalConstraint(c Constraint) ([]byte, error) {
	switch v := c.(type) {
	case Coincident:
		return marshalTagged("Coincident", v)
	case Distance:
		return marshalTagged("Distance", v)
	case Horizontal:
		return marshalTagged("Horizontal", v)
	case Vertical:
		return marshalTagged("Vertical", v)
	case Parallel:
		return marshalTagged("Parallel", v)
	case Perpendicular:
		return marshalTagged("Perpendicular", v)
	case EqualLength:
		return marshalTagged("EqualLength", v)
	case Tangent:
		return marshalTagged("Tangent", v)
	case Midpoint:
		return marshalTagged("Midpoint", v)
	case PointOnLine:
		return marshalTagged("PointOnLine", v)
	case PointOnCircle:
		return marshalTagged("PointOnCircle", v)
	case Angle:
		return marshalTagged("Angle", v)
	case Radius:
		return marshalTagged("Radius", v)
	case Diameter:
		return marshalTagged("Diameter", v)
	case Symmetric:
		return marshalTagged("Symmetric", v)
	case SymmetricH:
		return marshalTagged("SymmetricH", v)
	case SymmetricV:
		return marshalTagged("SymmetricV", v)
	case WhereDragged:
		return marshalTagged("WhereDragged", v)
	case PointLineDistance:
		return marshalTagged("PointLineDistance", v)
	case LengthRatio:
		return marshalTagged("LengthRatio", v)
	default:
		return nil, fmt.Errorf("sketch: unknown constraint type %T", c)
	}
}

func unmarshalConstraint(data []byte) (Constraint, error) {
	var env typeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}

	switch env.Type {
	case "Coincident":
		var v Coincident
		return v, json.Unmarshal(data, &v)
	case "Distance":
		var v Distance
		return v, json.Unmarshal(data, &v)
	case "Horizontal":
		var v Horizontal
		return v, json.Unmarshal(data, &v)
	case "Vertical":
		var v Vertical
		return v, json.Unmarshal(data, &v)
	case "Parallel":
		var v Parallel
		return v, json.Unmarshal(data, &v)
	case "Perpendicular":
		var v Perpendicular
		return v, json.Unmarshal(data, &v)
	case "EqualLength":
		var v EqualLength
		return v, json.Unmarshal(data, &v)
	case "Tangent":
		var v Tangent
		return v, json.Unmarshal(data, &v)
	case "Midpoint":
		var v Midpoint
		return v, json.Unmarshal(data, &v)
	case "PointOnLine":
		var v PointOnLine
		return v, json.Unmarshal(data, &v)
	case "PointOnCircle":
		var v PointOnCircle
		return v, json.Unmarshal(data, &v)
	case "Angle":
		var v Angle
		return v, json.Unmarshal(data, &v)
	case "Radius":
		var v Radius
		return v, json.Unmarshal(data, &v)
	case "Diameter":
		var v Diameter
		return v, json.Unmarshal(data, &v)
	case "Symmetric":
		var v Symmetric
		return v, json.Unmarshal(data, &v)
	case "SymmetricH":
		var v SymmetricH
		return v, json.Unmarshal(data, &v)
	case "SymmetricV":
		var v SymmetricV
		return v, json.Unmarshal(data, &v)
	case "WhereDragged":
		var v WhereDragged
		return v, json.Unmarshal(data, &v)
	case "PointLineDistance":
		var v PointLineDistance
		return v, json.Unmarshal(data, &v)
	case "LengthRatio":
		var v LengthRatio
		return v, json.Unmarshal(data, &v)
	default:
		return nil, fmt.Errorf("sketch: unknown constraint type %q", env.Type)
	}
}

// MarshalConstraints renders a sketch's constraint list as a JSON array
// whose elements each carry an explicit "type" tag.
func MarshalConstraints(constraints []Constraint) ([]byte, error) {
	raws := make([]json.RawMessage, len(constraints))
	for i, c := range constraints {
		b, err := marshalConstraint(c)
		if err != nil {
			return nil, err
		}
		raws[i] = b
	}
	return json.Marshal(raws)
}

// UnmarshalConstraints is MarshalConstraints's inverse.
func UnmarshalConstraints(data []byte) ([]Constraint, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	out := make([]Constraint, len(raws))
	for i, r := range raws {
		c, err := unmarshalConstraint(r)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
