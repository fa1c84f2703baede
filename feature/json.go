package feature

import (
	"encoding/json"
	"fmt"

	"github.com/foundrycad/waffle-iron/geomref"
	"github.com/foundrycad/waffle-iron/sketch"
)

// operationDTO stages an Operation as a tagged raw JSON value, the same
// pattern sketch uses for its own closed interfaces.
type operationDTO struct {
	Type      string          `json:"type"`
	Operation json.RawMessage `json:"operation"`
}

// sketchOpDTO stages SketchOp's entity/constraint interface slices as raw
// tagged arrays; every other Operation variant round-trips through plain
// encoding/json since none of their fields are interfaces.
type sketchOpDTO struct {
	Plane       geomref.GeomRef `json:"plane"`
	Entities    json.RawMessage `json:"entities"`
	Constraints json.RawMessage `json:"constraints"`
}

// MarshalOperation renders any Operation variant as a tagged JSON value.
// Shared by Feature's own (de)serialization and by the protocol package,
// which stages bare operations inside AddFeature/EditFeature commands.
func MarshalOperation(operation Operation) ([]byte, error) {
	var typeTag string
	var opBytes []byte
	var err error

	switch op := operation.(type) {
	case SketchOp:
		typeTag = "Sketch"
		entitiesJSON, err := sketch.MarshalEntities(op.Entities)
		if err != nil {
			return nil, err
		}
		constraintsJSON, err := sketch.MarshalConstraints(op.Constraints)
		if err != nil {
			return nil, err
		}
		opBytes, err = json.Marshal(sketchOpDTO{
			Plane:       op.Plane,
			Entities:    entitiesJSON,
			Constraints: constraintsJSON,
		})
		if err != nil {
			return nil, err
		}
	case ExtrudeOp:
		typeTag = "Extrude"
		opBytes, err = json.Marshal(op)
	case RevolveOp:
		typeTag = "Revolve"
		opBytes, err = json.Marshal(op)
	case FilletOp:
		typeTag = "Fillet"
		opBytes, err = json.Marshal(op)
	case ChamferOp:
		typeTag = "Chamfer"
		opBytes, err = json.Marshal(op)
	case ShellOp:
		typeTag = "Shell"
		opBytes, err = json.Marshal(op)
	case BooleanOp:
		typeTag = "Boolean"
		opBytes, err = json.Marshal(op)
	default:
		return nil, fmt.Errorf("feature: unknown operation type %T", operation)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(operationDTO{Type: typeTag, Operation: opBytes})
}

// UnmarshalOperation is MarshalOperation's inverse.
func UnmarshalOperation(data []byte) (Operation, error) {
	var dto operationDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	switch dto.Type {
	case "Sketch":
		var sdto sketchOpDTO
		if err := json.Unmarshal(dto.Operation, &sdto); err != nil {
			return nil, err
		}
		entities, err := sketch.UnmarshalEntities(sdto.Entities)
		if err != nil {
			return nil, err
		}
		constraints, err := sketch.UnmarshalConstraints(sdto.Constraints)
		if err != nil {
			return nil, err
		}
		return SketchOp{Plane: sdto.Plane, Entities: entities, Constraints: constraints}, nil
	case "Extrude":
		var op ExtrudeOp
		err := json.Unmarshal(dto.Operation, &op)
		return op, err
	case "Revolve":
		var op RevolveOp
		err := json.Unmarshal(dto.Operation, &op)
		return op, err
	case "Fillet":
		var op FilletOp
		err := json.Unmarshal(dto.Operation, &op)
		return op, err
	case "Chamfer":
		var op ChamferOp
		err := json.Unmarshal(dto.Operation, &op)
		return op, err
	case "Shell":
		var op ShellOp
		err := json.Unmarshal(dto.Operation, &op)
		return op, err
	case "Boolean":
		var op BooleanOp
		err := json.Unmarshal(dto.Operation, &op)
		return op, err
	default:
		return nil, fmt.Errorf("feature: unknown operation type %q", dto.Type)
	}
}

// featureDTO is Feature's wire shape.
type featureDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Operation  json.RawMessage `json:"operation"`
	Suppressed bool            `json:"suppressed"`
}

// MarshalJSON implements json.Marshaler so a Feature (and therefore a
// FeatureTree) round-trips through a saved project file.
func (f Feature) MarshalJSON() ([]byte, error) {
	opBytes, err := MarshalOperation(f.Operation)
	if err != nil {
		return nil, err
	}
	return json.Marshal(featureDTO{
		ID:         f.ID,
		Name:       f.Name,
		Operation:  opBytes,
		Suppressed: f.Suppressed,
	})
}

// UnmarshalJSON implements json.Unmarshaler, the inverse of MarshalJSON.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var dto featureDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}

	operation, err := UnmarshalOperation(dto.Operation)
	if err != nil {
		return err
	}

	f.ID = dto.ID
	f.Name = dto.Name
	f.Suppressed = dto.Suppressed
	f.Operation = operation
	return nil
}
