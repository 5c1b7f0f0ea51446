package netlist

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/netweave/pkg/errors"
)

// MarshalDict encodes a Dict as JSON. Floating point values are written with
// a fraction or exponent so that they decode as float64 again.
func MarshalDict(d Dict) ([]byte, error) {
	v, err := jsonValue(d)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// UnmarshalDict decodes a JSON object into a Dict. Numbers without a
// fraction or exponent become int, all others float64.
func UnmarshalDict(data []byte) (Dict, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "decode json: expected object")
	}
	v, err := normalizeValue(m)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}

func jsonValue(v any) (any, error) {
	switch x := v.(type) {
	case float64:
		return floatNumber(x)
	case float32:
		return floatNumber(float64(x))
	case Tombstone:
		return nil, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			n, err := jsonValue(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			n, err := jsonValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return v, nil
}

func floatNumber(f float64) (json.Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot encode %v as json", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return json.Number(s), nil
}

// ToJSON encodes the instance.
func (i *Instance) ToJSON() ([]byte, error) { return MarshalDict(i.ToDict()) }

// InstanceFromJSON is the inverse of [Instance.ToJSON].
func InstanceFromJSON(data []byte) (*Instance, error) {
	d, err := UnmarshalDict(data)
	if err != nil {
		return nil, err
	}
	return InstanceFromDict(d)
}

// ToJSON encodes the component.
func (c *Component) ToJSON() ([]byte, error) { return MarshalDict(c.ToDict()) }

// ComponentFromJSON is the inverse of [Component.ToJSON].
func ComponentFromJSON(data []byte) (*Component, error) {
	d, err := UnmarshalDict(data)
	if err != nil {
		return nil, err
	}
	return ComponentFromDict(d)
}

// ToJSON encodes the model.
func (m *Model) ToJSON() ([]byte, error) { return MarshalDict(m.ToDict()) }

// ModelFromJSON is the inverse of [Model.ToJSON].
func ModelFromJSON(data []byte) (*Model, error) {
	d, err := UnmarshalDict(data)
	if err != nil {
		return nil, err
	}
	return ModelFromDict(d)
}

// ToJSON encodes the subcircuit.
func (s *Subcircuit) ToJSON() ([]byte, error) { return MarshalDict(s.ToDict()) }

// SubcircuitFromJSON is the inverse of [Subcircuit.ToJSON].
func SubcircuitFromJSON(data []byte) (*Subcircuit, error) {
	d, err := UnmarshalDict(data)
	if err != nil {
		return nil, err
	}
	return SubcircuitFromDict(d)
}

// ToJSON encodes the directive.
func (d *Directive) ToJSON() ([]byte, error) { return MarshalDict(d.ToDict()) }

// DirectiveFromJSON is the inverse of [Directive.ToJSON].
func DirectiveFromJSON(data []byte) (*Directive, error) {
	d, err := UnmarshalDict(data)
	if err != nil {
		return nil, err
	}
	return DirectiveFromDict(d)
}

// ToJSON encodes the circuit.
func (c *Circuit) ToJSON() ([]byte, error) { return MarshalDict(c.ToDict()) }

// CircuitFromJSON is the inverse of [Circuit.ToJSON].
func CircuitFromJSON(data []byte) (*Circuit, error) {
	d, err := UnmarshalDict(data)
	if err != nil {
		return nil, err
	}
	return CircuitFromDict(d)
}
