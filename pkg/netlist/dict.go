package netlist

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/netweave/pkg/errors"
)

// Dict is the plain-map form of an entity. Values are nil, bool, int,
// float64, string, []any or map[string]any, so a Dict maps directly onto
// JSON, TOML or BSON documents.
type Dict = map[string]any

// ToDict returns the plain-map form of the instance.
func (i *Instance) ToDict() Dict {
	return Dict{
		"name":     i.Name,
		"ports":    netsToList(i.Ports),
		"params":   paramsToDict(i.Params),
		"context":  optString(i.Context),
		"cap":      optString(i.Cap),
		"uid":      optInt(i.UID),
		"metadata": map[string]any(i.Metadata.Clone()),
	}
}

// InstanceFromDict is the inverse of [Instance.ToDict].
func InstanceFromDict(d Dict) (*Instance, error) {
	f := fields{m: d, entity: "instance"}
	name, err := f.str("name")
	if err != nil {
		return nil, err
	}
	ports, err := f.strList("ports")
	if err != nil {
		return nil, err
	}
	params, err := f.params("params")
	if err != nil {
		return nil, err
	}
	ctx, err := f.optStr("context")
	if err != nil {
		return nil, err
	}
	cap, err := f.optStr("cap")
	if err != nil {
		return nil, err
	}
	uid, err := f.optInt("uid")
	if err != nil {
		return nil, err
	}
	meta, err := f.metadata("metadata")
	if err != nil {
		return nil, err
	}
	return &Instance{
		Name:     name,
		Ports:    Nets(ports...),
		Params:   params,
		Context:  ctx,
		Cap:      cap,
		UID:      uid,
		Metadata: meta,
	}, nil
}

// ToDict returns the plain-map form of the model. [Deleted] values become
// nil.
func (m *Model) ToDict() Dict {
	params := make(map[string]any, len(m.Params))
	for k, v := range m.Params {
		if isDeleted(v) {
			params[k] = nil
			continue
		}
		params[k] = cloneValue(v)
	}
	return Dict{
		"name":   m.Name,
		"base":   optString(m.Base),
		"params": params,
	}
}

// ModelFromDict is the inverse of [Model.ToDict]. nil parameter values
// become [Deleted].
func ModelFromDict(d Dict) (*Model, error) {
	f := fields{m: d, entity: "model"}
	name, err := f.str("name")
	if err != nil {
		return nil, err
	}
	base, err := f.optStr("base")
	if err != nil {
		return nil, err
	}
	params, err := f.params("params")
	if err != nil {
		return nil, err
	}
	for k, v := range params {
		if v == nil {
			params[k] = Deleted
		}
	}
	return &Model{Name: name, Base: base, Params: params}, nil
}

// ToDict returns the plain-map form of the component.
func (c *Component) ToDict() Dict {
	var model any
	if c.Model != nil {
		model = c.Model.ToDict()
	}
	return Dict{
		"name":     c.Name,
		"ports":    stringsToList(c.Ports),
		"defaults": paramsToDict(c.Defaults),
		"model":    model,
		"cap":      optString(c.Cap),
		"metadata": map[string]any(c.Metadata.Clone()),
	}
}

// ComponentFromDict is the inverse of [Component.ToDict].
func ComponentFromDict(d Dict) (*Component, error) {
	f := fields{m: d, entity: "component"}
	name, err := f.str("name")
	if err != nil {
		return nil, err
	}
	ports, err := f.strList("ports")
	if err != nil {
		return nil, err
	}
	defaults, err := f.params("defaults")
	if err != nil {
		return nil, err
	}
	cap, err := f.optStr("cap")
	if err != nil {
		return nil, err
	}
	meta, err := f.metadata("metadata")
	if err != nil {
		return nil, err
	}
	c := &Component{Name: name, Ports: ports, Defaults: defaults, Cap: cap, Metadata: meta}
	if raw, ok := d["model"]; ok && raw != nil {
		md, ok := raw.(map[string]any)
		if !ok {
			return nil, f.invalid("model", "expected object, got %T", raw)
		}
		if c.Model, err = ModelFromDict(md); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ToDict returns the plain-map form of the subcircuit.
func (s *Subcircuit) ToDict() Dict {
	insts := make([]any, len(s.Instances))
	for i, inst := range s.Instances {
		insts[i] = inst.ToDict()
	}
	return Dict{
		"name":      s.Name,
		"ports":     stringsToList(s.Ports),
		"params":    paramsToDict(s.Params),
		"instances": insts,
		"fixed":     s.fixed,
	}
}

// SubcircuitFromDict is the inverse of [Subcircuit.ToDict].
func SubcircuitFromDict(d Dict) (*Subcircuit, error) {
	f := fields{m: d, entity: "subckt"}
	name, err := f.str("name")
	if err != nil {
		return nil, err
	}
	ports, err := f.strList("ports")
	if err != nil {
		return nil, err
	}
	params, err := f.params("params")
	if err != nil {
		return nil, err
	}
	fixed, err := f.boolean("fixed")
	if err != nil {
		return nil, err
	}
	items, err := f.objects("instances")
	if err != nil {
		return nil, err
	}
	s := &Subcircuit{Name: name, Ports: ports, Params: params, Instances: make([]*Instance, 0, len(items)), fixed: fixed}
	for i, item := range items {
		inst, err := InstanceFromDict(item)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "subckt %s: instance %d", name, i)
		}
		s.Instances = append(s.Instances, inst)
	}
	return s, nil
}

// ToDict returns the plain-map form of the directive.
func (d *Directive) ToDict() Dict {
	if d.IsRaw() {
		return Dict{"raw": d.Raw, "name": nil, "params": nil}
	}
	return Dict{"raw": nil, "name": d.Name, "params": paramsToDict(d.Params)}
}

// DirectiveFromDict is the inverse of [Directive.ToDict]. Exactly one of
// raw and name must be set.
func DirectiveFromDict(d Dict) (*Directive, error) {
	f := fields{m: d, entity: "directive"}
	raw, err := f.optStr("raw")
	if err != nil {
		return nil, err
	}
	name, err := f.optStr("name")
	if err != nil {
		return nil, err
	}
	if (raw == "") == (name == "") {
		return nil, f.invalid("raw", "exactly one of raw and name must be set")
	}
	if raw != "" {
		return RawDirective(raw), nil
	}
	params, err := f.params("params")
	if err != nil {
		return nil, err
	}
	return &Directive{Name: name, Params: params}, nil
}

// ToDict returns the plain-map form of the circuit. Elements are listed
// under "instances" in order; subcircuits under "subckts" in registration
// order.
func (c *Circuit) ToDict() Dict {
	elems := make([]any, len(c.Elements))
	for i, e := range c.Elements {
		switch x := e.(type) {
		case *Instance:
			elems[i] = x.ToDict()
		case *Directive:
			elems[i] = x.ToDict()
		}
	}
	subckts := make([]any, len(c.subckts))
	for i, s := range c.subckts {
		subckts[i] = s.ToDict()
	}
	return Dict{"instances": elems, "subckts": subckts}
}

// CircuitFromDict is the inverse of [Circuit.ToDict]. An element with a
// "ports" key is an instance, any other element a directive. Duplicate
// subcircuit names fail with SUBCKT_CONFLICT.
func CircuitFromDict(d Dict) (*Circuit, error) {
	f := fields{m: d, entity: "circuit"}
	c := NewCircuit()

	subckts, err := f.objects("subckts")
	if err != nil {
		return nil, err
	}
	for i, item := range subckts {
		s, err := SubcircuitFromDict(item)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "subckt %d", i)
		}
		if c.HasSubckt(s.Name) {
			return nil, errors.New(errors.ErrCodeSubcktConflict, "subcircuit %q listed twice", s.Name)
		}
		c.commit([]*Subcircuit{s})
	}

	elems, err := f.objects("instances")
	if err != nil {
		return nil, err
	}
	for i, item := range elems {
		if _, ok := item["ports"]; ok {
			inst, err := InstanceFromDict(item)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "element %d", i)
			}
			c.Elements = append(c.Elements, inst)
			continue
		}
		dir, err := DirectiveFromDict(item)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "element %d", i)
		}
		c.Elements = append(c.Elements, dir)
	}
	return c, nil
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func netsToList(nets []Net) []any {
	out := make([]any, len(nets))
	for i, n := range nets {
		out[i] = string(n)
	}
	return out
}

func stringsToList(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func paramsToDict(p Params) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// fields reads typed values out of a Dict, reporting INVALID_FORMAT errors
// that name the entity and the field.
type fields struct {
	m      Dict
	entity string
}

func (f fields) invalid(key, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, "%s: field %q: %s", f.entity, key, fmt.Sprintf(format, args...))
}

func (f fields) str(key string) (string, error) {
	v, ok := f.m[key]
	if !ok {
		return "", f.invalid(key, "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", f.invalid(key, "expected string, got %T", v)
	}
	return s, nil
}

func (f fields) optStr(key string) (string, error) {
	v := f.m[key]
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", f.invalid(key, "expected string, got %T", v)
	}
	return s, nil
}

func (f fields) optInt(key string) (*int, error) {
	v := f.m[key]
	if v == nil {
		return nil, nil
	}
	n, err := normalizeValue(v)
	if err != nil {
		return nil, f.invalid(key, "%v", err)
	}
	i, ok := n.(int)
	if !ok {
		return nil, f.invalid(key, "expected integer, got %T", v)
	}
	return &i, nil
}

func (f fields) boolean(key string) (bool, error) {
	v := f.m[key]
	if v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, f.invalid(key, "expected bool, got %T", v)
	}
	return b, nil
}

func (f fields) strList(key string) ([]string, error) {
	v, ok := f.m[key]
	if !ok {
		return nil, f.invalid(key, "missing")
	}
	switch x := v.(type) {
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out, nil
	case []Net:
		out := make([]string, len(x))
		for i, n := range x {
			out[i] = string(n)
		}
		return out, nil
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, f.invalid(key, "element %d: expected string, got %T", i, e)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, f.invalid(key, "expected list, got %T", v)
}

func (f fields) objects(key string) ([]Dict, error) {
	v := f.m[key]
	if v == nil {
		return nil, nil
	}
	switch x := v.(type) {
	case []Dict:
		return x, nil
	case []any:
		out := make([]Dict, len(x))
		for i, e := range x {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, f.invalid(key, "element %d: expected object, got %T", i, e)
			}
			out[i] = m
		}
		return out, nil
	}
	return nil, f.invalid(key, "expected list, got %T", v)
}

func (f fields) params(key string) (Params, error) {
	m, err := f.object(key)
	if err != nil {
		return nil, err
	}
	out := make(Params, len(m))
	for k, v := range m {
		n, err := normalizeValue(v)
		if err != nil {
			return nil, f.invalid(key, "%s: %v", k, err)
		}
		if !isParamValue(n) {
			return nil, f.invalid(key, "%s: unsupported value type %T", k, v)
		}
		out[k] = n
	}
	return out, nil
}

// isParamValue reports whether v is a scalar parameter value or a list of
// them, nested lists included.
func isParamValue(v any) bool {
	switch x := v.(type) {
	case nil, bool, int, float64, string:
		return true
	case []any:
		for _, e := range x {
			if e == nil || !isParamValue(e) {
				return false
			}
		}
		return true
	}
	return false
}

func (f fields) metadata(key string) (Metadata, error) {
	m, err := f.object(key)
	if err != nil {
		return nil, err
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		n, err := normalizeValue(v)
		if err != nil {
			return nil, f.invalid(key, "%s: %v", k, err)
		}
		out[k] = n
	}
	return out, nil
}

func (f fields) object(key string) (map[string]any, error) {
	v := f.m[key]
	switch x := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return x, nil
	case Params:
		return x, nil
	case Metadata:
		return x, nil
	}
	return nil, f.invalid(key, "expected object, got %T", v)
}

// normalizeValue maps the numeric types produced by decoders onto int and
// float64 and recurses into lists and objects. A json.Number without a
// fraction or exponent becomes an int.
func normalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string, int, float64:
		return v, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		if x < math.MinInt || x > math.MaxInt {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "integer %d out of range", x)
		}
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case float32:
		return float64(x), nil
	case json.Number:
		s := x.String()
		if !strings.ContainsAny(s, ".eE") {
			if i, err := strconv.Atoi(s); err == nil {
				return i, nil
			}
		}
		fl, err := x.Float64()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "number %q", s)
		}
		return fl, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			n, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			n, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return v, nil
}
