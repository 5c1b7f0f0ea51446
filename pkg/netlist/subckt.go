package netlist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/netweave/pkg/errors"
)

// SubcktCap is the type prefix given to subcircuit instances.
const SubcktCap = "X"

// Subcircuit is a named, fixed-arity container of instances.
//
// Params declares the subcircuit parameters with their defaults; a nil
// default marks a parameter every instantiation must supply. Once fixed, the
// instance list can no longer grow.
type Subcircuit struct {
	Name      string
	Ports     []string
	Params    Params
	Instances []*Instance

	fixed bool
}

// NewSubcircuit returns an empty, unfixed subcircuit.
func NewSubcircuit(name string, ports []string, params Params) *Subcircuit {
	return &Subcircuit{
		Name:      name,
		Ports:     slices.Clone(ports),
		Params:    params.Clone(),
		Instances: []*Instance{},
	}
}

// Fix freezes the subcircuit. Later calls to [Subcircuit.Add] fail.
func (s *Subcircuit) Fix() { s.fixed = true }

// Fixed reports whether the subcircuit is frozen.
func (s *Subcircuit) Fixed() bool { return s.fixed }

// Arity returns the number of ports.
func (s *Subcircuit) Arity() int { return len(s.Ports) }

// Add appends copies of insts with their context set to the subcircuit
// name. It fails with FROZEN_SUBCIRCUIT on a fixed subcircuit, in which
// case nothing is added.
func (s *Subcircuit) Add(insts ...*Instance) error {
	if s.fixed {
		return errors.New(errors.ErrCodeFrozenSubckt, "subcircuit %q is fixed", s.Name)
	}
	for _, inst := range insts {
		c := inst.Clone()
		c.Context = s.Name
		s.Instances = append(s.Instances, c)
	}
	return nil
}

// Inst creates an instance of the subcircuit connected to nodes.
//
// It fails with NODES on an arity mismatch and with MISSING_PARAMS when a
// parameter declared without a default is not supplied. Unless [Force] is
// given, declared defaults are merged under the overrides.
func (s *Subcircuit) Inst(nodes []Net, opts ...Option) (*Instance, error) {
	if len(nodes) != len(s.Ports) {
		return nil, nodesCountError(s.Name, len(s.Ports), len(nodes))
	}
	o := applyOptions(opts)

	var missing []string
	for _, k := range s.Params.Keys() {
		if s.Params[k] != nil {
			continue
		}
		if v, ok := o.params[k]; !ok || v == nil {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeMissingParams,
			"%s: missing required parameters [%s]", s.Name, strings.Join(missing, " "))
	}

	var params Params
	if o.force {
		params = o.params.Clone()
	} else {
		params = s.Params.Merge(o.params)
	}

	inst := &Instance{
		Name:     s.Name,
		Ports:    slices.Clone(nodes),
		Params:   params,
		Context:  o.ctx,
		Cap:      SubcktCap,
		UID:      o.uid,
		Metadata: o.metadata.Clone(),
		def:      s,
	}
	if o.cap != nil {
		inst.Cap = *o.cap
	}
	return inst, nil
}

// InstNamed is [Subcircuit.Inst] with a port-name to net mapping.
func (s *Subcircuit) InstNamed(nodes map[string]Net, opts ...Option) (*Instance, error) {
	ordered, err := orderNodes(s.Name, s.Ports, nodes)
	if err != nil {
		return nil, err
	}
	return s.Inst(ordered, opts...)
}

// Subs returns a copy of the subcircuit where, for every instance accepted
// by pred, each parameter named by a key of subs is rebound to the
// subcircuit parameter named by its value:
//
//	// M1 (...) nmos w=0.4  becomes  M1 (...) nmos w=w_inv
//	inv = inv.Subs(map[string]string{"w": "w_inv"}, nil)
//
// A nil pred accepts every instance.
func (s *Subcircuit) Subs(subs map[string]string, pred func(*Instance) bool) *Subcircuit {
	out := s.Clone()
	for _, inst := range out.Instances {
		if pred != nil && !pred(inst) {
			continue
		}
		for name, param := range subs {
			inst.Params[name] = param
		}
	}
	return out
}

// Prototypes implements [Source]: the subcircuit is instantiated once on its
// own port names. Required parameters are left nil.
func (s *Subcircuit) Prototypes() []*Instance {
	inst := &Instance{
		Name:     s.Name,
		Ports:    Nets(s.Ports...),
		Params:   s.Params.Clone(),
		Cap:      SubcktCap,
		Metadata: Metadata{},
		def:      s,
	}
	return []*Instance{inst}
}

// Clone returns a deep copy of the subcircuit, including its fixed state.
func (s *Subcircuit) Clone() *Subcircuit {
	out := &Subcircuit{
		Name:      s.Name,
		Ports:     slices.Clone(s.Ports),
		Params:    s.Params.Clone(),
		Instances: make([]*Instance, len(s.Instances)),
		fixed:     s.fixed,
	}
	if out.Ports == nil {
		out.Ports = []string{}
	}
	for i, inst := range s.Instances {
		out.Instances[i] = inst.Clone()
	}
	return out
}

// Equal reports whether two subcircuits hold the same data, including the
// fixed state.
func (s *Subcircuit) Equal(o *Subcircuit) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.fixed == o.fixed && s.SameDefinition(o)
}

// SameDefinition reports whether two subcircuits define the same netlist
// body: name, ports, parameters and instances. The fixed state is ignored.
func (s *Subcircuit) SameDefinition(o *Subcircuit) bool {
	if s.Name != o.Name || !slices.Equal(s.Ports, o.Ports) || !s.Params.Equal(o.Params) {
		return false
	}
	return slices.EqualFunc(s.Instances, o.Instances, (*Instance).Equal)
}

// dependencies returns the distinct subcircuit definitions referenced by the
// instances, in first-use order.
func (s *Subcircuit) dependencies() []*Subcircuit {
	return definitionsOf(s.Instances)
}

func definitionsOf(insts []*Instance) []*Subcircuit {
	var defs []*Subcircuit
	for _, inst := range insts {
		if inst.def != nil && !slices.Contains(defs, inst.def) {
			defs = append(defs, inst.def)
		}
	}
	return defs
}

// String summarises the subcircuit, e.g. "inv(in out) [2 instances]".
func (s *Subcircuit) String() string {
	return fmt.Sprintf("%s(%s) [%d instances]", s.Name, strings.Join(s.Ports, " "), len(s.Instances))
}
