package netlist

import (
	"fmt"

	"github.com/matzehuels/netweave/pkg/errors"
)

// Circuit is the top-level container of a design: an ordered list of
// instances and directives plus an ordered registry of subcircuit
// definitions.
//
// The zero value is not usable - use NewCircuit.
type Circuit struct {
	Elements []Element

	subckts []*Subcircuit
	index   map[string]int
}

// NewCircuit returns an empty circuit.
func NewCircuit() *Circuit {
	return &Circuit{
		Elements: []Element{},
		index:    make(map[string]int),
	}
}

// Add appends copies of elems to the circuit.
//
// Instances created by [Subcircuit.Inst] register their subcircuit
// definition, and every definition it depends on, before being appended.
// Add fails with SUBCKT_CONFLICT if a definition clashes with a different
// one already registered, and with INVALID_FORMAT for an unsupported
// element; nothing is added in either case.
func (c *Circuit) Add(elems ...Element) error {
	var insts []*Instance
	for _, e := range elems {
		switch x := e.(type) {
		case *Instance:
			insts = append(insts, x)
		case *Directive:
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported circuit element %T", e)
		}
	}

	staged, err := c.stage(definitionsOf(insts))
	if err != nil {
		return err
	}
	c.commit(staged)

	for _, e := range elems {
		switch x := e.(type) {
		case *Instance:
			cp := x.Clone()
			if cp.def != nil {
				cp.def = c.subckts[c.index[cp.def.Name]]
			}
			c.Elements = append(c.Elements, cp)
		case *Directive:
			c.Elements = append(c.Elements, x.Clone())
		}
	}
	return nil
}

// AddInstances is [Circuit.Add] for a slice of instances, such as the
// result of a topology operator.
func (c *Circuit) AddInstances(insts ...*Instance) error {
	elems := make([]Element, len(insts))
	for i, inst := range insts {
		elems[i] = inst
	}
	return c.Add(elems...)
}

// AddSubckt registers a snapshot of s and of every definition it depends
// on, children first. Registering a definition equal to the one already
// held under the same name is a no-op; a different one fails with
// SUBCKT_CONFLICT.
func (c *Circuit) AddSubckt(s *Subcircuit) error {
	staged, err := c.stage([]*Subcircuit{s})
	if err != nil {
		return err
	}
	c.commit(staged)
	return nil
}

// stage computes the snapshots to register for defs without touching the
// circuit.
func (c *Circuit) stage(defs []*Subcircuit) ([]*Subcircuit, error) {
	var staged []*Subcircuit
	pending := make(map[string]*Subcircuit)
	visiting := make(map[*Subcircuit]bool)

	var visit func(s *Subcircuit) error
	visit = func(s *Subcircuit) error {
		if visiting[s] {
			return nil
		}
		visiting[s] = true
		for _, dep := range s.dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}

		if prev, ok := pending[s.Name]; ok {
			if !prev.SameDefinition(s) {
				return conflictError(s.Name)
			}
			return nil
		}
		if i, ok := c.index[s.Name]; ok {
			if !c.subckts[i].SameDefinition(s) {
				return conflictError(s.Name)
			}
			return nil
		}
		snap := s.Clone()
		pending[s.Name] = snap
		staged = append(staged, snap)
		return nil
	}

	for _, s := range defs {
		if err := visit(s); err != nil {
			return nil, err
		}
	}
	return staged, nil
}

func (c *Circuit) commit(staged []*Subcircuit) {
	for _, s := range staged {
		c.index[s.Name] = len(c.subckts)
		c.subckts = append(c.subckts, s)
	}
}

func conflictError(name string) error {
	return errors.New(errors.ErrCodeSubcktConflict,
		"subcircuit %q is already registered with a different definition", name)
}

// Subckt returns a copy of the registered subcircuit with the given name.
func (c *Circuit) Subckt(name string) (*Subcircuit, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.subckts[i].Clone(), true
}

// HasSubckt reports whether a subcircuit with the given name is registered.
func (c *Circuit) HasSubckt(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Subckts returns copies of the registered subcircuits in registration
// order. Every definition comes after the definitions it depends on.
func (c *Circuit) Subckts() []*Subcircuit {
	out := make([]*Subcircuit, len(c.subckts))
	for i, s := range c.subckts {
		out[i] = s.Clone()
	}
	return out
}

// Instances returns the instance elements in order. The returned pointers
// are owned by the circuit.
func (c *Circuit) Instances() []*Instance {
	var out []*Instance
	for _, e := range c.Elements {
		if inst, ok := e.(*Instance); ok {
			out = append(out, inst)
		}
	}
	return out
}

// Directives returns the directive elements in order. The returned pointers
// are owned by the circuit.
func (c *Circuit) Directives() []*Directive {
	var out []*Directive
	for _, e := range c.Elements {
		if d, ok := e.(*Directive); ok {
			out = append(out, d)
		}
	}
	return out
}

// IntoSubckt converts the circuit's instances into a new, unfixed
// subcircuit. Directives are dropped. Instances that use a subcircuit
// registered in c keep a reference to it, so registering the result into
// another circuit carries the nested definitions along.
func (c *Circuit) IntoSubckt(name string, ports []string, params Params) *Subcircuit {
	s := NewSubcircuit(name, ports, params)
	for _, inst := range c.Instances() {
		cp := inst.Clone()
		cp.Context = name
		if i, ok := c.index[cp.Name]; ok {
			cp.def = c.subckts[i]
		}
		s.Instances = append(s.Instances, cp)
	}
	return s
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	out := NewCircuit()
	for _, e := range c.Elements {
		switch x := e.(type) {
		case *Instance:
			out.Elements = append(out.Elements, x.Clone())
		case *Directive:
			out.Elements = append(out.Elements, x.Clone())
		}
	}
	for _, s := range c.subckts {
		out.commit([]*Subcircuit{s.Clone()})
	}
	return out
}

// Equal reports whether two circuits hold the same elements and subcircuits
// in the same order.
func (c *Circuit) Equal(o *Circuit) bool {
	if c == nil || o == nil {
		return c == o
	}
	if len(c.Elements) != len(o.Elements) || len(c.subckts) != len(o.subckts) {
		return false
	}
	for i := range c.Elements {
		if !elementsEqual(c.Elements[i], o.Elements[i]) {
			return false
		}
	}
	for i := range c.subckts {
		if !c.subckts[i].Equal(o.subckts[i]) {
			return false
		}
	}
	return true
}

func elementsEqual(a, b Element) bool {
	switch x := a.(type) {
	case *Instance:
		y, ok := b.(*Instance)
		return ok && x.Equal(y)
	case *Directive:
		y, ok := b.(*Directive)
		return ok && x.Equal(y)
	}
	return false
}

// String summarises the circuit, e.g. "circuit(12 instances, 2 directives, 3 subckts)".
func (c *Circuit) String() string {
	return fmt.Sprintf("circuit(%d instances, %d directives, %d subckts)",
		len(c.Instances()), len(c.Directives()), len(c.subckts))
}
