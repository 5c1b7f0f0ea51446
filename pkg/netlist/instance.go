package netlist

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// InstanceFormatter renders a single instance as netlist text.
// Writers check [Instance.Formatter] before using their own dialect.
type InstanceFormatter interface {
	FormatInstance(inst *Instance) string
}

// Instance is a concrete placement of a component or subcircuit.
//
// The number of ports is fixed by the component or subcircuit that created
// the instance. Context names the owning subcircuit, or is empty at the top
// level. Cap is the netlist type prefix (e.g. "M", "R", "X") and UID the
// numeric suffix; both are optional and usually filled in at export time.
type Instance struct {
	Name     string
	Ports    []Net
	Params   Params
	Context  string
	Cap      string
	UID      *int
	Metadata Metadata

	// Formatter, when set, overrides the writer's dialect for this instance.
	// It is not serialized.
	Formatter InstanceFormatter

	def *Subcircuit
}

func (*Instance) element() {}

// Arity returns the number of ports.
func (i *Instance) Arity() int { return len(i.Ports) }

// Definition returns the subcircuit this instance was created from, or nil
// for component instances.
func (i *Instance) Definition() *Subcircuit { return i.def }

// Prototypes implements [Source].
func (i *Instance) Prototypes() []*Instance { return []*Instance{i} }

// Clone returns a deep copy of the instance. The formatter and the
// subcircuit definition are shared.
func (i *Instance) Clone() *Instance {
	out := &Instance{
		Name:      i.Name,
		Ports:     slices.Clone(i.Ports),
		Params:    i.Params.Clone(),
		Context:   i.Context,
		Cap:       i.Cap,
		Metadata:  i.Metadata.Clone(),
		Formatter: i.Formatter,
		def:       i.def,
	}
	if out.Ports == nil {
		out.Ports = []Net{}
	}
	if i.UID != nil {
		uid := *i.UID
		out.UID = &uid
	}
	return out
}

// Equal reports whether two instances hold the same data. The formatter and
// the subcircuit definition do not take part in the comparison.
func (i *Instance) Equal(o *Instance) bool {
	if i == nil || o == nil {
		return i == o
	}
	if i.Name != o.Name || i.Context != o.Context || i.Cap != o.Cap {
		return false
	}
	if (i.UID == nil) != (o.UID == nil) || (i.UID != nil && *i.UID != *o.UID) {
		return false
	}
	return netsEqual(i.Ports, o.Ports) && i.Params.Equal(o.Params) && i.Metadata.Equal(o.Metadata)
}

// Label returns Cap followed by UID, e.g. "M12". Missing parts are omitted.
func (i *Instance) Label() string {
	if i.UID == nil {
		return i.Cap
	}
	return i.Cap + strconv.Itoa(*i.UID)
}

// Source is anything the topology operators can replicate: a single
// instance, a component (instantiated on its own port names) or a [Group].
type Source interface {
	Prototypes() []*Instance
}

// PrototypesOf returns the prototypes of src. Unlike
// [Component.Prototypes], it reports why a component could not be
// instantiated.
func PrototypesOf(src Source) ([]*Instance, error) {
	if c, ok := src.(*Component); ok {
		inst, err := c.New(Nets(c.Ports...))
		if err != nil {
			return nil, err
		}
		return []*Instance{inst}, nil
	}
	return src.Prototypes(), nil
}

// Group is an ordered sequence of instances treated as one source.
type Group []*Instance

// Prototypes implements [Source].
func (g Group) Prototypes() []*Instance { return g }

// IntPtr returns a pointer to v, for filling in [Instance.UID].
func IntPtr(v int) *int { return &v }

// String renders the instance compactly, e.g. "M3 nmos(d g s) {w=1e-06}".
func (i *Instance) String() string {
	var b strings.Builder
	if label := i.Label(); label != "" {
		b.WriteString(label)
		b.WriteByte(' ')
	}
	b.WriteString(i.Name)
	b.WriteByte('(')
	for k, p := range i.Ports {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(p))
	}
	b.WriteByte(')')
	if len(i.Params) > 0 {
		b.WriteString(" {")
		for k, key := range i.Params.Keys() {
			if k > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(key)
			b.WriteByte('=')
			b.WriteString(fmt.Sprint(i.Params[key]))
		}
		b.WriteByte('}')
	}
	return b.String()
}
