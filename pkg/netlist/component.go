package netlist

import (
	"slices"
	"strings"

	"github.com/matzehuels/netweave/pkg/errors"
)

// Component is a factory for instances of one device type.
//
// Components are plain values; declare them as struct literals or with
// [NewComponent]:
//
//	nmos := &netlist.Component{
//	    Name:     "nmos",
//	    Ports:    []string{"d", "g", "s", "b"},
//	    Defaults: netlist.Params{"w": 1e-6, "l": 180e-9},
//	    Cap:      "M",
//	}
//
// A Model with a Base is resolved against Library when instances are
// created. Library is lookup context only: it is shared by [Component.Clone]
// and left out of serialization and [Component.Equal].
type Component struct {
	Name     string
	Ports    []string
	Defaults Params
	Model    *Model
	Cap      string
	Metadata Metadata
	Library  Library
}

// NewComponent returns a component with the given name, port names and
// default parameters.
func NewComponent(name string, ports []string, defaults Params) *Component {
	return &Component{
		Name:     name,
		Ports:    slices.Clone(ports),
		Defaults: defaults.Clone(),
		Metadata: Metadata{},
	}
}

// DeviceName returns Name, falling back to the model name.
func (c *Component) DeviceName() string {
	if c.Name == "" && c.Model != nil {
		return c.Model.Name
	}
	return c.Name
}

// Arity returns the number of ports.
func (c *Component) Arity() int { return len(c.Ports) }

// Option configures instance creation in [Component.New] and
// [Subcircuit.Inst].
type Option func(*newOptions)

type newOptions struct {
	params   Params
	force    bool
	ctx      string
	uid      *int
	metadata Metadata
	cap      *string
}

// WithParams overrides parameters of the new instance.
func WithParams(p Params) Option {
	return func(o *newOptions) { o.params = p }
}

// Force makes the overrides given with [WithParams] the complete parameter
// set: defaults and model parameters are ignored.
func Force() Option {
	return func(o *newOptions) { o.force = true }
}

// WithCtx sets the context (owning subcircuit name) of the new instance.
func WithCtx(ctx string) Option {
	return func(o *newOptions) { o.ctx = ctx }
}

// WithUID sets the numeric identifier of the new instance.
func WithUID(uid int) Option {
	return func(o *newOptions) { o.uid = &uid }
}

// WithMetadata attaches metadata to the new instance.
func WithMetadata(m Metadata) Option {
	return func(o *newOptions) { o.metadata = m }
}

// WithCap overrides the type prefix of the new instance.
func WithCap(cap string) Option {
	return func(o *newOptions) { o.cap = &cap }
}

func applyOptions(opts []Option) newOptions {
	var o newOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates an instance connected to nodes, in declared port order.
// It fails with NODES when the number of nodes differs from the number of
// ports.
//
// Unless [Force] is given the parameters are layered: the model's effective
// parameters, then defaults, then overrides. Resolving a model base fails
// with UNKNOWN_MODEL or CYCLIC_MODEL.
func (c *Component) New(nodes []Net, opts ...Option) (*Instance, error) {
	if len(nodes) != len(c.Ports) {
		return nil, nodesCountError(c.DeviceName(), len(c.Ports), len(nodes))
	}
	o := applyOptions(opts)

	var params Params
	if o.force {
		params = o.params.Clone()
	} else {
		base, err := c.modelParams()
		if err != nil {
			return nil, err
		}
		params = base.Merge(c.Defaults, o.params)
	}

	inst := &Instance{
		Name:     c.DeviceName(),
		Ports:    slices.Clone(nodes),
		Params:   params,
		Context:  o.ctx,
		Cap:      c.Cap,
		UID:      o.uid,
		Metadata: o.metadata.Clone(),
	}
	if o.cap != nil {
		inst.Cap = *o.cap
	}
	return inst, nil
}

// NewNamed creates an instance from a port-name to net mapping. The mapping
// must name every port exactly; unknown or missing names fail with NODES.
func (c *Component) NewNamed(nodes map[string]Net, opts ...Option) (*Instance, error) {
	ordered, err := orderNodes(c.DeviceName(), c.Ports, nodes)
	if err != nil {
		return nil, err
	}
	return c.New(ordered, opts...)
}

// Prototypes implements [Source]: the component is instantiated once on its
// own port names. It returns nil when the model cannot be resolved; use
// [PrototypesOf] to get the error.
func (c *Component) Prototypes() []*Instance {
	inst, err := c.New(Nets(c.Ports...))
	if err != nil {
		return nil
	}
	return []*Instance{inst}
}

// Clone returns a deep copy of the component.
func (c *Component) Clone() *Component {
	out := &Component{
		Name:     c.Name,
		Ports:    slices.Clone(c.Ports),
		Defaults: c.Defaults.Clone(),
		Cap:      c.Cap,
		Metadata: c.Metadata.Clone(),
		Library:  c.Library,
	}
	if out.Ports == nil {
		out.Ports = []string{}
	}
	if c.Model != nil {
		out.Model = c.Model.Clone()
	}
	return out
}

// Equal reports whether two components hold the same data.
func (c *Component) Equal(o *Component) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Name != o.Name || c.Cap != o.Cap || !slices.Equal(c.Ports, o.Ports) {
		return false
	}
	if !c.Defaults.Equal(o.Defaults) || !c.Metadata.Equal(o.Metadata) {
		return false
	}
	if (c.Model == nil) != (o.Model == nil) {
		return false
	}
	return c.Model == nil || c.Model.Equal(o.Model)
}

func (c *Component) modelParams() (Params, error) {
	if c.Model == nil {
		return Params{}, nil
	}
	if c.Model.Base == "" {
		return c.Model.ownParams(), nil
	}
	if c.Library == nil {
		return nil, errors.New(errors.ErrCodeUnknownModel,
			"model %q has base %q but the component has no library", c.Model.Name, c.Model.Base)
	}
	return c.Library.resolveWith(c.Model)
}

func orderNodes(name string, ports []string, nodes map[string]Net) ([]Net, error) {
	var missing []string
	ordered := make([]Net, len(ports))
	for i, p := range ports {
		n, ok := nodes[p]
		if !ok {
			missing = append(missing, p)
			continue
		}
		ordered[i] = n
	}
	var unknown []string
	for k := range nodes {
		if !slices.Contains(ports, k) {
			unknown = append(unknown, k)
		}
	}
	if len(missing) > 0 || len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, errors.New(errors.ErrCodeNodes,
			"%s: expected ports [%s], missing [%s], unknown [%s]",
			name, strings.Join(ports, " "), strings.Join(missing, " "), strings.Join(unknown, " "))
	}
	return ordered, nil
}

func nodesCountError(name string, want, got int) error {
	return errors.New(errors.ErrCodeNodes, "%s: expected %d nodes, got %d", name, want, got)
}
