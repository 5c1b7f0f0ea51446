package netlist

import (
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/netweave/pkg/errors"
)

// Model is a named, inheritable parameter set.
//
// The effective parameters of a model are those of its base, resolved
// recursively, overridden by its own. Binding a key to [Deleted] (or nil)
// removes the inherited value.
type Model struct {
	Name   string
	Base   string
	Params Params
}

// NewModel returns a model without a base.
func NewModel(name string, params Params) *Model {
	return &Model{Name: name, Params: params.Clone()}
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	return &Model{Name: m.Name, Base: m.Base, Params: m.Params.Clone()}
}

// Equal reports whether two models hold the same data. [Deleted] and nil
// are interchangeable as parameter values.
func (m *Model) Equal(o *Model) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Name == o.Name && m.Base == o.Base &&
		normalizeDeleted(m.Params).Equal(normalizeDeleted(o.Params))
}

// ownParams returns the model's parameters without deletion markers.
func (m *Model) ownParams() Params {
	out := make(Params, len(m.Params))
	for k, v := range m.Params {
		if !isDeleted(v) {
			out[k] = cloneValue(v)
		}
	}
	return out
}

func isDeleted(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Tombstone)
	return ok
}

func normalizeDeleted(p Params) Params {
	out := make(Params, len(p))
	for k, v := range p {
		if isDeleted(v) {
			out[k] = Deleted
			continue
		}
		out[k] = v
	}
	return out
}

// Library is a collection of models indexed by name.
type Library map[string]*Model

// Add stores m under its name, replacing any model with the same name.
func (l Library) Add(m *Model) { l[m.Name] = m }

// Resolve returns the effective parameters of the named model.
//
// It fails with UNKNOWN_MODEL when the model or one of its bases is missing
// and with CYCLIC_MODEL when the base chain revisits a model.
func (l Library) Resolve(name string) (Params, error) {
	chain, err := l.chain(name)
	if err != nil {
		return nil, err
	}
	return flatten(chain), nil
}

// resolveWith resolves m, which need not be stored in the library, on top of
// its base chain.
func (l Library) resolveWith(m *Model) (Params, error) {
	bases, err := l.chain(m.Base)
	if err != nil {
		return nil, err
	}
	for _, b := range bases {
		if b.Name == m.Name {
			return nil, errors.New(errors.ErrCodeCyclicModel,
				"model inheritance cycle: %s inherits from itself through %q", m.Name, m.Base)
		}
	}
	return flatten(append([]*Model{m}, bases...)), nil
}

// flatten layers a chain, nearest model first, into effective parameters.
func flatten(chain []*Model) Params {
	out := Params{}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Params {
			if isDeleted(v) {
				delete(out, k)
				continue
			}
			out[k] = cloneValue(v)
		}
	}
	return out
}

// Model returns a flattened copy of the named model: its Base is empty and
// its Params are the resolved parameters.
func (l Library) Model(name string) (*Model, error) {
	params, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	return &Model{Name: name, Params: params}, nil
}

// Validate resolves every model in the library and returns the first error.
// Models are checked in name order.
func (l Library) Validate() error {
	for _, name := range l.Names() {
		if _, err := l.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the model names in sorted order.
func (l Library) Names() []string {
	return slices.Sorted(maps.Keys(l))
}

// chain returns the model followed by its bases, nearest first.
func (l Library) chain(name string) ([]*Model, error) {
	var chain []*Model
	seen := make(map[string]bool)
	path := []string{}
	for cur := name; cur != ""; {
		if seen[cur] {
			path = append(path, cur)
			return nil, errors.New(errors.ErrCodeCyclicModel,
				"model inheritance cycle: %s", strings.Join(path, " -> "))
		}
		m, ok := l[cur]
		if !ok {
			if cur == name {
				return nil, errors.New(errors.ErrCodeUnknownModel, "unknown model %q", cur)
			}
			return nil, errors.New(errors.ErrCodeUnknownModel,
				"model %q has unknown base %q", path[len(path)-1], cur)
		}
		seen[cur] = true
		path = append(path, cur)
		chain = append(chain, m)
		cur = m.Base
	}
	return chain, nil
}
