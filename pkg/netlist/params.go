package netlist

import (
	"maps"
	"reflect"
	"slices"
)

// Params maps parameter names to values. Values are nil, bool, int, float64,
// string, or a []any list of non-nil values of those kinds (lists may nest,
// e.g. a PWL waveform). A nil value has a context-dependent meaning: a key-only flag on
// a [Directive], a required parameter on a [Subcircuit] and a deletion on a
// [Model].
type Params map[string]any

// Metadata stores arbitrary key-value pairs attached to instances and
// components. It is carried through copies and serialization but ignored by
// writers.
type Metadata map[string]any

// Tombstone is the type of [Deleted].
type Tombstone struct{}

// Deleted marks a model parameter as removed: binding a key to Deleted in a
// derived model drops the key inherited from its base.
var Deleted = Tombstone{}

// Clone returns a deep copy of p. Cloning nil yields an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Merge returns a copy of p overlaid with each layer in turn.
func (p Params) Merge(layers ...Params) Params {
	out := p.Clone()
	for _, l := range layers {
		for k, v := range l {
			out[k] = cloneValue(v)
		}
	}
	return out
}

// Equal reports whether p and o hold the same keys and values. A nil map
// equals an empty one.
func (p Params) Equal(o Params) bool {
	return mapsEqual(p, o)
}

// Clone returns a deep copy of m. Cloning nil yields an empty map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Equal reports whether m and o hold the same keys and values. A nil map
// equals an empty one.
func (m Metadata) Equal(o Metadata) bool {
	return mapsEqual(m, o)
}

func mapsEqual[M ~map[string]any](a, b M) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func netsEqual(a, b []Net) bool { return slices.Equal(a, b) }
