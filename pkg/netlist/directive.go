package netlist

import (
	"fmt"
	"strings"
)

// Directive is a simulator control statement. It is either raw text, or a
// name with parameters where a nil value marks a key-only flag:
//
//	netlist.RawDirective("global 0 vdd")
//	netlist.NewDirective("tran", netlist.Params{"stop": "100n"})
type Directive struct {
	Raw    string
	Name   string
	Params Params
}

func (*Directive) element() {}

// RawDirective returns a directive holding raw text.
func RawDirective(raw string) *Directive {
	return &Directive{Raw: raw}
}

// NewDirective returns a named directive with parameters.
func NewDirective(name string, params Params) *Directive {
	return &Directive{Name: name, Params: params.Clone()}
}

// IsRaw reports whether the directive holds raw text.
func (d *Directive) IsRaw() bool { return d.Raw != "" }

// Clone returns a deep copy of the directive.
func (d *Directive) Clone() *Directive {
	out := &Directive{Raw: d.Raw, Name: d.Name}
	if !d.IsRaw() {
		out.Params = d.Params.Clone()
	}
	return out
}

// Equal reports whether two directives hold the same data.
func (d *Directive) Equal(o *Directive) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Raw == o.Raw && d.Name == o.Name && d.Params.Equal(o.Params)
}

// Element is an entry of a circuit's element list: an [*Instance] or a
// [*Directive].
type Element interface {
	element()
}

// String returns the raw text, or the name followed by its parameters.
func (d *Directive) String() string {
	if d.IsRaw() {
		return d.Raw
	}
	parts := []string{d.Name}
	for _, k := range d.Params.Keys() {
		if v := d.Params[k]; v != nil {
			parts = append(parts, k+"="+fmt.Sprint(v))
			continue
		}
		parts = append(parts, k)
	}
	return strings.Join(parts, " ")
}
