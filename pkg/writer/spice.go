package writer

import (
	"strings"

	"github.com/matzehuels/netweave/pkg/netlist"
)

// Spice writes a SPICE netlist. Subcircuit instances keep the X prefix,
// named directives become dot statements and the netlist ends with ".end".
type Spice struct{}

var (
	_ InstanceFormatter  = Spice{}
	_ SubcktFormatter    = Spice{}
	_ DirectiveFormatter = Spice{}
	_ EndFormatter       = Spice{}
)

func (Spice) FormatInstance(inst *netlist.Instance) string {
	fields := []string{Label(inst)}
	for _, p := range inst.Ports {
		fields = append(fields, string(p))
	}
	fields = append(fields, inst.Name)
	return strings.Join(append(fields, Params(inst.Params)...), " ")
}

func (Spice) FormatSubckt(s *netlist.Subcircuit, body []string) string {
	header := append([]string{".subckt", s.Name}, s.Ports...)
	if params := Params(s.Params); len(params) > 0 {
		header = append(header, "params:")
		header = append(header, params...)
	}
	lines := append([]string{strings.Join(header, " ")}, body...)
	lines = append(lines, ".ends "+s.Name)
	return strings.Join(lines, "\n")
}

func (Spice) FormatDirective(d *netlist.Directive) string {
	if d.IsRaw() {
		return d.Raw
	}
	return strings.Join(append([]string{"." + d.Name}, Params(d.Params)...), " ")
}

func (Spice) FormatEnd() string { return ".end" }
