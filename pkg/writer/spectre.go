package writer

import (
	"strings"

	"github.com/matzehuels/netweave/pkg/netlist"
)

// Spectre writes the Spectre netlist dialect:
//
//	subckt inv in out
//	parameters wn=1e-06
//	M0 (out in 0) nmos w=wn
//	ends inv
//	X0 (a b) inv wn=2e-06
type Spectre struct{}

var (
	_ InstanceFormatter  = Spectre{}
	_ SubcktFormatter    = Spectre{}
	_ DirectiveFormatter = Spectre{}
	_ NetFormatter       = Spectre{}
)

func (Spectre) FormatNet(n netlist.Net) string { return string(n) }

func (d Spectre) FormatInstance(inst *netlist.Instance) string {
	ports := make([]string, len(inst.Ports))
	for i, p := range inst.Ports {
		ports[i] = d.FormatNet(p)
	}
	fields := []string{Label(inst), "(" + strings.Join(ports, " ") + ")", inst.Name}
	return strings.Join(append(fields, Params(inst.Params)...), " ")
}

func (d Spectre) FormatSubckt(s *netlist.Subcircuit, body []string) string {
	lines := []string{strings.Join(append([]string{"subckt", s.Name}, s.Ports...), " ")}
	if params := Params(s.Params); len(params) > 0 {
		lines = append(lines, "parameters "+strings.Join(params, " "))
	}
	lines = append(lines, body...)
	lines = append(lines, "ends "+s.Name)
	return strings.Join(lines, "\n")
}

func (Spectre) FormatDirective(d *netlist.Directive) string {
	if d.IsRaw() {
		return d.Raw
	}
	return strings.Join(append([]string{d.Name}, Params(d.Params)...), " ")
}
