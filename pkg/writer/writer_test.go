package writer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

func sampleCircuit(t *testing.T) *netlist.Circuit {
	t.Helper()
	nmos := netlist.NewComponent("nmos", []string{"d", "g", "s"}, netlist.Params{"w": 1e-6})
	nmos.Cap = "M"
	res := netlist.NewComponent("res", []string{"p", "n"}, netlist.Params{"r": 1000})

	inv := netlist.NewSubcircuit("inv", []string{"in", "out"}, netlist.Params{"wn": nil})
	m, err := nmos.New(netlist.Nets("out", "in", "0"), netlist.WithParams(netlist.Params{"w": "wn"}))
	if err != nil {
		t.Fatal(err)
	}
	if err := inv.Add(m); err != nil {
		t.Fatal(err)
	}

	wn := netlist.WithParams(netlist.Params{"wn": 2e-6})
	x1, err := inv.Inst(netlist.Nets("a", "b"), wn)
	if err != nil {
		t.Fatal(err)
	}
	x0, err := inv.Inst(netlist.Nets("b", "c"), wn, netlist.WithUID(0))
	if err != nil {
		t.Fatal(err)
	}
	r, err := res.New(netlist.Nets("c", "0"))
	if err != nil {
		t.Fatal(err)
	}

	c := netlist.NewCircuit()
	err = c.Add(
		netlist.RawDirective("simulator lang=spectre"),
		netlist.NewDirective("global", netlist.Params{"0": nil}),
		x1, x0, r,
	)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestWritesSpectre(t *testing.T) {
	c := sampleCircuit(t)
	before := c.Clone()

	got := New(Spectre{}).Writes(c)
	want := strings.Join([]string{
		"simulator lang=spectre",
		"global 0",
		"subckt inv in out",
		"parameters wn",
		"M0 (out in 0) nmos w=wn",
		"ends inv",
		"X1 (a b) inv wn=2e-06",
		"X0 (b c) inv wn=2e-06",
		"R0 (c 0) res r=1000",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Writes() mismatch (-want +got):\n%s", diff)
	}
	if !c.Equal(before) {
		t.Error("Writes() mutated the circuit")
	}
	if c.Instances()[0].UID != nil {
		t.Error("Writes() assigned a UID in place")
	}
}

func TestWritesSpice(t *testing.T) {
	got := New(Spice{}).Writes(sampleCircuit(t))
	want := strings.Join([]string{
		"simulator lang=spectre",
		".global 0",
		".subckt inv in out params: wn",
		"M0 out in 0 nmos w=wn",
		".ends inv",
		"X1 a b inv wn=2e-06",
		"X0 b c inv wn=2e-06",
		"R0 c 0 res r=1000",
		".end",
	}, "\n") + "\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Writes() mismatch (-want +got):\n%s", diff)
	}
}

type upperNets struct{}

func (upperNets) FormatNet(n netlist.Net) string { return strings.ToUpper(string(n)) }

type fixedFormatter string

func (f fixedFormatter) FormatInstance(*netlist.Instance) string { return string(f) }

func TestFormatFallbacks(t *testing.T) {
	w := New(upperNets{})
	res := netlist.NewComponent("res", []string{"p", "n"}, nil)
	r, _ := res.New(netlist.Nets("a", "b"))
	d := netlist.NewDirective("tran", netlist.Params{"stop": "1u"})

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"net uses dialect", netlist.Net("vdd"), "VDD"},
		{"instance falls back", r, "res(a b)"},
		{"directive falls back", d, "tran stop=1u"},
		{"unknown value", 42, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Format(tt.in); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstanceFormatterWins(t *testing.T) {
	res := netlist.NewComponent("res", []string{"p", "n"}, nil)
	r, _ := res.New(netlist.Nets("a", "b"))
	r.Formatter = fixedFormatter("custom")

	if got := New(Spectre{}).Format(r); got != "custom" {
		t.Errorf("Format() = %q, want custom", got)
	}
}

func TestLabels(t *testing.T) {
	res := netlist.NewComponent("res", []string{"p", "n"}, nil)
	var insts []*netlist.Instance
	for _, uid := range []*int{nil, netlist.IntPtr(0), nil, netlist.IntPtr(2), nil} {
		r, _ := res.New(netlist.Nets("a", "b"))
		r.UID = uid
		insts = append(insts, r)
	}

	var got []string
	for _, line := range New(Spectre{}).body(insts) {
		got = append(got, strings.Fields(line)[0])
	}
	want := []string{"R1", "R0", "R3", "R2", "R4"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{1, "1"},
		{1.0, "1.0"},
		{2.5e-9, "2.5e-09"},
		{"wn", "wn"},
		{"100n", "100n"},
		{"a b", `"a b"`},
		{"1", `"1"`},
		{true, "yes"},
		{[]any{1, "x"}, "[ 1 x ]"},
	}
	for _, tt := range tests {
		if got := Value(tt.in); got != tt.want {
			t.Errorf("Value(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParamsOrder(t *testing.T) {
	got := Params(netlist.Params{"b": 1, "fast": nil, "a": "x", "gone": netlist.Deleted, "dc": nil})
	want := []string{"dc", "fast", "a=x", "b=1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Params() mismatch (-want +got):\n%s", diff)
	}
}

func TestForDialect(t *testing.T) {
	if _, err := ForDialect("SPECTRE"); err != nil {
		t.Errorf("ForDialect(SPECTRE) error = %v", err)
	}
	if _, err := ForDialect("verilog"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ForDialect(verilog) error = %v, want INVALID_FORMAT", err)
	}
	if diff := cmp.Diff([]string{"spectre", "spice"}, Dialects()); diff != "" {
		t.Errorf("Dialects() mismatch (-want +got):\n%s", diff)
	}
}
