package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/netweave/pkg/netlist"
)

func testCircuit(t *testing.T) *netlist.Circuit {
	t.Helper()
	nmos := netlist.NewComponent("nmos", []string{"d", "g", "s"}, nil)
	inv := netlist.NewSubcircuit("inv", []string{"in", "out"}, nil)
	m, _ := nmos.New(netlist.Nets("out", "in", "0"))
	if err := inv.Add(m); err != nil {
		t.Fatal(err)
	}

	c := netlist.NewCircuit()
	for _, nets := range [][]netlist.Net{netlist.Nets("a", "b"), netlist.Nets("b", "c")} {
		x, err := inv.Inst(nets)
		if err != nil {
			t.Fatal(err)
		}
		if err := c.Add(x); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func TestToDOT(t *testing.T) {
	g, err := testCircuit(t).Graph()
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G {",
		`"<circuit>" [label="<circuit>", style="rounded,filled,dashed"`,
		`"inv" [label="inv", fillcolor="#dbe9f6"]`,
		`"nmos" [label="nmos", shape=ellipse`,
		`"<circuit>" -> "inv" [label="×2"];`,
		`"inv" -> "nmos";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	g, err := testCircuit(t).Graph()
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(g, Options{Detailed: true})
	if !strings.Contains(dot, `label="inv\nkind: subckt\nports: 2"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() changed an svg without viewBox")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	g, err := testCircuit(t).Graph()
	if err != nil {
		t.Fatal(err)
	}
	svg, err := RenderSVG(context.Background(), ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
