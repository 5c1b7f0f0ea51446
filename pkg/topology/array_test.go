package topology

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

func TestArray2D(t *testing.T) {
	cell := netlist.NewComponent("cell", []string{"wl", "bl"}, nil)
	fn := func(c []int) []netlist.Net {
		return netlist.Nets(fmt.Sprintf("wl%d", c[0]), fmt.Sprintf("bl%d", c[1]))
	}

	g, err := Array([]int{2, 3}, cell, fn)
	if err != nil {
		t.Fatalf("Array() error = %v", err)
	}
	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
	if !slices.Equal(g.Shape(), []int{2, 3}) {
		t.Errorf("Shape() = %v", g.Shape())
	}
	if got := g.At(1, 2).Ports; !slices.Equal(got, netlist.Nets("wl1", "bl2")) {
		t.Errorf("At(1, 2).Ports = %v", got)
	}

	var order []string
	for _, inst := range g.Flatten() {
		order = append(order, string(inst.Ports[0])+string(inst.Ports[1]))
	}
	want := []string{"wl0bl0", "wl0bl1", "wl0bl2", "wl1bl0", "wl1bl1", "wl1bl2"}
	if !slices.Equal(order, want) {
		t.Errorf("Flatten() order = %v, want %v", order, want)
	}

	seen := make(map[*netlist.Instance]bool)
	for _, inst := range g.Flatten() {
		seen[inst] = true
	}
	if len(seen) != 6 {
		t.Error("Array() shares instances between cells")
	}

	if g.At(2, 0) != nil || g.At(0) != nil || g.At(-1, 0) != nil {
		t.Error("At() outside the grid should return nil")
	}
}

func TestArray1DDefaultPorts(t *testing.T) {
	r := netlist.NewComponent("r", []string{"p", "n"}, nil)
	src, _ := r.New(netlist.Nets("a", "b"))

	g, err := Array([]int{4}, src, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 4 {
		if !slices.Equal(g.At(i).Ports, src.Ports) {
			t.Errorf("At(%d).Ports = %v, want %v", i, g.At(i).Ports, src.Ports)
		}
	}
}

func TestArrayErrors(t *testing.T) {
	r := netlist.NewComponent("r", []string{"p", "n"}, nil)
	one, _ := r.New(netlist.Nets("a", "b"))

	tests := []struct {
		name  string
		shape []int
		src   netlist.Source
		fn    PortFunc
		code  errors.Code
	}{
		{"empty shape", nil, r, nil, errors.ErrCodeInvalidShape},
		{"3d shape", []int{1, 1, 1}, r, nil, errors.ErrCodeInvalidShape},
		{"zero dimension", []int{2, 0}, r, nil, errors.ErrCodeInvalidShape},
		{"group source", []int{2}, netlist.Group{one, one}, nil, errors.ErrCodeInvalidShape},
		{"wrong port count", []int{2}, r, func([]int) []netlist.Net { return netlist.Nets("x") }, errors.ErrCodePortCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Array(tt.shape, tt.src, tt.fn); !errors.Is(err, tt.code) {
				t.Errorf("Array() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestPortGetter(t *testing.T) {
	inv := netlist.NewComponent("inv", []string{"in", "out", "vdd"}, nil)
	a, _ := inv.New(netlist.Nets("a", "b", "vdd"))
	b, _ := inv.New(netlist.Nets("b", "c", "vdd"))
	insts := []*netlist.Instance{a, b}

	got, err := PortGetter(insts, Mask{1, 0, 1}, false)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got[0], netlist.Nets("a", "", "vdd")) {
		t.Errorf("PortGetter() = %v", got[0])
	}

	flat, _ := PortGetter(insts, Mask{0, 1, 0}, true)
	if !slices.Equal(flat[1], netlist.Nets("c")) {
		t.Errorf("PortGetter(flatten) = %v", flat[1])
	}

	if _, err := PortGetter(insts, Mask{1}, false); !errors.Is(err, errors.ErrCodePortCount) {
		t.Errorf("PortGetter() error = %v, want PORT_COUNT", err)
	}
}

func TestPortSetter(t *testing.T) {
	inv := netlist.NewComponent("inv", []string{"vdd", "in", "out", "gnd"}, nil)
	a, _ := inv.New(netlist.Nets("vdd", "in", "out", "gnd"))
	b, _ := inv.New(netlist.Nets("vdd", "x", "y", "gnd"))

	err := PortSetter([]*netlist.Instance{a, b}, [][]netlist.Net{
		netlist.Nets("INPUT", "", "", "OUT"),
		nil,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Ports, netlist.Nets("INPUT", "in", "out", "OUT")) {
		t.Errorf("a.Ports = %v", a.Ports)
	}
	if !slices.Equal(b.Ports, netlist.Nets("vdd", "x", "y", "gnd")) {
		t.Errorf("b.Ports = %v, want unchanged", b.Ports)
	}

	err = PortSetter([]*netlist.Instance{a, b}, [][]netlist.Net{
		netlist.Nets("Z", "", "", ""),
		netlist.Nets("Z"),
	})
	if !errors.Is(err, errors.ErrCodePortCount) {
		t.Errorf("PortSetter() error = %v, want PORT_COUNT", err)
	}
	if a.Ports[0] != "INPUT" {
		t.Error("PortSetter() modified an instance before failing")
	}

	if err := PortSetter([]*netlist.Instance{a}, nil); !errors.Is(err, errors.ErrCodePortCount) {
		t.Errorf("PortSetter(no masks) error = %v, want PORT_COUNT", err)
	}
}
