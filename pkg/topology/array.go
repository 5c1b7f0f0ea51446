package topology

import (
	"slices"

	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

// PortFunc returns the ports of the array element at coord.
type PortFunc func(coord []int) []netlist.Net

// Grid is a dense 1D or 2D arrangement of instances.
type Grid struct {
	shape []int
	cells []*netlist.Instance
}

// Array places one copy of the single prototype of src at every coordinate
// of shape, which holds one size (1D) or rows and columns (2D). When fn is
// non-nil it assigns the ports of each copy.
//
// Array fails with INVALID_SHAPE for an empty, non-positive or higher
// dimensional shape or a source with more than one prototype, and with
// PORT_COUNT when fn returns the wrong number of ports.
func Array(shape []int, src netlist.Source, fn PortFunc) (*Grid, error) {
	if len(shape) < 1 || len(shape) > 2 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "shape must have 1 or 2 dimensions, got %d", len(shape))
	}
	size := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidShape, "shape %v has a non-positive dimension", shape)
		}
		size *= d
	}
	protos, err := netlist.PrototypesOf(src)
	if err != nil {
		return nil, err
	}
	if len(protos) != 1 {
		return nil, errors.New(errors.ErrCodeInvalidShape, "array needs a single template, got %d", len(protos))
	}
	proto := protos[0]

	g := &Grid{shape: slices.Clone(shape), cells: make([]*netlist.Instance, size)}
	for idx := range g.cells {
		c := proto.Clone()
		if fn != nil {
			coord := g.coord(idx)
			ports := fn(coord)
			if len(ports) != proto.Arity() {
				return nil, errors.New(errors.ErrCodePortCount,
					"%s at %v: got %d ports, want %d", proto.Name, coord, len(ports), proto.Arity())
			}
			c.Ports = slices.Clone(ports)
		}
		g.cells[idx] = c
	}
	return g, nil
}

// coord converts a row-major index into a coordinate.
func (g *Grid) coord(idx int) []int {
	if len(g.shape) == 1 {
		return []int{idx}
	}
	return []int{idx / g.shape[1], idx % g.shape[1]}
}

// At returns the instance at coord, or nil when coord lies outside the
// grid or has the wrong number of dimensions.
func (g *Grid) At(coord ...int) *netlist.Instance {
	if len(coord) != len(g.shape) {
		return nil
	}
	idx := 0
	for i, c := range coord {
		if c < 0 || c >= g.shape[i] {
			return nil
		}
		idx = idx*g.shape[i] + c
	}
	return g.cells[idx]
}

// Flatten returns the instances in row-major order.
func (g *Grid) Flatten() []*netlist.Instance { return slices.Clone(g.cells) }

// Len returns the number of instances.
func (g *Grid) Len() int { return len(g.cells) }

// Shape returns a copy of the grid dimensions.
func (g *Grid) Shape() []int { return slices.Clone(g.shape) }

// Prototypes implements [netlist.Source], so a grid can be fed to the
// operators directly.
func (g *Grid) Prototypes() []*netlist.Instance { return g.Flatten() }
