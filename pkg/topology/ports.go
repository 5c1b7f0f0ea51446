package topology

import (
	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

// PortGetter returns, per instance, the ports at the positions selected by
// mask; unselected positions hold the empty placeholder "". With flatten the
// placeholders are dropped. The mask must be as long as every instance's
// port list, else PORT_COUNT.
func PortGetter(insts []*netlist.Instance, mask Mask, flatten bool) ([][]netlist.Net, error) {
	for _, inst := range insts {
		if len(mask) != inst.Arity() {
			return nil, errors.New(errors.ErrCodePortCount,
				"%s: mask has %d positions, instance has %d ports", inst.Name, len(mask), inst.Arity())
		}
	}

	out := make([][]netlist.Net, len(insts))
	for i, inst := range insts {
		row := make([]netlist.Net, 0, len(mask))
		for j, sel := range mask {
			switch {
			case sel != 0:
				row = append(row, inst.Ports[j])
			case !flatten:
				row = append(row, "")
			}
		}
		out[i] = row
	}
	return out, nil
}

// PortSetter overwrites ports of insts: masks[i] applies to insts[i], and
// every non-empty entry replaces the port at its position. A nil mask leaves
// its instance alone.
//
// The number of masks must equal the number of instances and every mask
// must be as long as its instance's port list, else PORT_COUNT. All masks
// are checked before any instance is modified.
func PortSetter(insts []*netlist.Instance, masks [][]netlist.Net) error {
	if len(masks) != len(insts) {
		return errors.New(errors.ErrCodePortCount, "got %d masks for %d instances", len(masks), len(insts))
	}
	for i, inst := range insts {
		if masks[i] != nil && len(masks[i]) != inst.Arity() {
			return errors.New(errors.ErrCodePortCount,
				"%s: mask %d has %d positions, instance has %d ports", inst.Name, i, len(masks[i]), inst.Arity())
		}
	}
	for i, inst := range insts {
		for j, n := range masks[i] {
			if n != "" {
				inst.Ports[j] = n
			}
		}
	}
	return nil
}
