package topology

import (
	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

// Mask selects port positions: 1 marks a selected position, 0 an untouched
// one. Operators require a mask as long as the instance arity that selects
// either no position or exactly two.
type Mask []int

// pair is the (input, output) position pair selected by a mask.
type pair struct {
	in, out int
	ok      bool // false when the mask selects nothing
}

// resolve validates m against the arity of inst.
func (m Mask) resolve(inst *netlist.Instance) (pair, error) {
	arity := inst.Arity()
	if m == nil {
		if arity < 2 {
			return pair{}, errors.New(errors.ErrCodeMask,
				"%s: default mask needs at least two ports, instance has %d", inst.Name, arity)
		}
		return pair{in: 0, out: 1, ok: true}, nil
	}
	if len(m) != arity {
		return pair{}, errors.New(errors.ErrCodeMask,
			"%s: mask has %d positions, instance has %d ports", inst.Name, len(m), arity)
	}

	var selected []int
	for i, v := range m {
		switch v {
		case 0:
		case 1:
			selected = append(selected, i)
		default:
			return pair{}, errors.New(errors.ErrCodeMask, "%s: mask value %d at position %d is not 0 or 1", inst.Name, v, i)
		}
	}
	switch len(selected) {
	case 0:
		return pair{}, nil
	case 2:
		return pair{in: selected[0], out: selected[1], ok: true}, nil
	}
	return pair{}, errors.New(errors.ErrCodeMask,
		"%s: mask selects %d positions, want 0 or 2", inst.Name, len(selected))
}
