package topology

import (
	"github.com/matzehuels/netweave/pkg/errors"
	"github.com/matzehuels/netweave/pkg/netlist"
)

// rewrite produces the n copies of proto for a non-empty mask selection.
type rewrite func(proto *netlist.Instance, p pair, n int) []*netlist.Instance

// apply validates every prototype before generating anything, so a failing
// call consumes no net labels.
func apply(src netlist.Source, n int, mask Mask, fn rewrite) ([]*netlist.Instance, error) {
	if n <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidCount, "count must be positive, got %d", n)
	}
	protos, err := netlist.PrototypesOf(src)
	if err != nil {
		return nil, err
	}
	pairs := make([]pair, len(protos))
	for i, proto := range protos {
		p, err := mask.resolve(proto)
		if err != nil {
			return nil, err
		}
		pairs[i] = p
	}

	out := make([]*netlist.Instance, 0, n*len(protos))
	for i, proto := range protos {
		if !pairs[i].ok {
			out = append(out, replicate(proto, n)...)
			continue
		}
		out = append(out, fn(proto, pairs[i], n)...)
	}
	return out, nil
}

func replicate(proto *netlist.Instance, n int) []*netlist.Instance {
	out := make([]*netlist.Instance, n)
	for i := range out {
		out[i] = proto.Clone()
	}
	return out
}

// Chain connects n copies in series: the output of each copy feeds the
// input of the next. The first copy keeps the original input; every output
// is a fresh net.
func Chain(src netlist.Source, n int, mask Mask) ([]*netlist.Instance, error) {
	return ChainTo(src, n, "", mask)
}

// ChainTo is [Chain] with the output of the last copy bound to terminal.
// An empty terminal leaves the last output fresh.
func ChainTo(src netlist.Source, n int, terminal netlist.Net, mask Mask) ([]*netlist.Instance, error) {
	return apply(src, n, mask, func(proto *netlist.Instance, p pair, n int) []*netlist.Instance {
		out := make([]*netlist.Instance, n)
		prev := proto.Ports[p.in]
		for i := range out {
			c := proto.Clone()
			c.Ports[p.in] = prev
			if i == n-1 && terminal != "" {
				c.Ports[p.out] = terminal
			} else {
				c.Ports[p.out] = netlist.NewNet()
			}
			prev = c.Ports[p.out]
			out[i] = c
		}
		return out
	})
}

// Parallel returns n identical copies sharing input and output.
func Parallel(src netlist.Source, n int, mask Mask) ([]*netlist.Instance, error) {
	return apply(src, n, mask, func(proto *netlist.Instance, _ pair, n int) []*netlist.Instance {
		return replicate(proto, n)
	})
}

// SelfLoop returns, per prototype, a copy and a second copy with the
// selected input and output swapped. The mask must select two positions.
func SelfLoop(src netlist.Source, mask Mask) ([]*netlist.Instance, error) {
	protos, err := netlist.PrototypesOf(src)
	if err != nil {
		return nil, err
	}
	for _, proto := range protos {
		p, err := mask.resolve(proto)
		if err != nil {
			return nil, err
		}
		if !p.ok {
			return nil, errors.New(errors.ErrCodeMask, "%s: self loop needs two selected ports", proto.Name)
		}
	}
	return apply(src, 2, mask, func(proto *netlist.Instance, p pair, _ int) []*netlist.Instance {
		swapped := proto.Clone()
		swapped.Ports[p.in], swapped.Ports[p.out] = proto.Ports[p.out], proto.Ports[p.in]
		return []*netlist.Instance{proto.Clone(), swapped}
	})
}

// Fanout returns n copies sharing the input, each driving a fresh output.
func Fanout(src netlist.Source, n int, mask Mask) ([]*netlist.Instance, error) {
	return apply(src, n, mask, func(proto *netlist.Instance, p pair, n int) []*netlist.Instance {
		out := replicate(proto, n)
		for _, c := range out {
			c.Ports[p.out] = netlist.NewNet()
		}
		return out
	})
}

// Direct returns n copies sharing the output, each fed by a fresh input.
func Direct(src netlist.Source, n int, mask Mask) ([]*netlist.Instance, error) {
	return apply(src, n, mask, func(proto *netlist.Instance, p pair, n int) []*netlist.Instance {
		out := replicate(proto, n)
		for _, c := range out {
			c.Ports[p.in] = netlist.NewNet()
		}
		return out
	})
}
