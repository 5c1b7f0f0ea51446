package netlist

import (
	"strconv"
	"sync/atomic"
)

// Net is a named connection point. Ports sharing a net are joined.
type Net string

// DefaultNetPrefix is the label prefix used by [NewNet].
const DefaultNetPrefix = "_net"

// NetGenerator hands out fresh net labels of the form prefix + counter.
// Labels from one generator are pairwise distinct. Generators with
// different prefixes produce disjoint ranges.
//
// A NetGenerator is safe for concurrent use.
type NetGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewNetGenerator returns a generator whose labels start with prefix.
func NewNetGenerator(prefix string) *NetGenerator {
	return &NetGenerator{prefix: prefix}
}

// Next returns a label never returned before by this generator.
func (g *NetGenerator) Next() Net {
	n := g.next.Add(1) - 1
	return Net(g.prefix + strconv.FormatUint(n, 10))
}

// Prefix returns the label prefix of the generator.
func (g *NetGenerator) Prefix() string { return g.prefix }

var defaultNets = NewNetGenerator(DefaultNetPrefix)

// NewNet returns a net label distinct from every label previously returned
// in this process. It never blocks and never fails.
func NewNet() Net { return defaultNets.Next() }

// Nets converts string labels to nets.
func Nets(labels ...string) []Net {
	nets := make([]Net, len(labels))
	for i, l := range labels {
		nets[i] = Net(l)
	}
	return nets
}
