// Package topology generates repetitive netlist structures from a template.
//
// # Operators
//
// Every operator takes a [netlist.Source] (a single instance, a component or
// a [netlist.Group]), a count and a [Mask], and returns freshly copied
// instances. The mask picks an input port p0 and an output port p1; the
// operator rewrites only those two positions:
//
//	operator   p1 of copy i                  p0 of copy i
//	Chain      fresh net, or terminal last   original p0 if i == 0, else p1 of copy i-1
//	Parallel   unchanged                     unchanged
//	SelfLoop   original p0                   original p1   (two results, count ignored)
//	Fanout     fresh net                     unchanged
//	Direct     unchanged                     fresh net
//
// A nil mask selects the first two ports. A mask selecting no position makes
// every operator except SelfLoop a plain replication. A group source is
// processed element by element and the results are concatenated.
//
//	inv, _ := invCell.New(netlist.Nets("in", "out", "vdd", "0"))
//	stages, err := topology.ChainTo(inv, 5, "out", topology.Mask{1, 1, 0, 0})
//
// # Arrays
//
// [Array] places one copy of a template per coordinate of a 1D or 2D shape
// and lets a callback assign the ports of each copy.
//
// # Port Access
//
// [PortGetter] reads masked port positions from a list of instances and
// [PortSetter] overwrites them.
package topology
