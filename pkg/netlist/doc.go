// Package netlist models electronic-circuit netlists independently of any
// simulator dialect.
//
// # Entities
//
// A [Component] is a stateless factory: it knows its port names, its default
// parameters and optionally a [Model], and produces [Instance] values with
// [Component.New]. Instances are plain records that can be copied and
// mutated freely. A [Subcircuit] groups instances behind a fixed port list
// and is itself instantiated with [Subcircuit.Inst]. A [Circuit] is the top
// container of instances and [Directive] values and keeps an ordered
// registry of subcircuit definitions.
//
//	res := netlist.NewComponent("res", []string{"p", "n"}, netlist.Params{"r": 1000})
//	r1, err := res.New([]netlist.Net{"in", netlist.NewNet()})
//	if err != nil {
//	    return err
//	}
//	c := netlist.NewCircuit()
//	_ = c.Add(r1)
//
// # Nets
//
// A [Net] is a label. Literal labels are ordinary strings; fresh labels come
// from [NewNet] and are unique for the lifetime of the process.
//
// # Subcircuit Registration
//
// Adding an instance produced by [Subcircuit.Inst] to a circuit registers the
// subcircuit definition as well, together with every definition it depends
// on, children first. Registration stores a deep copy, so later changes to
// the source subcircuit do not leak into circuits that already hold it.
// Registering an equal definition twice is a no-op; registering a different
// definition under a name already in use fails with SUBCKT_CONFLICT.
//
// # Dependency Graph
//
// [Circuit.Graph] derives a weighted [dag.DAG] of instantiation relationships
// rooted at [RootID], and [Circuit.CountInstances] multiplies use counts along
// it to obtain the flattened number of every component and subcircuit.
//
// # Serialization
//
// Every entity converts to and from a plain map with ToDict/FromDict and to
// and from JSON with ToJSON/FromJSON. The conversions are exact inverses:
// integers stay int and floating point values stay float64.
//
// # Errors
//
// All failures carry a code from [github.com/matzehuels/netweave/pkg/errors]
// and are raised before any mutation.
//
// [dag.DAG]: github.com/matzehuels/netweave/pkg/dag.DAG
package netlist
