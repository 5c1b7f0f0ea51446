package netlist

import (
	"strings"

	"github.com/matzehuels/netweave/pkg/dag"
	"github.com/matzehuels/netweave/pkg/errors"
)

// RootID is the ID of the synthetic node standing for the top level of a
// circuit in [Circuit.Graph].
const RootID = "<circuit>"

// Node kinds stored under the "kind" key of dependency graph node metadata.
const (
	KindRoot      = "root"
	KindSubckt    = "subckt"
	KindComponent = "component"
)

// Graph derives the dependency graph of the circuit.
//
// Nodes are the names used by top-level instances, the registered
// subcircuit names and the names instantiated inside them, plus the
// synthetic [RootID]. An edge from a parent to a child carries the number of
// times the parent uses the child. Graph fails with CYCLIC_DEPENDENCY when a
// subcircuit transitively instantiates itself.
func (c *Circuit) Graph() (*dag.DAG, error) {
	g := dag.New(dag.Metadata{})
	_ = g.AddNode(dag.Node{ID: RootID, Kind: dag.NodeKindSynthetic, Meta: dag.Metadata{"kind": KindRoot}})

	ensure := func(name string) {
		if _, ok := g.Node(name); ok {
			return
		}
		meta := dag.Metadata{"kind": KindComponent}
		if i, ok := c.index[name]; ok {
			meta["kind"] = KindSubckt
			meta["ports"] = len(c.subckts[i].Ports)
		}
		_ = g.AddNode(dag.Node{ID: name, Meta: meta})
	}

	addUses := func(parent string, insts []*Instance) {
		var order []string
		uses := make(map[string]int)
		for _, inst := range insts {
			ensure(inst.Name)
			if uses[inst.Name] == 0 {
				order = append(order, inst.Name)
			}
			uses[inst.Name]++
		}
		for _, child := range order {
			_ = g.AddEdge(dag.Edge{From: parent, To: child, Weight: uses[child]})
		}
	}

	addUses(RootID, c.Instances())
	for _, s := range c.subckts {
		ensure(s.Name)
		addUses(s.Name, s.Instances)
	}

	if cycle := g.FindCycle(); cycle != nil {
		return nil, errors.New(errors.ErrCodeCyclicDependency,
			"subcircuit instantiates itself: %s", strings.Join(cycle, " -> "))
	}
	return g, nil
}

// CountInstances returns the flattened number of uses of every component
// and subcircuit name in the circuit: a subcircuit used N times whose body
// uses C M times contributes N×M to C. Registered subcircuits that are never
// used count 0.
func (c *Circuit) CountInstances() (map[string]int, error) {
	g, err := c.Graph()
	if err != nil {
		return nil, err
	}
	return CountGraph(g)
}

// CountGraph propagates use counts through a dependency graph built by
// [Circuit.Graph], starting with 1 at [RootID].
func CountGraph(g *dag.DAG) (map[string]int, error) {
	order, err := g.TopoSort()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCyclicDependency, err, "count instances")
	}

	weights := make(map[[2]string]int)
	for _, e := range g.Edges() {
		weights[[2]string{e.From, e.To}] += e.Weight
	}

	counts := make(map[string]int, len(order))
	counts[RootID] = 1
	for _, id := range order {
		for _, child := range g.Children(id) {
			counts[child] += counts[id] * weights[[2]string{id, child}]
		}
	}

	out := make(map[string]int, len(order))
	for _, id := range order {
		if id != RootID {
			out[id] = counts[id]
		}
	}
	return out, nil
}
