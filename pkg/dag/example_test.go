package dag_test

import (
	"fmt"

	"github.com/matzehuels/netweave/pkg/dag"
)

func ExampleDAG_basic() {
	// An inverter chain uses the inverter three times, each inverter uses
	// one nmos and one pmos.
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "chain"})
	_ = g.AddNode(dag.Node{ID: "inv"})
	_ = g.AddNode(dag.Node{ID: "nmos"})
	_ = g.AddEdge(dag.Edge{From: "chain", To: "inv", Weight: 3})
	_ = g.AddEdge(dag.Edge{From: "inv", To: "nmos", Weight: 1})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Weight chain->inv:", g.Weight("chain", "inv"))
	// Output:
	// Nodes: 3
	// Edges: 2
	// Weight chain->inv: 3
}

func ExampleDAG_traversal() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "inv"})
	_ = g.AddNode(dag.Node{ID: "nmos"})
	_ = g.AddNode(dag.Node{ID: "pmos"})
	_ = g.AddEdge(dag.Edge{From: "inv", To: "nmos", Weight: 1})
	_ = g.AddEdge(dag.Edge{From: "inv", To: "pmos", Weight: 1})

	fmt.Println("Children of inv:", g.Children("inv"))
	fmt.Println("Parents of nmos:", g.Parents("nmos"))
	fmt.Println("Out-degree of inv:", g.OutDegree("inv"))
	// Output:
	// Children of inv: [nmos pmos]
	// Parents of nmos: [inv]
	// Out-degree of inv: 2
}

func ExampleDAG_TopoSort() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "nmos"})
	_ = g.AddNode(dag.Node{ID: "inv"})
	_ = g.AddNode(dag.Node{ID: "top", Kind: dag.NodeKindSynthetic})
	_ = g.AddEdge(dag.Edge{From: "inv", To: "nmos", Weight: 1})
	_ = g.AddEdge(dag.Edge{From: "top", To: "inv", Weight: 2})

	order, _ := g.TopoSort()
	fmt.Println(order)
	// Output:
	// [top inv nmos]
}

func ExampleDAG_FindCycle() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b", Weight: 1})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a", Weight: 1})

	fmt.Println(g.FindCycle())
	fmt.Println(g.Validate())
	// Output:
	// [a b a]
	// graph contains a cycle
}

func ExampleDAG_metadata() {
	g := dag.New(dag.Metadata{"name": "ring-oscillator"})
	_ = g.AddNode(dag.Node{
		ID: "inv",
		Meta: dag.Metadata{
			"kind":  "subckt",
			"ports": 2,
		},
	})

	node, _ := g.Node("inv")
	fmt.Println("Node:", node.ID)
	fmt.Println("Kind:", node.Meta["kind"])
	// Output:
	// Node: inv
	// Kind: subckt
}
