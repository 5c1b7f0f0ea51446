// Package dag provides a weighted directed graph used to describe which
// definitions instantiate which.
//
// # Overview
//
// A netlist forms a hierarchy: the top level places instances, subcircuits
// place further instances, and no subcircuit may (transitively) place
// itself. This package holds that hierarchy as a graph whose edges carry a
// weight, the number of times the parent uses the child.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs and edges can only connect
// existing nodes:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "inv"})
//	g.AddNode(dag.Node{ID: "nmos"})
//	g.AddEdge(dag.Edge{From: "inv", To: "nmos", Weight: 1})
//
// Query the graph structure with [DAG.Children], [DAG.Parents], [DAG.Weight]
// and related methods. Use [DAG.Validate] or [DAG.FindCycle] to verify that
// the graph is acyclic, and [DAG.TopoSort] to order nodes parents-first.
//
// # Determinism
//
// Nodes and edges keep their insertion order. [DAG.Nodes], [DAG.Sources],
// [DAG.Sinks], [DAG.FindCycle] and [DAG.TopoSort] all follow it, so the same
// construction sequence always yields the same output.
//
// # Metadata
//
// Nodes, edges and the graph itself support arbitrary metadata via [Metadata]
// maps. Metadata maps are never nil after creation - empty maps are
// automatically initialized.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
package dag
