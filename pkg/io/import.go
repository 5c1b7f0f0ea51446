package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netweave/pkg/dag"
)

var kindFromString = map[string]dag.NodeKind{
	"synthetic": dag.NodeKindSynthetic,
}

// ReadJSON decodes a JSON dependency graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "inv"}, {"id": "nmos"}],
//	  "edges": [{"from": "inv", "to": "nmos", "weight": 1}]
//	}
//
// ReadJSON returns an error if the JSON is malformed, a node ID repeats, an
// edge references an unknown node or has a negative weight, or the graph
// contains a cycle. Errors are wrapped with context describing which node or
// edge caused the problem; use errors.Is to check for specific DAG errors.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*dag.DAG, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := dag.New(nil)
	for _, n := range data.Nodes {
		nd := dag.Node{ID: n.ID, Meta: n.Meta}
		if k, ok := kindFromString[n.Kind]; ok {
			nd.Kind = k
		}
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To, Weight: e.Weight}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*dag.DAG, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
