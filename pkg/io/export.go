package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/netweave/pkg/dag"
)

var kindToString = map[dag.NodeKind]string{
	dag.NodeKindSynthetic: "synthetic",
}

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID   string       `json:"id"`
	Kind string       `json:"kind,omitempty"`
	Meta dag.Metadata `json:"meta,omitempty"`
}

type edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

// WriteJSON encodes a dependency graph as JSON and writes it to w.
// The output includes all nodes (with metadata and kind) and weighted edges,
// in insertion order. It can be re-imported with [ReadJSON].
func WriteJSON(g *dag.DAG, w io.Writer) error {
	nodes := g.Nodes()
	edges := g.Edges()
	out := graph{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}

	for i, n := range nodes {
		nd := node{ID: n.ID, Meta: n.Meta}
		if s, ok := kindToString[n.Kind]; ok {
			nd.Kind = s
		}
		out.Nodes[i] = nd
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e.From, To: e.To, Weight: e.Weight}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a dependency graph to a JSON file at path.
func ExportJSON(g *dag.DAG, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteJSON(g, w) })
}
