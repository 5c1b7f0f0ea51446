// Package nodelink renders circuit dependency graphs as node-link diagrams.
//
// # Usage
//
// Build the graph from a circuit, convert it to DOT, then render to SVG:
//
//	g, err := c.Graph()
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The generated DOT uses a top-to-bottom layout with the circuit root at the
// top. Subcircuit definitions are rounded boxes, leaf components ellipses.
// An edge carries a "×N" label when the parent uses the child N > 1 times.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
