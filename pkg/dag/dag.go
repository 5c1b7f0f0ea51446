package dag

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the same
	// ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidWeight is returned by [DAG.AddEdge] when the edge weight is
	// negative.
	ErrInvalidWeight = errors.New("edge weight must not be negative")

	// ErrInvalidEdgeEndpoint is returned by [DAG.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [DAG.Validate] and [DAG.TopoSort] when a
	// cycle is detected. Cycles are detected using depth-first search with
	// white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// graph. Metadata maps are never nil - they are automatically initialized to
// empty maps when needed.
type Metadata map[string]any

// NodeKind distinguishes between original and synthetic nodes.
type NodeKind int

const (
	// NodeKindRegular represents a node that stands for a real entity.
	NodeKindRegular NodeKind = iota
	// NodeKindSynthetic represents a helper node added by the graph builder,
	// such as an entry point that ties together top-level uses.
	NodeKindSynthetic
)

// Node represents a vertex in the graph.
//
// The zero value is not usable - ID must be set before adding to a DAG.
type Node struct {
	ID   string   // Unique identifier (also used as display label)
	Kind NodeKind // Original or synthetic
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// IsSynthetic reports whether the node was added by a graph builder rather
// than standing for a real entity.
func (n Node) IsSynthetic() bool { return n.Kind == NodeKindSynthetic }

// Edge represents a weighted directed connection between two nodes.
// Weight counts how many times From uses To; zero is allowed.
type Edge struct {
	From   string   // Source node ID
	To     string   // Target node ID
	Weight int      // Multiplicity of the relationship
	Meta   Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// DAG is a weighted directed graph that is expected to be acyclic.
// Cycles can be built with [DAG.AddEdge] and are reported by [DAG.Validate],
// [DAG.FindCycle] and [DAG.TopoSort].
//
// Nodes and edges keep their insertion order, so every traversal is
// deterministic.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string // nodeID -> children IDs
	incoming map[string][]string // nodeID -> parent IDs
	meta     Metadata
}

// New creates an empty DAG with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *DAG {
	if meta == nil {
		meta = Metadata{}
	}
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
// The returned map is never nil and can be safely modified.
func (d *DAG) Meta() Metadata { return d.meta }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Meta field is
// automatically initialized to an empty map if nil.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	d.nodes[node.ID] = node
	d.order = append(d.order, node.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist,
// ErrUnknownTargetNode if the To node doesn't exist, or ErrInvalidWeight
// for a negative weight. The edge's Meta field is automatically initialized
// to an empty map if nil.
//
// AddEdge does not reject cycles - use Validate after building the graph.
// Multiple edges between the same nodes are allowed; [DAG.Weight] sums them.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Weight < 0 {
		return ErrInvalidWeight
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	d.edges = append(d.edges, e)
	if !slices.Contains(d.outgoing[e.From], e.To) {
		d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
		d.incoming[e.To] = append(d.incoming[e.To], e.From)
	}
	return nil
}

// Nodes returns all nodes in the graph in insertion order.
// The returned slice contains pointers to the actual node structs, so
// modifications affect the graph.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.order))
	for _, id := range d.order {
		nodes = append(nodes, d.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in the graph.
// The order matches insertion order. Modifications to the returned
// slice or its edge structs do not affect the graph.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Children returns the IDs of nodes that this node has edges to.
// Returns nil if the node has no children or doesn't exist. The returned slice
// should not be modified - use it as a read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// Returns nil if the node has no parents or doesn't exist. The returned slice
// should not be modified - use it as a read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// OutDegree returns the number of distinct children of the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// InDegree returns the number of distinct parents of the node.
// Returns 0 if the node doesn't exist.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// Weight returns the summed weight of all edges from→to, or 0 when there is
// no such edge.
func (d *DAG) Weight(from, to string) int {
	total := 0
	for _, e := range d.edges {
		if e.From == from && e.To == to {
			total += e.Weight
		}
	}
	return total
}

// Node returns the node with the given ID and true, or nil and false if not found.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Sources returns nodes with no incoming edges, in insertion order.
// Returns nil for an empty graph.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges, in insertion order.
// Returns nil for an empty graph.
func (d *DAG) Sinks() []*Node {
	var sinks []*Node
	for _, id := range d.order {
		if len(d.outgoing[id]) == 0 {
			sinks = append(sinks, d.nodes[id])
		}
	}
	return sinks
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that all edges connect existing nodes and that the graph is
// acyclic. Returns ErrInvalidEdgeEndpoint or ErrGraphHasCycle.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (d *DAG) Validate() error {
	for _, e := range d.edges {
		_, okS := d.nodes[e.From]
		_, okD := d.nodes[e.To]
		if !okS || !okD {
			return ErrInvalidEdgeEndpoint
		}
	}
	if d.FindCycle() != nil {
		return ErrGraphHasCycle
	}
	return nil
}

// FindCycle returns the node IDs along the first directed cycle found, with
// the starting node repeated at the end (e.g. [a b a]). Returns nil when the
// graph is acyclic.
func (d *DAG) FindCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(d.nodes))
	var stack []string
	var cycle []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(stack, child)
				cycle = append(slices.Clone(stack[start:]), child)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range d.order {
		if color[id] == white && dfs(id) {
			return cycle
		}
	}
	return nil
}

// TopoSort returns all node IDs ordered so that every node precedes its
// children. Ties are broken by insertion order. Returns ErrGraphHasCycle if
// the graph contains a cycle.
func (d *DAG) TopoSort() ([]string, error) {
	if d.FindCycle() != nil {
		return nil, ErrGraphHasCycle
	}

	visited := make(map[string]bool, len(d.nodes))
	post := make([]string, 0, len(d.nodes))

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		for _, child := range d.outgoing[id] {
			if !visited[child] {
				dfs(child)
			}
		}
		post = append(post, id)
	}

	for _, id := range d.order {
		if !visited[id] {
			dfs(id)
		}
	}
	slices.Reverse(post)
	return post, nil
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
