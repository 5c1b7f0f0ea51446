// Package io reads and writes circuits and dependency graphs as JSON files.
//
// # Circuits
//
// [WriteCircuit] and [ReadCircuit] stream the JSON form of a
// [netlist.Circuit]; [ExportCircuit] and [ImportCircuit] do the same for a
// file path. The format is the one of [netlist.Circuit.ToJSON], indented:
//
//	{
//	  "instances": [
//	    {"name": "res", "ports": ["in", "out"], "params": {"r": 1000}, ...},
//	    {"raw": "global 0", "name": null, "params": null}
//	  ],
//	  "subckts": []
//	}
//
// Integers and floating point values keep their kinds across a round trip.
//
// # Dependency Graphs
//
// [WriteJSON] and [ReadJSON] handle the dependency graph returned by
// [netlist.Circuit.Graph]:
//
//	{
//	  "nodes": [
//	    {"id": "<circuit>", "kind": "synthetic", "meta": {"kind": "root"}},
//	    {"id": "inv", "meta": {"kind": "subckt", "ports": 4}}
//	  ],
//	  "edges": [
//	    {"from": "<circuit>", "to": "inv", "weight": 3}
//	  ]
//	}
//
// [ReadJSON] rejects graphs with cycles, duplicate node IDs or unknown edge
// endpoints. Errors are wrapped with context about which node or edge caused
// the problem.
//
// # Concurrency
//
// All functions in this package are safe to call concurrently with other
// readers of the same value, but not with concurrent modifications.
//
// [netlist.Circuit]: github.com/matzehuels/netweave/pkg/netlist.Circuit
// [netlist.Circuit.ToJSON]: github.com/matzehuels/netweave/pkg/netlist.Circuit.ToJSON
// [netlist.Circuit.Graph]: github.com/matzehuels/netweave/pkg/netlist.Circuit.Graph
package io
