// Package writer turns circuits into simulator netlist text.
//
// A [Writer] wraps a dialect. A dialect is any value implementing a subset of
// [InstanceFormatter], [SubcktFormatter], [DirectiveFormatter] and
// [NetFormatter]; kinds it does not handle fall back to their String method.
// An instance carrying its own [netlist.Instance.Formatter] is always
// rendered by it.
//
// Writing never mutates the circuit. Instances without a UID get one at
// export time, numbered sequentially per type prefix and skipping the UIDs
// already taken in the same scope:
//
//	w := writer.New(writer.Spectre{})
//	fmt.Print(w.Writes(c))
//
// Output is ordered as directives, subcircuit definitions, then top-level
// instances.
package writer
