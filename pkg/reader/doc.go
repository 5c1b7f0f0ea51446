// Package reader parses Spectre netlists into circuits.
//
// The accepted subset covers instances, subcircuit definitions with
// parameters, and simulator directives:
//
//	// inverter
//	subckt inv in out
//	parameters wn=1u
//	M0 (out in 0) nmos w=wn
//	ends inv
//	X1 (a b) inv wn=2u
//	tran stop=100n
//
// Instance labels such as "M12" are split into a type prefix and a UID so
// that writing the circuit back reproduces them. Plain numbers become int
// or float64 parameter values; numbers with a scale suffix ("100n") stay
// strings.
//
// Syntax errors carry the codes UNEXPECTED_EOF, UNEXPECTED_TOKEN or
// UNEXPECTED_CHARACTER and the position of the offending input.
package reader
