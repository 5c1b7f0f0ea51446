package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/netweave/pkg/io"
)

func (c *CLI) parseCommand() *cobra.Command {
	var output string
	var graph bool

	cmd := &cobra.Command{
		Use:   "parse <netlist>",
		Short: "Convert a netlist to circuit JSON",
		Long: `Parse a Spectre netlist and write the circuit as JSON. With --graph the
subcircuit dependency graph is written instead.

Examples:
  netweave parse inverter.scs -o inverter.json
  netweave parse inverter.scs --graph`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			circuit, err := readCircuit(args[0])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if graph {
				g, err := circuit.Graph()
				if err != nil {
					return err
				}
				if err := pkgio.WriteJSON(g, &buf); err != nil {
					return err
				}
				c.Logger.Debug("parsed graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())
			} else if err := pkgio.WriteCircuit(circuit, &buf); err != nil {
				return err
			}
			if err := writeOutput(cmd, output, buf.Bytes()); err != nil {
				return err
			}
			printSuccess(cmd.ErrOrStderr(), "Parsed %s", args[0])
			printDetail(cmd.ErrOrStderr(), "%s", circuitSummary(circuit))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&graph, "graph", false, "write the dependency graph instead of the circuit")
	return cmd
}
