package cli

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netweave/pkg/netlist"
)

func (c *CLI) countCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "count <netlist|circuit.json>",
		Short: "Count instances through the subcircuit hierarchy",
		Long: `Print how many times every component and subcircuit is instantiated once
the hierarchy is flattened. A subcircuit used N times whose body uses a
component M times contributes N×M to that component.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			circuit, err := readCircuit(args[0])
			if err != nil {
				return err
			}
			counts, err := circuit.CountInstances()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(counts)
			}
			if len(counts) == 0 {
				printInfo(cmd.ErrOrStderr(), "No instances")
				return nil
			}
			fmt.Fprintln(out, countsTable([2]string{"Name", "Count"}, byCount(counts), counts))
			printDetail(cmd.ErrOrStderr(), "%d definitions · %d subcircuits", len(counts), len(circuit.Subckts()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print counts as JSON")
	return cmd
}

// byCount orders names by descending count, then by name.
func byCount(counts map[string]int) []string {
	return slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// circuitSummary describes a circuit in one line for status output.
func circuitSummary(c *netlist.Circuit) string {
	return fmt.Sprintf("%d instances · %d subcircuits · %d directives",
		len(c.Instances()), len(c.Subckts()), len(c.Directives()))
}
