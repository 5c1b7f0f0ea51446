package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/netweave/pkg/writer"
)

func (c *CLI) formatCommand() *cobra.Command {
	var dialect, output string

	cmd := &cobra.Command{
		Use:   "format <netlist|circuit.json>",
		Short: "Write a circuit as a Spectre or SPICE netlist",
		Long: `Read a Spectre netlist or circuit JSON and write it in the chosen dialect.

Instances without an explicit label number are numbered per type prefix,
skipping numbers already taken.

Examples:
  netweave format inverter.scs --dialect spice
  netweave format circuit.json -o circuit.scs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dialect == "" {
				cfg, err := c.loadConfig(cmd.Context())
				if err != nil {
					return err
				}
				dialect = cfg.Dialect
			}
			w, err := writer.ForDialect(dialect)
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			circuit, err := readCircuit(args[0])
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, []byte(w.Writes(circuit))); err != nil {
				return err
			}
			prog.done("Wrote " + dialect + " netlist")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dialect, "dialect", "d", "", "output dialect: spectre or spice (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
