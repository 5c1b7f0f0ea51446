package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netweave/pkg/models"
	"github.com/matzehuels/netweave/pkg/writer"
)

func (c *CLI) modelsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "models <library.toml> [model...]",
		Short: "Resolve models from a TOML model library",
		Long: `Load a model library, check that every inheritance chain resolves, and
print the effective parameters of the named models (all models when none
are named).

With -o the library is written back in normalized form: models sorted by
name, removed parameters listed under unset.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := models.Load(args[0])
			if err != nil {
				return err
			}
			if output != "" {
				if err := models.Save(lib, output); err != nil {
					return err
				}
				printFile(cmd.ErrOrStderr(), output)
				return nil
			}

			names := args[1:]
			if len(names) == 0 {
				names = lib.Names()
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				m, err := lib.Model(name)
				if err != nil {
					return err
				}
				params, err := lib.Resolve(name)
				if err != nil {
					return err
				}
				head := StyleTitle.Render(name)
				if m.Base != "" {
					head += StyleDim.Render(" < " + m.Base)
				}
				fmt.Fprintln(out, head)
				if line := strings.Join(writer.Params(params), " "); line != "" {
					fmt.Fprintln(out, "  "+line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the normalized library to this file")
	return cmd
}
