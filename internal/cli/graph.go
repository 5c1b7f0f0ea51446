package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netweave/pkg/cache"
	"github.com/matzehuels/netweave/pkg/dag"
	pkgio "github.com/matzehuels/netweave/pkg/io"
	"github.com/matzehuels/netweave/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

type graphOpts struct {
	format    string
	detailed  bool
	fromGraph bool
	noCache   bool
	output    string
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph <netlist|circuit.json|graph.json>",
		Short: "Draw the subcircuit hierarchy",
		Long: `Draw the dependency graph of a circuit: the circuit root, its subcircuits
and the components they use, with edges labelled by use count.

DOT output is written directly. SVG output is laid out with Graphviz and
cached by DOT content.

Examples:
  netweave graph inverter.scs
  netweave graph inverter.scs -f svg --detailed -o inverter.svg
  netweave parse inverter.scs --graph -o g.json && netweave graph --from-graph g.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node kind and port count")
	cmd.Flags().BoolVar(&opts.fromGraph, "from-graph", false, "input is a graph JSON file written by 'parse --graph'")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without the artifact cache")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, path string, opts graphOpts) error {
	ctx := cmd.Context()
	format := strings.ToLower(opts.format)
	if format != formatDOT && format != formatSVG {
		return errUsage("unknown format %q (available: dot, svg)", opts.format)
	}

	g, err := loadGraph(path, opts.fromGraph)
	if err != nil {
		return err
	}
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})
	c.Logger.Debug("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	if format == formatDOT {
		return writeOutput(cmd, opts.output, []byte(dot))
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	artifacts, err := c.newCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer artifacts.Close()

	key := newKeyer().ArtifactKey(cache.Hash([]byte(dot)), cache.ArtifactKeyOpts{Format: formatSVG})
	spin := newSpinner(ctx, cmd.ErrOrStderr(), "Rendering SVG...")
	spin.Start()
	svg, hit, err := cache.Fetch(ctx, artifacts, key, cfg.Cache.TTL, func() ([]byte, error) {
		return nodelink.RenderSVG(ctx, dot)
	})
	spin.Stop()
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, opts.output, svg); err != nil {
		return err
	}
	printCacheStatus(cmd.ErrOrStderr(), formatSVG, hit)
	return nil
}

func loadGraph(path string, fromGraph bool) (*dag.DAG, error) {
	if fromGraph {
		return pkgio.ImportJSON(path)
	}
	circuit, err := readCircuit(path)
	if err != nil {
		return nil, err
	}
	return circuit.Graph()
}
