package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/locktower/pkg/errors"
	"github.com/matzehuels/locktower/pkg/lockfile"
	"github.com/matzehuels/locktower/pkg/lockfile/graph"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphCommand creates the graph command for exporting the full dependency
// graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		file     string
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph as DOT or SVG",
		Long: `Export the lockfile's complete dependency graph.

The default output is Graphviz DOT source on stdout, suitable for piping
into external tools. With --format svg the graph is rendered in-process.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return errors.New(errors.ErrCodeInvalidInput,
					"invalid format %q: use dot or svg", format)
			}

			lf, err := lockfile.Load(file)
			if err != nil {
				return err
			}
			g, err := graph.Build(lf)
			if err != nil {
				return err
			}
			c.Logger.Debugf("built dependency graph: %d nodes", g.Len())

			dot := graph.ToDOT(g, graph.DOTOptions{Detailed: detailed})
			data := []byte(dot)
			if format == formatSVG {
				if data, err = graph.RenderSVG(dot); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "SVG rendering failed")
				}
			}

			if output == "" || output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeIOFailure, err, "failed to write %s", output)
			}
			c.Logger.Infof("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultLockfile, "input lockfile")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", formatDOT, "output format: dot or svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include source locators in node labels")

	return cmd
}
