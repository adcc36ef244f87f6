package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/locktower/pkg/errors"
	"github.com/matzehuels/locktower/pkg/lockfile"
	"github.com/matzehuels/locktower/pkg/lockfile/graph"
)

// treeCommand creates the tree command for printing dependency trees.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		file      string
		direction string
	)

	cmd := &cobra.Command{
		Use:   "tree <package>...",
		Short: "Print dependency or dependent trees for packages",
		Long: `Print an indented tree for each named package.

The default direction is incoming: the tree shows what depends on the
package, which is the usual question when auditing a lockfile. Use
--direction outgoing to show what the package depends on instead.

Packages already printed on the current path are annotated with (*) and
not descended into, which keeps cyclic dev-dependency chains finite.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(direction)
			if err != nil {
				return err
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

			out := cmd.OutOrStdout()
			printed := 0
			for _, name := range args {
				pkgs := lf.PackagesNamed(name)
				if len(pkgs) == 0 {
					return errors.New(errors.ErrCodePackageNotFound,
						"package %q is not in the lockfile", name)
				}
				for _, pkg := range pkgs {
					if printed > 0 {
						fmt.Fprintln(out)
					}
					printed++

					idx, ok := g.Lookup(pkg.Identity())
					if !ok {
						return errors.New(errors.ErrCodeInternal,
							"package %s missing from graph", pkg.Identity())
					}
					if err := g.Render(out, idx, dir); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultLockfile, "input lockfile")
	cmd.Flags().StringVarP(&direction, "direction", "d", "incoming",
		"edge direction: incoming (what depends on it) or outgoing (what it depends on)")

	return cmd
}

// parseDirection maps the flag value to a graph direction. Short forms are
// accepted.
func parseDirection(s string) (graph.Direction, error) {
	switch s {
	case "incoming", "in", "dependents":
		return graph.Incoming, nil
	case "outgoing", "out", "dependencies":
		return graph.Outgoing, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"invalid direction %q: use incoming or outgoing", s)
	}
}
