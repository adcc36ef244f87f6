package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/locktower/pkg/lockfile"
)

// listCommand creates the list command for printing the resolved packages.
func (c *CLI) listCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages in the lockfile",
		Long: `List the resolved packages in document order, one per line,
formatted as "name version" with the source locator appended when present.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lf, err := lockfile.Load(file)
			if err != nil {
				return err
			}
			c.Logger.Debugf("loaded %s: %d packages, resolve version %s", file, len(lf.Packages), lf.Version)

			out := cmd.OutOrStdout()
			for i := range lf.Packages {
				fmt.Fprintln(out, formatPackage(&lf.Packages[i]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultLockfile, "input lockfile")

	return cmd
}
