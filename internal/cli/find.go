package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func findCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "find <filename>",
		Short: "Locate a file in the working directory, $TextA or $PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			finder := a.finder()

			if verbose {
				for _, dir := range finder.SearchPath() {
					fmt.Fprintf(c.ErrOrStderr(), "search: %s\n", dir)
				}
			}

			path := finder.Find(args[0])
			if path == "" {
				return fmt.Errorf("%s: not found", args[0])
			}
			fmt.Fprintln(c.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the search path to stderr")
	return cmd
}
