package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func lexiconCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect the custom lexicon",
	}

	c.AddCommand(lexiconGetCmd(a))
	c.AddCommand(lexiconDumpCmd(a))
	c.AddCommand(lexiconStatsCmd(a))
	return c
}

func lexiconGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <word>",
		Short: "Print the tags stored for a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			tags := a.lexicon().Get(args[0], nil)
			if len(tags) == 0 {
				fmt.Fprintf(c.OutOrStdout(), "%s: (not in lexicon)\n", args[0])
				return nil
			}
			fmt.Fprintf(c.OutOrStdout(), "%s %s\n", args[0], strings.Join(tags, " "))
			return nil
		},
	}
}

func lexiconDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every entry, sorted by word",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			_, err := a.lexicon().WriteTo(c.OutOrStdout())
			return err
		},
	}
}

func lexiconStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the custom lexicon",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			lex := a.lexicon()
			if lex.Path() == "" {
				fmt.Fprintf(c.OutOrStdout(), "(no %s found)\n", a.cfg.Lexicon.Filename)
				return nil
			}

			s := lex.Stats()
			out := c.OutOrStdout()
			fmt.Fprintf(out, "File:          %s\n", lex.Path())
			fmt.Fprintf(out, "Entries:       %d\n", s.Entries)
			fmt.Fprintf(out, "Distinct tags: %d\n", s.DistinctTags)
			fmt.Fprintf(out, "Mean tags:     %.2f\n", s.MeanTags)
			fmt.Fprintf(out, "Max tags:      %d\n", s.MaxTags)
			fmt.Fprintf(out, "Ambiguous:     %d\n", s.Ambiguous)
			fmt.Fprintf(out, "Stop words:    %d\n", s.StopWords)
			return nil
		},
	}
}
