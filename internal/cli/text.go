package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/texta"
)

type textOp func(f *texta.Facade, ctx context.Context, text string) (string, error)

func textCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		textCmd(a, "tag", "Tokenize and POS tag text, one sentence per line", (*texta.Facade).TagText),
		textCmd(a, "chunk", "Chunk text into AX/NX/VX groups, one sentence per line", (*texta.Facade).ChunkText),
		textCmd(a, "lemmatise", "Lemmatise text, one sentence per line", (*texta.Facade).LemmatiseText),
		textCmd(a, "jist", "Extract predicate-argument structures", (*texta.Facade).JistPredicates),
	}
}

func textCmd(a *app, use, short string, op textOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [file]",
		Short: short + " (reads stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			text, err := readInput(c.InOrStdin(), args)
			if err != nil {
				return err
			}

			f, err := a.facade()
			if err != nil {
				return err
			}

			out, err := op(f, c.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), out)
			return nil
		},
	}
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}
