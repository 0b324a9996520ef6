package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain PATTERN",
		Short: "Show how a pattern is compiled",
		Long: `Prints the canonical form of PATTERN, with "+" expanded and
metacharacters escaped, followed by its token tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.compile(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "canonical: %s\n", p.Canonical())
			return p.Explain(w)
		},
	}
}
