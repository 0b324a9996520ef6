package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTestCmd(a *app) *cobra.Command {
	var fold bool

	cmd := &cobra.Command{
		Use:   "test PATTERN INPUT...",
		Short: "Report whether the pattern matches each input in full",
		Long: `Prints one line per INPUT: the verdict, how many characters the pattern
consumed before it stopped, and the input itself.

Examples:
  gorex test 'ab+c' abc abbbc ac
  gorex test -i '@greeting' 'Hello World'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.compile(args[0])
			if err != nil {
				return err
			}

			all := true
			for _, s := range args[1:] {
				match := p.MatchPrefix
				if fold {
					match = p.MatchPrefixFold
				}
				n, full := match(s)
				all = all && full
				fmt.Fprintf(cmd.OutOrStdout(), "%-5t %d\t%q\n", full, n, s)
			}
			if !all {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&fold, "ignore-case", "i", false, "compare letters case-insensitively")
	return cmd
}
