package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomicstack/pagekit/internal/countries"
	"github.com/atomicstack/pagekit/internal/format/table"
)

func newCountriesCmd() *cobra.Command {
	var (
		search  string
		best    bool
		columns int
	)
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "Print the nationality list, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := countries.Names()
			out := cmd.OutOrStdout()
			if best {
				idx := countries.Best(list, search)
				if idx < 0 {
					return fmt.Errorf("no country matches %q", search)
				}
				fmt.Fprintln(out, list[idx])
				return nil
			}
			for _, line := range table.Format(table.Grid(countries.Search(list, search), columns), nil) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "fuzzy filter applied to the list")
	cmd.Flags().BoolVar(&best, "best", false, "print only the closest match for --search")
	cmd.Flags().IntVarP(&columns, "columns", "c", 1, "lay the list out in this many columns")
	return cmd
}
