// Command tablecat prints one page of a CSV file as a table, searched and
// sorted the same way the console renders its tables.
//
// Usage:
//
//	tablecat orders.csv --search acme --sort amount --desc --page 2
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type options struct {
	search  string
	sortKey string
	desc    bool
	page    int
	perPage int
	plain   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "tablecat <file.csv>",
		Short: "Print a page of a CSV file as a table",
		Long: `Reads a CSV file, applies search, sort and pagination, and prints
the resulting page followed by the page window.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(cmd.OutOrStdout(), args[0], opts); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "tablecat:", err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.search, "search", "s", "", "case-insensitive search across all columns")
	flags.StringVar(&opts.sortKey, "sort", "", "column to sort by (header or key)")
	flags.BoolVar(&opts.desc, "desc", false, "sort descending")
	flags.IntVarP(&opts.page, "page", "p", 1, "page to print")
	flags.IntVarP(&opts.perPage, "per-page", "n", 10, "rows per page")
	flags.BoolVar(&opts.plain, "plain", false, "print without borders")

	return cmd
}
