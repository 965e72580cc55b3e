package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/casebook"
)

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List the teaching cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		list := casebook.List()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		}

		fmt.Fprintf(out, "%-18s  %-22s  %s\n", "ID", "Name", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, s := range list {
			fmt.Fprintf(out, "%-18s  %-22s  %s\n", s.ID, s.DisplayName, s.ShortDescription)
		}
		fmt.Fprintf(out, "\n%d cases\n", len(list))
		return nil
	},
}

func init() {
	casesCmd.Flags().Bool("json", false, "Print as JSON")
}
