package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/imagery"
)

var imagesCmd = &cobra.Command{
	Use:   "images <case-id>",
	Short: "List a case's modalities, views and image references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cs, err := casebook.Get(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q (try: radstar cases)", err, args[0])
		}

		defModality, defView := imagery.Defaults(cs.ImageSet)
		fmt.Fprintf(out, "%s  (image set %s)\n\n", cs.DisplayName, cs.ImageSet)
		fmt.Fprintf(out, "   %-12s  %-24s  %s\n", "Modality", "View", "Reference")
		fmt.Fprintln(out, strings.Repeat("─", 96))

		for _, m := range imagery.Modalities(cs.ImageSet) {
			for _, v := range imagery.Views(cs.ImageSet, m) {
				mark := "  "
				if m == defModality && v == defView {
					mark = "* "
				}
				ref := imagery.ImagePath(cs.ImageSet, m, v)
				if ref == "" {
					ref = "(not available)"
				}
				fmt.Fprintf(out, " %s%-12s  %-24s  %s\n", mark, m, v, ref)
			}
		}
		fmt.Fprintln(out, "\n* default view")
		return nil
	},
}
