package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/markup"
	"github.com/abhisek/radstar/internal/viewer"
)

var showCmd = &cobra.Command{
	Use:   "show <case-id>",
	Short: "Print a case's patient context and framework text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		nodeVal, _ := cmd.Flags().GetString("node")
		depthVal, _ := cmd.Flags().GetString("depth")

		cs, err := casebook.Get(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q (try: radstar cases)", err, args[0])
		}

		depth := casebook.DepthClinicalApplication
		if depthVal != "" {
			d, ok := casebook.ParseDepth(depthVal)
			if !ok {
				return fmt.Errorf("invalid depth %q: must be focused, clinical-application or comprehensive", depthVal)
			}
			depth = d
		}

		var lenses []casebook.Lens
		switch nodeVal {
		case "", "all":
			lenses = casebook.AllLenses()
		default:
			n, ok := casebook.ParseNode(nodeVal)
			if !ok {
				return fmt.Errorf("invalid node %q: must be technical, clinical, anatomical or central", nodeVal)
			}
			if l, ok := n.Lens(); ok {
				lenses = []casebook.Lens{l}
			}
		}

		ctl := viewer.New(cs.ID)
		ctl.SetKnowledgeDepth(depth)

		fmt.Fprintf(out, "%s  (%s)\n", cs.DisplayName, cs.ID)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		printPatient(out, cs)

		for _, l := range lenses {
			c, ok := ctl.ContentFor(cs.ID, l)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "\n%s · %s\n", strings.ToUpper(l.Label()), c.DepthLabel)
			fmt.Fprintf(out, "%s\n", c.PrimaryConcept)
			if c.DiscoveryInsight != "" {
				fmt.Fprintf(out, "-> %s\n", c.DiscoveryInsight)
			}
			fmt.Fprintf(out, "\n%s\n", markup.Strip(c.Body))
		}
		return nil
	},
}

func printPatient(out io.Writer, cs casebook.Case) {
	p := cs.Patient
	fmt.Fprintf(out, "%-13s %s\n", "Patient", p.Patient)
	fmt.Fprintf(out, "%-13s %s\n", "Presentation", p.Presentation)
	fmt.Fprintf(out, "%-13s %s\n", "Finding", p.Finding)
	if p.Note != "" {
		fmt.Fprintf(out, "%-13s %s\n", "Note", markup.Strip(p.Note))
	}
}

func init() {
	showCmd.Flags().StringP("node", "n", "", "Node to print: technical, clinical, anatomical, central (default all)")
	showCmd.Flags().StringP("depth", "d", "", "Knowledge depth: focused, clinical-application, comprehensive")
}
