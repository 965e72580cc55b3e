package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/imagery"
)

var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check [case.yaml...]",
	Short: "Validate case documents and audit the built-in cases",
	Long: `With file arguments, validate each YAML case document against the case
schema. Without arguments, audit the built-in cases: every image set must
exist, every default view must resolve, and each display name must map to
its image set under the legacy name lookup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		var problems int
		if len(args) > 0 {
			problems = checkFiles(cmd, args)
		} else {
			problems = auditBuiltin(cmd)
		}
		if problems > 0 {
			return fmt.Errorf("%w: %d problem(s)", errCheckFailed, problems)
		}
		fmt.Fprintln(out, "ok")
		return nil
	},
}

func checkFiles(cmd *cobra.Command, paths []string) int {
	out := cmd.OutOrStdout()
	problems := 0
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", p, err)
			problems++
			continue
		}
		cs, err := casebook.ParseCase(data)
		if err != nil {
			fmt.Fprintf(out, "✗ %s: %v\n", p, err)
			problems++
			continue
		}
		if _, ok := imagery.Get(cs.ImageSet); !ok {
			fmt.Fprintf(out, "! %s: unknown image set %q\n", p, cs.ImageSet)
		}
		fmt.Fprintf(out, "✓ %s (%s)\n", p, cs.ID)
	}
	return problems
}

func auditBuiltin(cmd *cobra.Command) int {
	out := cmd.OutOrStdout()
	problems := 0
	for _, cs := range casebook.All() {
		var issues []string
		note := ""
		if _, ok := imagery.Get(cs.ImageSet); !ok {
			issues = append(issues, fmt.Sprintf("unknown image set %q", cs.ImageSet))
		} else if !imagery.HasImages(cs.ImageSet) {
			note = " (no images)"
		} else {
			m, v := imagery.Defaults(cs.ImageSet)
			if imagery.ImagePath(cs.ImageSet, m, v) == "" {
				issues = append(issues, fmt.Sprintf("default view %s/%s has no image", m, v))
			}
		}
		if key := imagery.NormalizeCaseKey(cs.DisplayName); key != cs.ImageSet {
			issues = append(issues, fmt.Sprintf("display name maps to %q, image set is %q", key, cs.ImageSet))
		}

		if len(issues) == 0 {
			fmt.Fprintf(out, "✓ %s%s\n", cs.ID, note)
			continue
		}
		for _, is := range issues {
			fmt.Fprintf(out, "✗ %s: %s\n", cs.ID, is)
		}
		problems += len(issues)
	}
	return problems
}
