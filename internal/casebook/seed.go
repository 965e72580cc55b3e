package casebook

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed cases/*.yaml
var caseFiles embed.FS

// caseOrder fixes the selector order; files not listed sort after these by name.
var caseOrder = []string{"gas-bubbles-swi", "trauma-gas", "normal-brain"}

func init() {
	cases, err := loadCases(caseFiles)
	if err != nil {
		panic(fmt.Sprintf("casebook: %v", err))
	}
	r, err := buildRegistry(cases)
	if err != nil {
		panic(fmt.Sprintf("casebook: %v", err))
	}
	reg = r
}

// loadCases reads every cases/*.yaml file, validates it against the case
// schema and decodes it.
func loadCases(fsys fs.FS) ([]Case, error) {
	names, err := fs.Glob(fsys, "cases/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("list case files: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no case files embedded")
	}

	cases := make([]Case, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		c, err := ParseCase(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		cases = append(cases, c)
	}

	sortCases(cases)
	return cases, nil
}

// ParseCase validates raw case YAML and decodes it into a Case.
func ParseCase(data []byte) (Case, error) {
	if err := ValidateDocument(data); err != nil {
		return Case{}, err
	}
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Case{}, fmt.Errorf("decode case: %w", err)
	}
	return c, nil
}

func sortCases(cases []Case) {
	rank := make(map[string]int, len(caseOrder))
	for i, id := range caseOrder {
		rank[id] = i
	}
	sort.SliceStable(cases, func(i, j int) bool {
		ri, iok := rank[cases[i].ID]
		rj, jok := rank[cases[j].ID]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		}
		return cases[i].ID < cases[j].ID
	})
}
