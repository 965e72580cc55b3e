package casebook

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultID is the case used when a lookup misses.
const DefaultID = "gas-bubbles-swi"

// ErrNotFound is returned when a case id is not in the registry.
var ErrNotFound = errors.New("case not found")

// registry holds the curated cases with a precomputed id index.
type registry struct {
	cases []Case
	byID  map[string]int
}

// reg is the package-level registry, set by init() in seed.go.
var reg *registry

// buildRegistry indexes cases by id. Duplicate ids are rejected.
func buildRegistry(cases []Case) (*registry, error) {
	r := &registry{
		cases: cases,
		byID:  make(map[string]int, len(cases)),
	}
	for i, c := range cases {
		if c.ID == "" {
			return nil, fmt.Errorf("case %d has no id", i)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate case id %q", c.ID)
		}
		r.byID[c.ID] = i
	}
	return r, nil
}

// Get returns the case with the exact id. Display names are not keys.
func Get(id string) (Case, error) {
	i, ok := reg.byID[id]
	if !ok {
		return Case{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return reg.cases[i], nil
}

// GetOrDefault returns the case for id, falling back to the default case.
// The bool reports whether id itself was found.
func GetOrDefault(id string) (Case, bool) {
	if c, err := Get(id); err == nil {
		return c, true
	}
	return Default(), false
}

// Default returns the fallback case.
func Default() Case {
	if i, ok := reg.byID[DefaultID]; ok {
		return reg.cases[i]
	}
	return reg.cases[0]
}

// Exists reports whether id is a registered case id.
func Exists(id string) bool {
	_, ok := reg.byID[id]
	return ok
}

// List returns selector entries for all cases in registry order.
func List() []Summary {
	out := make([]Summary, 0, len(reg.cases))
	for _, c := range reg.cases {
		out = append(out, c.Summary())
	}
	return out
}

// IDs returns all case ids in registry order.
func IDs() []string {
	out := make([]string, 0, len(reg.cases))
	for _, c := range reg.cases {
		out = append(out, c.ID)
	}
	return out
}

// All returns every case in registry order.
func All() []Case {
	return slices.Clone(reg.cases)
}

// FirstOtherThan returns the first case in registry order whose id differs
// from id. The bool is false when the registry holds only that case.
func FirstOtherThan(id string) (Case, bool) {
	for _, c := range reg.cases {
		if c.ID != id {
			return c, true
		}
	}
	return Case{}, false
}
