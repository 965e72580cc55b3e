package imagery

import "strings"

// FallbackKey is returned by NormalizeCaseKey when no fragment matches.
const FallbackKey = "gasbubbles"

// nameFragments are checked in order against the lowercased display name.
var nameFragments = []struct {
	fragment string
	key      string
}{
	{"gas bubbles", "gasbubbles"},
	{"trauma", "trauma"},
	{"normal brain", "normalbrain"},
}

// NormalizeCaseKey maps a free-form case display name to an image-set key by
// substring match. The first matching fragment wins; names matching nothing
// fall back to FallbackKey.
//
// Cases carry an explicit image-set key; this heuristic only exists to audit
// authored content against legacy display-name lookups.
func NormalizeCaseKey(displayName string) string {
	name := strings.ToLower(displayName)
	for _, f := range nameFragments {
		if strings.Contains(name, f.fragment) {
			return f.key
		}
	}
	return FallbackKey
}
