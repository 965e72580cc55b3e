package viewer

import (
	"strings"

	"github.com/abhisek/radstar/internal/casebook"
)

// ComparisonMode selects how many images the viewer shows and where the
// second one comes from.
type ComparisonMode int

const (
	ComparisonSingle   ComparisonMode = iota // One image
	ComparisonSequence                       // Two views of the same case
	ComparisonCase                           // Same framework across two cases
)

func (m ComparisonMode) String() string {
	switch m {
	case ComparisonSequence:
		return "sequence"
	case ComparisonCase:
		return "case"
	default:
		return "single"
	}
}

// Label returns the human-readable mode name.
func (m ComparisonMode) Label() string {
	switch m {
	case ComparisonSequence:
		return "Sequence Comparison"
	case ComparisonCase:
		return "Case Comparison"
	default:
		return "Single View"
	}
}

// Valid reports whether m is a defined mode.
func (m ComparisonMode) Valid() bool {
	return m >= ComparisonSingle && m <= ComparisonCase
}

// ParseComparisonMode accepts "single", "sequence"/"sequences" and "case"/"cases".
func ParseComparisonMode(s string) (ComparisonMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ComparisonSingle, true
	case "sequence", "sequences", "sequence-comparison":
		return ComparisonSequence, true
	case "case", "cases", "case-comparison":
		return ComparisonCase, true
	}
	return ComparisonSingle, false
}

// ExplorationMode controls whether the viewer recommends a next node.
type ExplorationMode int

const (
	ModeFree ExplorationMode = iota
	ModeGuided
)

func (m ExplorationMode) String() string {
	if m == ModeGuided {
		return "guided"
	}
	return "free"
}

// SlotID names an image slot of the viewer.
type SlotID int

const (
	SlotPrimary SlotID = iota
	SlotSecondary
)

// Slot is the modality/view selection of one image slot.
type Slot struct {
	CaseID   string
	ImageSet string
	Modality string
	View     string
}

// Progress constants.
const (
	ProgressStep = 20
	MaxProgress  = 100
)

// ViewState is the ephemeral session state of one viewer instance.
type ViewState struct {
	// CaseID is the canonical id of the case on screen.
	CaseID string

	// Node is the selected constellation node, NodeNone when idle.
	Node casebook.Node

	// Depth is the knowledge depth used for framework text.
	Depth casebook.Depth

	// Comparison is the image comparison mode.
	Comparison ComparisonMode

	// ComparisonCaseID is the second case for case comparison; empty until chosen.
	ComparisonCaseID string

	Primary   Slot
	Secondary Slot

	// Progress counts first visits of nodes, in steps of ProgressStep, capped at MaxProgress.
	Progress int

	// Visited is the set of nodes selected at least once since the case was opened.
	Visited map[casebook.Node]bool

	Mode ExplorationMode
}

// Content is the framework text derived from the current state.
type Content struct {
	CaseID           string
	CaseName         string
	Node             casebook.Node
	Lens             casebook.Lens
	Depth            casebook.Depth
	DepthLabel       string
	PrimaryConcept   string
	DiscoveryInsight string
	Body             string
}

// ImageRef is a resolved image slot. An empty Ref means no image is available.
type ImageRef struct {
	CaseID   string
	ImageSet string
	Modality string
	View     string
	Ref      string
}

// Available reports whether the slot resolved to an image.
func (r ImageRef) Available() bool {
	return r.Ref != ""
}

// Images holds the primary image and, in comparison modes, the secondary one.
type Images struct {
	Primary   ImageRef
	Secondary *ImageRef
}
