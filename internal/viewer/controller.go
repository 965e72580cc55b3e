package viewer

import (
	"maps"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/imagery"
)

// Controller owns a ViewState and is the only code that mutates it.
// All operations are synchronous and total: unknown inputs fall back or are
// ignored, they never fail.
type Controller struct {
	state ViewState
}

// New creates a controller showing caseID with default settings.
// Unknown ids open the default case.
func New(caseID string) *Controller {
	c := &Controller{
		state: ViewState{
			Depth:      casebook.DepthClinicalApplication,
			Comparison: ComparisonSingle,
			Mode:       ModeFree,
			Visited:    make(map[casebook.Node]bool),
		},
	}
	c.SelectCase(caseID)
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() ViewState {
	s := c.state
	s.Visited = maps.Clone(c.state.Visited)
	return s
}

// Case returns the record of the current case.
func (c *Controller) Case() casebook.Case {
	cs, _ := casebook.GetOrDefault(c.state.CaseID)
	return cs
}

// ComparisonCase returns the record of the comparison case, if one is chosen.
func (c *Controller) ComparisonCase() (casebook.Case, bool) {
	if c.state.ComparisonCaseID == "" {
		return casebook.Case{}, false
	}
	cs, err := casebook.Get(c.state.ComparisonCaseID)
	if err != nil {
		return casebook.Case{}, false
	}
	return cs, true
}

// SelectCase switches to a case, resetting node selection and progress and
// re-deriving image defaults. Unknown ids open the default case.
func (c *Controller) SelectCase(id string) {
	cs, _ := casebook.GetOrDefault(id)

	c.state.CaseID = cs.ID
	c.state.Node = casebook.NodeNone
	c.state.Progress = 0
	c.state.Visited = make(map[casebook.Node]bool)

	if c.state.ComparisonCaseID == cs.ID {
		c.state.ComparisonCaseID = ""
	}

	c.state.Primary = defaultSlot(cs)
	c.deriveSecondary()
}

// SelectNode toggles the node selection. Selecting the current node clears
// it; selecting another replaces it. The first visit of a node advances
// progress. Returns the resulting selection.
func (c *Controller) SelectNode(n casebook.Node) casebook.Node {
	if n == casebook.NodeNone {
		c.state.Node = casebook.NodeNone
		return c.state.Node
	}
	if n == c.state.Node {
		c.state.Node = casebook.NodeNone
		return c.state.Node
	}
	if n < casebook.NodeCentral || n > casebook.NodeAnatomical {
		return c.state.Node
	}

	c.state.Node = n
	if !c.state.Visited[n] {
		c.state.Visited[n] = true
		c.state.Progress = clampProgress(c.state.Progress + ProgressStep)
	}
	return c.state.Node
}

// ClearNode returns to the idle state.
func (c *Controller) ClearNode() {
	c.state.Node = casebook.NodeNone
}

// SetKnowledgeDepth replaces the depth. Values outside the enum are ignored.
func (c *Controller) SetKnowledgeDepth(d casebook.Depth) {
	if !d.Valid() {
		return
	}
	c.state.Depth = d
}

// SetExplorationMode switches between free and guided exploration.
func (c *Controller) SetExplorationMode(m ExplorationMode) {
	if m != ModeFree && m != ModeGuided {
		return
	}
	c.state.Mode = m
}

// SetComparisonMode replaces the comparison mode. Entering case comparison
// picks the first other case in the registry unless one is already chosen.
func (c *Controller) SetComparisonMode(m ComparisonMode) {
	if !m.Valid() {
		return
	}
	c.state.Comparison = m
	c.deriveSecondary()
}

// CycleComparisonMode advances single -> sequence -> case -> single.
func (c *Controller) CycleComparisonMode() ComparisonMode {
	next := (c.state.Comparison + 1) % (ComparisonCase + 1)
	c.SetComparisonMode(next)
	return c.state.Comparison
}

// SetComparisonCase chooses the case compared against. The current case and
// unknown ids are rejected.
func (c *Controller) SetComparisonCase(id string) bool {
	if id == c.state.CaseID || !casebook.Exists(id) {
		return false
	}
	c.state.ComparisonCaseID = id
	c.deriveSecondary()
	return true
}

// SetModality replaces a slot's modality and resets its view to the first
// view of the new modality. Modalities unknown to the slot's image set are
// ignored so an invalid pairing can never be stored.
func (c *Controller) SetModality(slot SlotID, modality string) bool {
	s := c.slot(slot)
	if s == nil || s.ImageSet == "" {
		return false
	}
	views := imagery.Views(s.ImageSet, modality)
	if len(views) == 0 {
		return false
	}
	s.Modality = modality
	s.View = views[0]
	c.keepSequencePair(slot)
	return true
}

// SetView replaces a slot's view. Views outside the slot's modality are ignored.
func (c *Controller) SetView(slot SlotID, view string) bool {
	s := c.slot(slot)
	if s == nil || !imagery.HasView(s.ImageSet, s.Modality, view) {
		return false
	}
	s.View = view
	c.keepSequencePair(slot)
	return true
}

// ResolveContent returns the framework text for the selected node at the
// current depth. The bool is false when idle, on the central node, or when
// the case is missing.
func (c *Controller) ResolveContent() (Content, bool) {
	lens, ok := c.state.Node.Lens()
	if !ok {
		return Content{}, false
	}
	return c.ContentFor(c.state.CaseID, lens)
}

// ResolveComparisonContent returns the same framework section for the
// comparison case while in case comparison mode.
func (c *Controller) ResolveComparisonContent() (Content, bool) {
	if c.state.Comparison != ComparisonCase || c.state.ComparisonCaseID == "" {
		return Content{}, false
	}
	lens, ok := c.state.Node.Lens()
	if !ok {
		return Content{}, false
	}
	return c.ContentFor(c.state.ComparisonCaseID, lens)
}

// ContentFor resolves a framework section of any case at the current depth.
func (c *Controller) ContentFor(caseID string, lens casebook.Lens) (Content, bool) {
	cs, err := casebook.Get(caseID)
	if err != nil {
		return Content{}, false
	}
	sec, ok := cs.Framework.Section(lens)
	if !ok {
		return Content{}, false
	}
	return Content{
		CaseID:           cs.ID,
		CaseName:         cs.DisplayName,
		Node:             lens.Node(),
		Lens:             lens,
		Depth:            c.state.Depth,
		DepthLabel:       c.state.Depth.Label(),
		PrimaryConcept:   sec.PrimaryConcept,
		DiscoveryInsight: sec.DiscoveryInsight,
		Body:             sec.Body(c.state.Depth),
	}, true
}

// ResolveImages returns the primary image and, in comparison modes, the
// secondary one. Either may be empty.
func (c *Controller) ResolveImages() Images {
	imgs := Images{Primary: resolveSlot(c.state.Primary)}
	if c.state.Comparison != ComparisonSingle {
		sec := resolveSlot(c.state.Secondary)
		imgs.Secondary = &sec
	}
	return imgs
}

// RecommendedNode suggests the next node in guided mode: technical, then
// clinical, then anatomical, then the central image node. Free mode
// recommends nothing.
func (c *Controller) RecommendedNode() casebook.Node {
	if c.state.Mode != ModeGuided {
		return casebook.NodeNone
	}
	switch c.state.Node {
	case casebook.NodeNone:
		return casebook.NodeTechnical
	case casebook.NodeTechnical:
		return casebook.NodeClinical
	case casebook.NodeClinical:
		return casebook.NodeAnatomical
	default:
		return casebook.NodeCentral
	}
}

func (c *Controller) slot(id SlotID) *Slot {
	switch id {
	case SlotPrimary:
		return &c.state.Primary
	case SlotSecondary:
		if c.state.Comparison == ComparisonSingle {
			return nil
		}
		return &c.state.Secondary
	}
	return nil
}

// deriveSecondary resets the secondary slot for the current comparison mode.
func (c *Controller) deriveSecondary() {
	switch c.state.Comparison {
	case ComparisonSequence:
		c.state.Secondary = nextSequenceSlot(c.state.Primary)
	case ComparisonCase:
		if c.state.ComparisonCaseID == "" {
			if other, ok := casebook.FirstOtherThan(c.state.CaseID); ok {
				c.state.ComparisonCaseID = other.ID
			}
		}
		other, err := casebook.Get(c.state.ComparisonCaseID)
		if err != nil {
			c.state.Secondary = Slot{}
			return
		}
		c.state.Secondary = defaultSlot(other)
	default:
		c.state.Secondary = Slot{}
	}
}

// keepSequencePair re-derives the secondary slot when a primary change left
// both sequence slots on the same view.
func (c *Controller) keepSequencePair(changed SlotID) {
	if changed == SlotPrimary && c.state.Comparison == ComparisonSequence &&
		c.state.Secondary == c.state.Primary {
		c.deriveSecondary()
	}
}

func defaultSlot(cs casebook.Case) Slot {
	modality, view := imagery.Defaults(cs.ImageSet)
	return Slot{
		CaseID:   cs.ID,
		ImageSet: cs.ImageSet,
		Modality: modality,
		View:     view,
	}
}

// nextSequenceSlot picks a second view of the same case: the view after the
// primary one within its modality (the one before it when the primary is
// last), else the first view of another modality, else the primary view.
func nextSequenceSlot(primary Slot) Slot {
	next := primary
	views := imagery.Views(primary.ImageSet, primary.Modality)
	for i, v := range views {
		if v != primary.View || len(views) < 2 {
			continue
		}
		if i+1 < len(views) {
			next.View = views[i+1]
		} else {
			next.View = views[i-1]
		}
		return next
	}
	for _, m := range imagery.Modalities(primary.ImageSet) {
		if m != primary.Modality {
			if v := imagery.FirstView(primary.ImageSet, m); v != "" {
				next.Modality = m
				next.View = v
				return next
			}
		}
	}
	return next
}

func resolveSlot(s Slot) ImageRef {
	return ImageRef{
		CaseID:   s.CaseID,
		ImageSet: s.ImageSet,
		Modality: s.Modality,
		View:     s.View,
		Ref:      imagery.ImagePath(s.ImageSet, s.Modality, s.View),
	}
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > MaxProgress {
		return MaxProgress
	}
	return p
}
