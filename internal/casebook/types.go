package casebook

import "strings"

// Node identifies one of the four constellation nodes.
type Node int

const (
	NodeNone Node = iota
	NodeCentral
	NodeTechnical
	NodeClinical
	NodeAnatomical
)

// AllNodes returns the selectable nodes in display order.
func AllNodes() []Node {
	return []Node{NodeCentral, NodeTechnical, NodeClinical, NodeAnatomical}
}

func (n Node) String() string {
	switch n {
	case NodeCentral:
		return "central"
	case NodeTechnical:
		return "technical"
	case NodeClinical:
		return "clinical"
	case NodeAnatomical:
		return "anatomical"
	default:
		return "none"
	}
}

// ParseNode converts a node name to a Node. Unknown names map to NodeNone.
func ParseNode(s string) (Node, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "central":
		return NodeCentral, true
	case "technical":
		return NodeTechnical, true
	case "clinical":
		return NodeClinical, true
	case "anatomical":
		return NodeAnatomical, true
	case "", "none":
		return NodeNone, true
	}
	return NodeNone, false
}

// Lens returns the framework section a node reveals. The central node and
// NodeNone have no section.
func (n Node) Lens() (Lens, bool) {
	switch n {
	case NodeTechnical:
		return LensTechnical, true
	case NodeClinical:
		return LensClinical, true
	case NodeAnatomical:
		return LensAnatomical, true
	}
	return 0, false
}

// Lens is one of the three pedagogical framework sections.
type Lens int

const (
	LensTechnical Lens = iota
	LensClinical
	LensAnatomical
)

// AllLenses returns the framework sections in display order.
func AllLenses() []Lens {
	return []Lens{LensTechnical, LensClinical, LensAnatomical}
}

func (l Lens) String() string {
	switch l {
	case LensTechnical:
		return "TECHNICAL"
	case LensClinical:
		return "CLINICAL"
	case LensAnatomical:
		return "ANATOMICAL"
	}
	return ""
}

// Node returns the constellation node that reveals this section.
func (l Lens) Node() Node {
	switch l {
	case LensTechnical:
		return NodeTechnical
	case LensClinical:
		return NodeClinical
	case LensAnatomical:
		return NodeAnatomical
	}
	return NodeNone
}

// Label returns the heading used by the integrated viewer tabs.
func (l Lens) Label() string {
	switch l {
	case LensTechnical:
		return "Technical Analysis"
	case LensClinical:
		return "Clinical Significance"
	case LensAnatomical:
		return "Anatomical Context"
	}
	return "Analysis"
}

// Depth is the knowledge depth requested for a framework section.
type Depth int

const (
	DepthFocused Depth = iota
	DepthClinicalApplication
	DepthComprehensive
)

// AllDepths returns the depth levels from shallowest to deepest.
func AllDepths() []Depth {
	return []Depth{DepthFocused, DepthClinicalApplication, DepthComprehensive}
}

func (d Depth) String() string {
	switch d {
	case DepthFocused:
		return "focused"
	case DepthClinicalApplication:
		return "clinical-application"
	case DepthComprehensive:
		return "comprehensive"
	}
	return "clinical-application"
}

// Label returns the human-readable depth name.
func (d Depth) Label() string {
	switch d {
	case DepthFocused:
		return "Focused Learning"
	case DepthComprehensive:
		return "Comprehensive Analysis"
	default:
		return "Clinical Application"
	}
}

// Valid reports whether d is one of the defined depth levels.
func (d Depth) Valid() bool {
	return d >= DepthFocused && d <= DepthComprehensive
}

// Next returns the following depth, wrapping to focused after comprehensive.
func (d Depth) Next() Depth {
	if d >= DepthComprehensive || d < DepthFocused {
		return DepthFocused
	}
	return d + 1
}

// ParseDepth accepts the canonical names plus a few short aliases.
func ParseDepth(s string) (Depth, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "focused", "focus", "0":
		return DepthFocused, true
	case "clinical-application", "clinical", "application", "1":
		return DepthClinicalApplication, true
	case "comprehensive", "analysis", "2":
		return DepthComprehensive, true
	}
	return DepthClinicalApplication, false
}

// Section is one framework lens applied to a case.
type Section struct {
	PrimaryConcept        string `json:"primaryConcept" yaml:"primary_concept"`
	DiscoveryInsight      string `json:"discoveryInsight" yaml:"discovery_insight"`
	FocusedLearning       string `json:"focusedLearning" yaml:"focused_learning"`
	ClinicalApplication   string `json:"clinicalApplication" yaml:"clinical_application"`
	ComprehensiveAnalysis string `json:"comprehensiveAnalysis" yaml:"comprehensive_analysis"`
}

// Body returns the text for the given depth. Unknown depths yield "".
func (s Section) Body(d Depth) string {
	switch d {
	case DepthFocused:
		return s.FocusedLearning
	case DepthClinicalApplication:
		return s.ClinicalApplication
	case DepthComprehensive:
		return s.ComprehensiveAnalysis
	}
	return ""
}

// Framework holds exactly the three framework sections of a case.
type Framework struct {
	Technical  Section `json:"TECHNICAL" yaml:"technical"`
	Clinical   Section `json:"CLINICAL" yaml:"clinical"`
	Anatomical Section `json:"ANATOMICAL" yaml:"anatomical"`
}

// Section returns the section for a lens.
func (f Framework) Section(l Lens) (Section, bool) {
	switch l {
	case LensTechnical:
		return f.Technical, true
	case LensClinical:
		return f.Clinical, true
	case LensAnatomical:
		return f.Anatomical, true
	}
	return Section{}, false
}

// Point is a node position on the constellation canvas.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// NodeLayout fixes the canvas coordinates of the four nodes.
type NodeLayout struct {
	Central    Point `json:"central" yaml:"central"`
	Technical  Point `json:"technical" yaml:"technical"`
	Clinical   Point `json:"clinical" yaml:"clinical"`
	Anatomical Point `json:"anatomical" yaml:"anatomical"`
}

// At returns the position of a node.
func (l NodeLayout) At(n Node) Point {
	switch n {
	case NodeTechnical:
		return l.Technical
	case NodeClinical:
		return l.Clinical
	case NodeAnatomical:
		return l.Anatomical
	default:
		return l.Central
	}
}

// NodeColors holds a hex color token per node.
type NodeColors struct {
	Central    string `json:"central" yaml:"central"`
	Technical  string `json:"technical" yaml:"technical"`
	Clinical   string `json:"clinical" yaml:"clinical"`
	Anatomical string `json:"anatomical" yaml:"anatomical"`
}

// Of returns the color token of a node.
func (c NodeColors) Of(n Node) string {
	switch n {
	case NodeTechnical:
		return c.Technical
	case NodeClinical:
		return c.Clinical
	case NodeAnatomical:
		return c.Anatomical
	default:
		return c.Central
	}
}

// NodeLabel is the title and subtext drawn on a node.
type NodeLabel struct {
	Title   string `json:"title" yaml:"title"`
	Subtext string `json:"subtext,omitempty" yaml:"subtext"`
}

// NodeLabels holds the labels of the four nodes.
type NodeLabels struct {
	Central    NodeLabel `json:"central" yaml:"central"`
	Technical  NodeLabel `json:"technical" yaml:"technical"`
	Clinical   NodeLabel `json:"clinical" yaml:"clinical"`
	Anatomical NodeLabel `json:"anatomical" yaml:"anatomical"`
}

// Of returns the label of a node.
func (l NodeLabels) Of(n Node) NodeLabel {
	switch n {
	case NodeTechnical:
		return l.Technical
	case NodeClinical:
		return l.Clinical
	case NodeAnatomical:
		return l.Anatomical
	default:
		return l.Central
	}
}

// PatientContext is the summary shown when the central node is opened.
type PatientContext struct {
	Patient      string `json:"patient" yaml:"patient"`
	Presentation string `json:"presentation" yaml:"presentation"`
	Finding      string `json:"finding" yaml:"finding"`
	Note         string `json:"note,omitempty" yaml:"note"`
}

// Case is one curated teaching scenario.
type Case struct {
	ID               string         `json:"id" yaml:"id"`
	DisplayName      string         `json:"displayName" yaml:"display_name"`
	ShortDescription string         `json:"shortDescription" yaml:"short_description"`
	ImageSet         string         `json:"imageSet" yaml:"image_set"`
	Framework        Framework      `json:"framework" yaml:"framework"`
	Layout           NodeLayout     `json:"nodeLayout" yaml:"layout"`
	Colors           NodeColors     `json:"nodeColors" yaml:"colors"`
	Labels           NodeLabels     `json:"nodeLabels" yaml:"labels"`
	Patient          PatientContext `json:"patient" yaml:"patient"`
}

// Summary is the selector entry for a case.
type Summary struct {
	ID               string `json:"id"`
	DisplayName      string `json:"displayName"`
	ShortDescription string `json:"shortDescription"`
}

// Summary returns the selector entry for c.
func (c Case) Summary() Summary {
	return Summary{ID: c.ID, DisplayName: c.DisplayName, ShortDescription: c.ShortDescription}
}
