package catalog

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Cases   int    `json:"cases"`
}

type CaseSummary struct {
	ID               string `json:"id"`
	DisplayName      string `json:"display_name"`
	ShortDescription string `json:"short_description"`
}

type CasesResponse struct {
	Cases []CaseSummary `json:"cases"`
}

type NodeResponse struct {
	Node    string `json:"node"`
	Title   string `json:"title"`
	Subtext string `json:"subtext,omitempty"`
	Color   string `json:"color"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

type SectionOverview struct {
	Lens             string `json:"lens"`
	PrimaryConcept   string `json:"primary_concept"`
	DiscoveryInsight string `json:"discovery_insight"`
}

type PatientResponse struct {
	Patient      string `json:"patient,omitempty"`
	Presentation string `json:"presentation,omitempty"`
	Finding      string `json:"finding,omitempty"`
	Note         string `json:"note,omitempty"`
}

type CaseResponse struct {
	CaseSummary
	ImageSet string            `json:"image_set"`
	Patient  PatientResponse   `json:"patient"`
	Nodes    []NodeResponse    `json:"nodes"`
	Sections []SectionOverview `json:"sections"`
}

type ContentResponse struct {
	CaseID           string `json:"case_id"`
	Node             string `json:"node"`
	Lens             string `json:"lens"`
	Depth            string `json:"depth"`
	DepthLabel       string `json:"depth_label"`
	PrimaryConcept   string `json:"primary_concept"`
	DiscoveryInsight string `json:"discovery_insight"`
	Text             string `json:"text"`
	Markup           string `json:"markup"`
}

type ViewResponse struct {
	Name      string `json:"name"`
	Ref       string `json:"ref"`
	Available bool   `json:"available"`
}

type ModalityResponse struct {
	Name  string         `json:"name"`
	Views []ViewResponse `json:"views"`
}

type ImagesResponse struct {
	CaseID          string             `json:"case_id"`
	ImageSet        string             `json:"image_set"`
	DefaultModality string             `json:"default_modality"`
	DefaultView     string             `json:"default_view"`
	Modalities      []ModalityResponse `json:"modalities"`
}

type ResolveResponse struct {
	CaseID    string `json:"case_id"`
	ImageSet  string `json:"image_set"`
	Modality  string `json:"modality"`
	View      string `json:"view"`
	Ref       string `json:"ref"`
	URL       string `json:"url,omitempty"`
	Available bool   `json:"available"`
}
