package catalog

import (
	"errors"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/radstar/internal/casebook"
	"github.com/abhisek/radstar/internal/imagery"
	"github.com/abhisek/radstar/internal/logger"
	"github.com/abhisek/radstar/internal/markup"
	"github.com/abhisek/radstar/internal/viewer"
)

// AssetsPrefix is the URL prefix image refs are served under.
const AssetsPrefix = "/assets"

// Handlers serves the read-only case catalog.
type Handlers struct {
	log          *logger.Logger
	version      string
	defaultDepth casebook.Depth
	assets       bool
}

// NewHandlers creates handlers. assets reports whether image files are
// served, which controls the url field of resolved images.
func NewHandlers(log *logger.Logger, version string, defaultDepth casebook.Depth, assets bool) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	if !defaultDepth.Valid() {
		defaultDepth = casebook.DepthClinicalApplication
	}
	return &Handlers{log: log, version: version, defaultDepth: defaultDepth, assets: assets}
}

// HandleHealth handles GET /api/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Cases:   len(casebook.IDs()),
	})
}

// HandleListCases handles GET /api/cases.
func (h *Handlers) HandleListCases(c *gin.Context) {
	list := casebook.List()
	resp := CasesResponse{Cases: make([]CaseSummary, 0, len(list))}
	for _, s := range list {
		resp.Cases = append(resp.Cases, CaseSummary{
			ID:               s.ID,
			DisplayName:      s.DisplayName,
			ShortDescription: s.ShortDescription,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// HandleGetCase handles GET /api/cases/:id. Unknown ids are 404; the HTTP
// surface never falls back to the default case.
func (h *Handlers) HandleGetCase(c *gin.Context) {
	cs, ok := h.lookup(c)
	if !ok {
		return
	}

	resp := CaseResponse{
		CaseSummary: CaseSummary{
			ID:               cs.ID,
			DisplayName:      cs.DisplayName,
			ShortDescription: cs.ShortDescription,
		},
		ImageSet: cs.ImageSet,
		Patient: PatientResponse{
			Patient:      cs.Patient.Patient,
			Presentation: cs.Patient.Presentation,
			Finding:      cs.Patient.Finding,
			Note:         cs.Patient.Note,
		},
	}
	for _, n := range casebook.AllNodes() {
		label := cs.Labels.Of(n)
		pt := cs.Layout.At(n)
		resp.Nodes = append(resp.Nodes, NodeResponse{
			Node:    n.String(),
			Title:   label.Title,
			Subtext: label.Subtext,
			Color:   cs.Colors.Of(n),
			X:       pt.X,
			Y:       pt.Y,
		})
	}
	for _, l := range casebook.AllLenses() {
		sec, _ := cs.Framework.Section(l)
		resp.Sections = append(resp.Sections, SectionOverview{
			Lens:             l.String(),
			PrimaryConcept:   sec.PrimaryConcept,
			DiscoveryInsight: sec.DiscoveryInsight,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// HandleContent handles GET /api/cases/:id/content?node=&depth=.
func (h *Handlers) HandleContent(c *gin.Context) {
	cs, ok := h.lookup(c)
	if !ok {
		return
	}

	node, ok := casebook.ParseNode(c.Query("node"))
	if !ok {
		badRequest(c, "INVALID_NODE", "node must be technical, clinical or anatomical")
		return
	}
	if _, hasLens := node.Lens(); !hasLens {
		badRequest(c, "NO_SECTION", "node "+node.String()+" has no framework section")
		return
	}

	depth := h.defaultDepth
	if q := c.Query("depth"); q != "" {
		d, ok := casebook.ParseDepth(q)
		if !ok {
			badRequest(c, "INVALID_DEPTH", "unknown depth "+q)
			return
		}
		depth = d
	}

	ctl := viewer.New(cs.ID)
	ctl.SetKnowledgeDepth(depth)
	ctl.SelectNode(node)
	content, ok := ctl.ResolveContent()
	if !ok {
		h.log.Warn("content unresolved", "case", cs.ID, "node", node.String())
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "content not found", Code: "NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, ContentResponse{
		CaseID:           content.CaseID,
		Node:             content.Node.String(),
		Lens:             content.Lens.String(),
		Depth:            content.Depth.String(),
		DepthLabel:       content.DepthLabel,
		PrimaryConcept:   content.PrimaryConcept,
		DiscoveryInsight: content.DiscoveryInsight,
		Text:             markup.Strip(content.Body),
		Markup:           content.Body,
	})
}

// HandleImages handles GET /api/cases/:id/images.
func (h *Handlers) HandleImages(c *gin.Context) {
	cs, ok := h.lookup(c)
	if !ok {
		return
	}

	defMod, defView := imagery.Defaults(cs.ImageSet)
	resp := ImagesResponse{
		CaseID:          cs.ID,
		ImageSet:        cs.ImageSet,
		DefaultModality: defMod,
		DefaultView:     defView,
		Modalities:      []ModalityResponse{},
	}
	for _, m := range imagery.Modalities(cs.ImageSet) {
		mr := ModalityResponse{Name: m, Views: []ViewResponse{}}
		for _, v := range imagery.Views(cs.ImageSet, m) {
			ref := imagery.ImagePath(cs.ImageSet, m, v)
			mr.Views = append(mr.Views, ViewResponse{Name: v, Ref: ref, Available: ref != ""})
		}
		resp.Modalities = append(resp.Modalities, mr)
	}
	c.JSON(http.StatusOK, resp)
}

// HandleResolveImage handles GET /api/cases/:id/images/resolve?modality=&view=.
// Missing parameters use the case defaults; an empty ref is a valid 200.
func (h *Handlers) HandleResolveImage(c *gin.Context) {
	cs, ok := h.lookup(c)
	if !ok {
		return
	}

	ctl := viewer.New(cs.ID)
	if m := c.Query("modality"); m != "" && !ctl.SetModality(viewer.SlotPrimary, m) {
		badRequest(c, "INVALID_MODALITY", "unknown modality "+m)
		return
	}
	if v := c.Query("view"); v != "" && !ctl.SetView(viewer.SlotPrimary, v) {
		badRequest(c, "INVALID_VIEW", "unknown view "+v)
		return
	}

	img := ctl.ResolveImages().Primary
	resp := ResolveResponse{
		CaseID:    img.CaseID,
		ImageSet:  img.ImageSet,
		Modality:  img.Modality,
		View:      img.View,
		Ref:       img.Ref,
		Available: img.Available(),
	}
	if h.assets && img.Available() {
		resp.URL = path.Join(AssetsPrefix, img.Ref)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) lookup(c *gin.Context) (casebook.Case, bool) {
	id := c.Param("id")
	cs, err := casebook.Get(id)
	if err != nil {
		if errors.Is(err, casebook.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "CASE_NOT_FOUND"})
			return casebook.Case{}, false
		}
		h.log.Error("case lookup failed", "case", id, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "INTERNAL"})
		return casebook.Case{}, false
	}
	return cs, true
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: code})
}
