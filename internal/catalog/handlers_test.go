package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/radstar/internal/casebook"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(assetsDir string) *gin.Engine {
	h := NewHandlers(nil, "test", casebook.DepthClinicalApplication, assetsDir != "")
	return NewRouter(RouterOptions{Handlers: h, AssetsDir: assetsDir})
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHandleHealth(t *testing.T) {
	w := get(t, setupTestRouter(""), "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, 3, resp.Cases)
}

func TestHandleListCases(t *testing.T) {
	w := get(t, setupTestRouter(""), "/api/cases")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[CasesResponse](t, w)
	require.Len(t, resp.Cases, 3)
	assert.Equal(t, "gas-bubbles-swi", resp.Cases[0].ID)
	assert.Equal(t, "Gas Bubbles on SWI", resp.Cases[0].DisplayName)
	assert.Equal(t, "trauma-gas", resp.Cases[1].ID)
}

func TestHandleGetCase(t *testing.T) {
	w := get(t, setupTestRouter(""), "/api/cases/trauma-gas")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[CaseResponse](t, w)
	assert.Equal(t, "trauma", resp.ImageSet)
	assert.Len(t, resp.Nodes, 4)
	require.Len(t, resp.Sections, 3)
	assert.Equal(t, "TECHNICAL", resp.Sections[0].Lens)
	assert.NotEmpty(t, resp.Sections[0].PrimaryConcept)
}

func TestHandleGetCase_NotFound(t *testing.T) {
	r := setupTestRouter("")
	for _, target := range []string{
		"/api/cases/missing",
		"/api/cases/Gas%20Bubbles%20on%20SWI",
		"/api/cases/missing/content?node=technical",
		"/api/cases/missing/images",
		"/api/cases/missing/images/resolve",
	} {
		w := get(t, r, target)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Equal(t, "CASE_NOT_FOUND", decode[ErrorResponse](t, w).Code, target)
	}
}

func TestHandleContent(t *testing.T) {
	w := get(t, setupTestRouter(""), "/api/cases/gas-bubbles-swi/content?node=technical&depth=comprehensive")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ContentResponse](t, w)
	assert.Equal(t, "How We See It", resp.PrimaryConcept)
	assert.Equal(t, "comprehensive", resp.Depth)
	assert.Equal(t, "Comprehensive Analysis", resp.DepthLabel)
	assert.Contains(t, resp.Markup, "**")
	assert.NotContains(t, resp.Text, "**")
	assert.True(t, strings.HasPrefix(resp.Text, "Susceptibility physics explanation:"), resp.Text)
}

func TestHandleContent_DefaultDepth(t *testing.T) {
	w := get(t, setupTestRouter(""), "/api/cases/trauma-gas/content?node=clinical")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clinical-application", decode[ContentResponse](t, w).Depth)
}

func TestHandleContent_BadInput(t *testing.T) {
	r := setupTestRouter("")
	tests := []struct {
		query string
		code  string
	}{
		{"node=sideways", "INVALID_NODE"},
		{"node=central", "NO_SECTION"},
		{"", "NO_SECTION"},
		{"node=technical&depth=discovery", "INVALID_DEPTH"},
	}
	for _, tt := range tests {
		w := get(t, r, "/api/cases/gas-bubbles-swi/content?"+tt.query)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.query)
		assert.Equal(t, tt.code, decode[ErrorResponse](t, w).Code, tt.query)
	}
}

func TestHandleImages(t *testing.T) {
	w := get(t, setupTestRouter(""), "/api/cases/normal-brain/images")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ImagesResponse](t, w)
	assert.Equal(t, "MRI", resp.DefaultModality)
	assert.Equal(t, "SWI", resp.DefaultView)
	require.Len(t, resp.Modalities, 1)
	views := resp.Modalities[0].Views
	require.Len(t, views, 3)
	assert.Equal(t, "FLAIR", views[2].Name)
	assert.False(t, views[2].Available)
}

func TestHandleResolveImage(t *testing.T) {
	r := setupTestRouter("")

	w := get(t, r, "/api/cases/trauma-gas/images/resolve")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ResolveResponse](t, w)
	assert.Equal(t, "CT Head", resp.Modality)
	assert.Equal(t, "Axial non-contrast", resp.View)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.URL)

	w = get(t, r, "/api/cases/trauma-gas/images/resolve?modality=CT%20Venogram")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Axial venogram", decode[ResolveResponse](t, w).View)

	w = get(t, r, "/api/cases/normal-brain/images/resolve?view=FLAIR")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[ResolveResponse](t, w)
	assert.False(t, resp.Available)
	assert.Empty(t, resp.Ref)
}

func TestHandleResolveImage_BadInput(t *testing.T) {
	r := setupTestRouter("")
	w := get(t, r, "/api/cases/trauma-gas/images/resolve?modality=PET")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = get(t, r, "/api/cases/trauma-gas/images/resolve?view=SWI")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStaticAssets(t *testing.T) {
	dir := t.TempDir()
	ref := filepath.Join(dir, "medical_images", "trauma_case")
	require.NoError(t, os.MkdirAll(ref, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ref, "trauma_ct_axial_noncontrast.jpg"), []byte("jpeg"), 0o644))

	r := setupTestRouter(dir)

	w := get(t, r, "/api/cases/trauma-gas/images/resolve")
	require.Equal(t, http.StatusOK, w.Code)
	url := decode[ResolveResponse](t, w).URL
	assert.Equal(t, "/assets/medical_images/trauma_case/trauma_ct_axial_noncontrast.jpg", url)

	w = get(t, r, url)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())
}
