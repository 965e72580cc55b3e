package catalog

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/radstar/internal/logger"
)

// RegisterRoutes mounts the catalog endpoints on rg.
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/health", h.HandleHealth)

	cases := rg.Group("/cases")
	cases.GET("", h.HandleListCases)
	cases.GET("/:id", h.HandleGetCase)
	cases.GET("/:id/content", h.HandleContent)
	cases.GET("/:id/images", h.HandleImages)
	cases.GET("/:id/images/resolve", h.HandleResolveImage)
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Handlers *Handlers
	Log      *logger.Logger
	// AssetsDir is served under AssetsPrefix when non-empty.
	AssetsDir string
}

// NewRouter builds the engine with recovery, request logging, the /api
// group and optional static image assets.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(opts.Log))

	RegisterRoutes(r.Group("/api"), opts.Handlers)

	if opts.AssetsDir != "" {
		r.Static(AssetsPrefix, opts.AssetsDir)
	}
	return r
}

// RequestLogger logs one line per request at a level chosen by status.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, "case", id)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
