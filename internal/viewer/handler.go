package viewer

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"archcompare/internal/artifact"
	"archcompare/internal/compare"
	"archcompare/internal/models"
	"archcompare/pkg/logging"
)

// Handler serves the dashboard pages and the JSON API. The artifact is read
// on every request so a regenerated artifact shows up without a restart.
type Handler struct {
	store        artifact.IStore
	artifactPath string
	logger       logging.Logger
}

// NewHandler creates a handler reading the artifact at artifactPath.
func NewHandler(store artifact.IStore, artifactPath string, logger logging.Logger) *Handler {
	return &Handler{
		store:        store,
		artifactPath: artifactPath,
		logger:       logger,
	}
}

type errorPage struct {
	Title   string
	Message string
	Path    string
	Hint    string
}

// Overview renders the summary tab.
func (h *Handler) Overview(c *gin.Context) {
	a, ok := h.load(c, false)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "overview.html", gin.H{
		"Tab":  "overview",
		"Page": BuildOverview(a),
	})
}

// Table renders the detailed, filterable table tab.
func (h *Handler) Table(c *gin.Context) {
	a, ok := h.load(c, false)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "table.html", gin.H{
		"Tab":  "table",
		"Page": BuildTable(a, tableQuery(c)),
	})
}

// DeepDive renders the per-group and per-architecture expansion tab.
func (h *Handler) DeepDive(c *gin.Context) {
	a, ok := h.load(c, false)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "deep_dive.html", gin.H{
		"Tab":  "deep-dive",
		"Page": BuildDeepDive(a, c.Query("group"), c.Query("arch")),
	})
}

// Health reports whether the server is up and the artifact is readable.
func (h *Handler) Health(c *gin.Context) {
	_, err := h.store.Read(h.artifactPath)
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"artifact": err == nil,
	})
}

// APIOverview returns the overview as JSON.
func (h *Handler) APIOverview(c *gin.Context) {
	a, ok := h.load(c, true)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, BuildOverview(a))
}

// APIRecords returns the filtered comparison records.
func (h *Handler) APIRecords(c *gin.Context) {
	a, ok := h.load(c, true)
	if !ok {
		return
	}
	q := tableQuery(c)
	records := FilterRecords(a.Records, q.Records)
	c.JSON(http.StatusOK, gin.H{
		"total":   len(a.Records),
		"count":   len(records),
		"records": Limit(records, q.Limit),
	})
}

// APIArchitectures returns the filtered architecture table.
func (h *Handler) APIArchitectures(c *gin.Context) {
	a, ok := h.load(c, true)
	if !ok {
		return
	}
	q := tableQuery(c)
	rows := FilterArchitectures(a.Architectures, q.Filter, q.Records.Search)
	c.JSON(http.StatusOK, gin.H{
		"total":         len(a.Architectures),
		"count":         len(rows),
		"architectures": Limit(rows, q.Limit),
	})
}

// APIArchitecture returns one expanded architecture row.
func (h *Handler) APIArchitecture(c *gin.Context) {
	a, ok := h.load(c, true)
	if !ok {
		return
	}
	detail := FindArchitecture(a.Architectures, c.Param("id"))
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "architecture not found"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// APIGroup returns every record of one group with its reasoning.
func (h *Handler) APIGroup(c *gin.Context) {
	a, ok := h.load(c, true)
	if !ok {
		return
	}
	group := strings.TrimPrefix(c.Param("group"), "/")
	records := GroupDetails(a.Records, group)
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"group":   group,
		"records": records,
	})
}

// load reads the artifact and writes the error response itself when that fails.
func (h *Handler) load(c *gin.Context, api bool) (*models.Artifact, bool) {
	a, err := h.store.Read(h.artifactPath)
	if err == nil {
		return a, true
	}

	status := http.StatusInternalServerError
	page := errorPage{
		Title:   "Unable to read comparison data",
		Message: err.Error(),
		Path:    h.artifactPath,
	}
	switch {
	case compare.IsMissingData(err):
		status = http.StatusServiceUnavailable
		page.Title = "Comparison data not found"
		page.Message = "No comparison artifact has been generated yet."
		page.Hint = compare.MissingDataHint
	case compare.IsParseError(err):
		page.Title = "Comparison data is malformed"
		page.Hint = "regenerate it: archcompare generate"
	}
	h.logger.Warn("Serving %s failed: %v", c.Request.URL.Path, err)

	if api {
		c.JSON(status, gin.H{
			"error": page.Title,
			"hint":  page.Hint,
			"path":  page.Path,
		})
		return nil, false
	}
	c.HTML(status, "error.html", gin.H{
		"Tab":  "",
		"Page": page,
	})
	return nil, false
}

func tableQuery(c *gin.Context) TableQuery {
	return TableQuery{
		Records: RecordQuery{
			Search:   c.Query("q"),
			DiffOnly: ParseBool(c.Query("diff_only")),
			Group:    c.Query("group"),
		},
		Filter: ParseArchitectureFilter(c.Query("filter")),
		Limit:  ParseLimit(c.Query("limit")),
	}
}
