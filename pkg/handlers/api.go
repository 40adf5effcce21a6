package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"innovia-cms/pkg/auth"
	"innovia-cms/pkg/models"
	"innovia-cms/pkg/services"
)

// maxImportSize caps imported markdown documents.
const maxImportSize = 1 << 20

// apiDashboard is dashboard for JSON routes: 401 instead of a redirect.
func (h *Handler) apiDashboard(c *gin.Context) (*services.Dashboard, bool) {
	d := services.NewDashboard(h.store, auth.Load(c))
	if d.Initialize(c.Request.Context()) == services.StateRedirected {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return d, true
}

// apiError maps service errors onto status codes.
func apiError(c *gin.Context, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidRecord), errors.Is(err, services.ErrUnknownType),
		errors.Is(err, services.ErrDeleteNotConfirmed):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrIDCollision):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), action+" failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(status, gin.H{"error": action + " failed"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) ListContent(c *gin.Context) {
	d, ok := h.apiDashboard(c)
	if !ok {
		return
	}

	records := d.All()
	if t := models.ContentType(c.Query("type")); t != "" {
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown content type %q", t)})
			return
		}
		col, _ := models.CollectionFor(t)
		records = d.ItemsFor(col.Tab)
	}
	c.JSON(http.StatusOK, models.Summaries(records))
}

func (h *Handler) GetContent(c *gin.Context) {
	if _, ok := h.apiDashboard(c); !ok {
		return
	}
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiError(c, err, "load")
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) SaveContent(c *gin.Context) {
	d, ok := h.apiDashboard(c)
	if !ok {
		return
	}

	var rec models.ContentRecord
	if err := c.BindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	saved, err := d.Save(c.Request.Context(), rec)
	if err != nil {
		apiError(c, err, "save")
		return
	}
	slog.InfoContext(c.Request.Context(), "content saved", "id", saved.ID, "type", saved.Type, "status", saved.Status)
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) DeleteContent(c *gin.Context) {
	d, ok := h.apiDashboard(c)
	if !ok {
		return
	}
	id := c.Param("id")

	if err := d.Delete(c.Request.Context(), id, c.Query("confirm") == "true"); err != nil {
		apiError(c, err, "delete")
		return
	}
	slog.InfoContext(c.Request.Context(), "content deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

func (h *Handler) GetStats(c *gin.Context) {
	d, ok := h.apiDashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d.Stats())
}

func (h *Handler) ExportContent(c *gin.Context) {
	if _, ok := h.apiDashboard(c); !ok {
		return
	}
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apiError(c, err, "export")
		return
	}

	format := c.DefaultQuery("format", h.cfg.ExportFormat)
	doc, err := services.RenderDocument(rec, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.ID+".md"))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", doc)
}

// ImportContent saves a markdown document with front matter. A missing type
// in the document falls back to ?type=.
func (h *Handler) ImportContent(c *gin.Context) {
	d, ok := h.apiDashboard(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read document"})
		return
	}
	if len(body) > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Document too large"})
		return
	}

	rec, err := services.ParseDocument(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document: " + err.Error()})
		return
	}
	if rec.Type == "" {
		rec.Type = models.ContentType(c.Query("type"))
	}

	saved, err := d.Save(c.Request.Context(), rec)
	if err != nil {
		apiError(c, err, "import")
		return
	}
	slog.InfoContext(c.Request.Context(), "content imported", "id", saved.ID, "type", saved.Type)
	c.JSON(http.StatusOK, saved)
}

// ExportSite writes every published record under the export directory.
func (h *Handler) ExportSite(c *gin.Context) {
	d, ok := h.apiDashboard(c)
	if !ok {
		return
	}
	written, err := services.ExportPublished(d.All(), h.cfg.ExportDir, h.cfg.ExportFormat)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "export failed", "dir", h.cfg.ExportDir, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "files": written})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "files": written})
}
