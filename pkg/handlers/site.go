package handlers

import (
	"cmp"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"innovia-cms/pkg/models"
)

// published returns the published records, newest date first.
func published(records []models.ContentRecord) []models.ContentRecord {
	out := make([]models.ContentRecord, 0, len(records))
	for _, r := range records {
		if r.IsPublished() {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b models.ContentRecord) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return out
}

func (h *Handler) HomePage(c *gin.Context) {
	items := published(h.store.LoadAll(c.Request.Context()))
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Items":       items,
		"Collections": models.Collections,
	})
}

func (h *Handler) ContentPage(c *gin.Context) {
	rec, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil || !rec.IsPublished() {
		c.HTML(http.StatusNotFound, "not_found.html", nil)
		return
	}
	col, _ := models.CollectionFor(rec.Type)
	c.HTML(http.StatusOK, "content.html", gin.H{
		"Record":     rec,
		"Collection": col,
	})
}
