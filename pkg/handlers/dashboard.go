package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"innovia-cms/pkg/models"
	"innovia-cms/pkg/services"
)

// contentForm is the editor's POST body.
type contentForm struct {
	ID       string `form:"id"`
	Title    string `form:"title"`
	Excerpt  string `form:"excerpt"`
	Image    string `form:"image"`
	Date     string `form:"date"`
	ReadTime string `form:"readTime"`
	Content  string `form:"content"`
	Tags     string `form:"tags"`
	Type     string `form:"type"`
	Status   string `form:"status"`
}

func (f contentForm) record() models.ContentRecord {
	return models.ContentRecord{
		ID:       strings.TrimSpace(f.ID),
		Title:    strings.TrimSpace(f.Title),
		Excerpt:  f.Excerpt,
		Image:    strings.TrimSpace(f.Image),
		Date:     strings.TrimSpace(f.Date),
		ReadTime: strings.TrimSpace(f.ReadTime),
		Content:  f.Content,
		Tags:     services.SplitTags(f.Tags),
		Type:     models.ContentType(f.Type),
		Status:   models.ContentStatus(f.Status),
	}
}

func (h *Handler) DashboardPage(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	d.SetTab(models.Tab(c.Query("tab")))

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":        d.Session().User,
		"Tab":         d.Tab(),
		"Collections": models.Collections,
		"Items":       d.Items(),
		"Stats":       d.Stats(),
		"Notice":      c.Query("notice"),
	})
}

func (h *Handler) NewContentPage(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	draft, err := d.StartNew(models.ContentType(c.Query("type")))
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	h.renderEditor(c, http.StatusOK, draft, true, "")
}

func (h *Handler) EditContentPage(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	rec, err := d.Edit(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Content not found")
		return
	}
	h.renderEditor(c, http.StatusOK, rec, false, "")
}

func (h *Handler) renderEditor(c *gin.Context, status int, rec models.ContentRecord, isNew bool, msg string) {
	col, _ := models.CollectionFor(rec.Type)
	c.HTML(status, "editor.html", gin.H{
		"Record":     rec,
		"Collection": col,
		"IsNew":      isNew,
		"Tags":       strings.Join(rec.Tags, ", "),
		"Error":      msg,
	})
}

func (h *Handler) SaveContentForm(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}

	var form contentForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form")
		return
	}
	input := form.record()

	saved, err := d.Save(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidRecord), errors.Is(err, services.ErrUnknownType):
			h.renderEditor(c, http.StatusBadRequest, input, input.ID == "", err.Error())
		default:
			slog.ErrorContext(c.Request.Context(), "failed to save content", "id", input.ID, "error", err)
			h.renderEditor(c, http.StatusInternalServerError, input, input.ID == "", "Saving failed, please try again.")
		}
		return
	}

	slog.InfoContext(c.Request.Context(), "content saved", "id", saved.ID, "type", saved.Type, "status", saved.Status)
	col, _ := models.CollectionFor(saved.Type)
	c.Redirect(http.StatusFound, "/admin/dashboard?tab="+string(col.Tab)+"&notice=saved")
}

func (h *Handler) ConfirmDeletePage(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	rec, err := d.Edit(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Content not found")
		return
	}
	c.HTML(http.StatusOK, "confirm_delete.html", gin.H{"Record": rec})
}

func (h *Handler) DeleteContentForm(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	id := c.Param("id")

	err := d.Delete(c.Request.Context(), id, c.PostForm("confirm") == "yes")
	switch {
	case err == nil:
		slog.InfoContext(c.Request.Context(), "content deleted", "id", id)
		c.Redirect(http.StatusFound, "/admin/dashboard?notice=deleted")
	case errors.Is(err, services.ErrDeleteNotConfirmed):
		c.Redirect(http.StatusFound, "/admin/dashboard/delete/"+id)
	case errors.Is(err, services.ErrNotFound):
		c.String(http.StatusNotFound, "Content not found")
	default:
		slog.ErrorContext(c.Request.Context(), "failed to delete content", "id", id, "error", err)
		c.String(http.StatusInternalServerError, "Delete failed")
	}
}
