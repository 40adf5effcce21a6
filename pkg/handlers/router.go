package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"innovia-cms/templates"
)

// NewRouter wires every route onto a gin engine.
func NewRouter(h *Handler) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Session Setup
	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(h.cfg.SessionName, store))

	// Templates & Media
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)
	r.Static(h.cfg.MediaURL, h.cfg.MediaDir)

	// --- Public Site ---
	r.GET("/", h.HomePage)
	r.GET("/content/:id", h.ContentPage)

	// --- Auth Routes ---
	r.GET("/admin", h.LoginPage)
	r.POST("/admin/login", h.PasswordLogin)
	r.GET("/admin/login/github", h.GithubLogin)
	r.GET("/auth/callback", h.AuthCallback)
	r.GET("/admin/logout", h.Logout)

	// --- Dashboard (Authorized) ---
	admin := r.Group("/admin/dashboard")
	admin.Use(h.AuthRequired)
	{
		admin.GET("", h.DashboardPage)
		admin.GET("/new", h.NewContentPage)
		admin.GET("/edit/:id", h.EditContentPage)
		admin.POST("/save", h.SaveContentForm)
		admin.GET("/delete/:id", h.ConfirmDeletePage)
		admin.POST("/delete/:id", h.DeleteContentForm)
	}

	api := r.Group("/api")
	api.Use(h.AuthRequired)
	{
		api.GET("/content", h.ListContent)
		api.POST("/content", h.SaveContent)
		api.POST("/content/import", h.ImportContent)
		api.GET("/content/:id", h.GetContent)
		api.DELETE("/content/:id", h.DeleteContent)
		api.GET("/content/:id/export", h.ExportContent)
		api.GET("/stats", h.GetStats)
		api.POST("/export", h.ExportSite)
		api.GET("/media", h.ListMedia)
		api.POST("/media", h.UploadMedia)
		api.DELETE("/media", h.DeleteMedia)
	}

	return r, nil
}
