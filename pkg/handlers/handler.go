package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"innovia-cms/pkg/auth"
	"innovia-cms/pkg/config"
	"innovia-cms/pkg/services"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	cfg   *config.Config
	store *services.ContentStore
	media *services.Media
	oauth *oauth2.Config
	now   func() time.Time

	// githubUser resolves the GitHub login behind an OAuth token.
	githubUser func(c *gin.Context, token *oauth2.Token) (string, error)
}

func NewHandler(cfg *config.Config, store *services.ContentStore, media *services.Media) *Handler {
	h := &Handler{
		cfg:   cfg,
		store: store,
		media: media,
		oauth: cfg.OAuth(),
		now:   time.Now,
	}
	h.githubUser = h.fetchGithubLogin
	return h
}

// dashboard builds a per-request Dashboard and redirects to sign-in when the
// session is not valid.
func (h *Handler) dashboard(c *gin.Context) (*services.Dashboard, bool) {
	d := services.NewDashboard(h.store, auth.Load(c))
	if d.Initialize(c.Request.Context()) == services.StateRedirected {
		c.Redirect(http.StatusFound, "/admin")
		c.Abort()
		return nil, false
	}
	return d, true
}
