package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"innovia-cms/pkg/auth"
	"innovia-cms/pkg/services"
)

const oauthStateKey = "oauth_state"

// AuthRequired rejects API calls with 401 and sends page requests to sign-in.
func (h *Handler) AuthRequired(c *gin.Context) {
	if !auth.Load(c).Valid(h.now()) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		} else {
			c.Redirect(http.StatusFound, "/admin")
			c.Abort()
		}
		return
	}
	c.Next()
}

func (h *Handler) LoginPage(c *gin.Context) {
	if auth.Load(c).Valid(h.now()) {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	h.renderLogin(c, http.StatusOK, "")
}

func (h *Handler) renderLogin(c *gin.Context, status int, msg string) {
	c.HTML(status, "login.html", gin.H{
		"Error":           msg,
		"PasswordEnabled": h.cfg.AdminPasswordHash != "",
		"GithubEnabled":   h.oauth != nil,
	})
}

func (h *Handler) PasswordLogin(c *gin.Context) {
	if h.cfg.AdminPasswordHash == "" {
		h.renderLogin(c, http.StatusForbidden, "Password sign-in is disabled.")
		return
	}

	var form struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, http.StatusBadRequest, "Username and password are required.")
		return
	}

	hashErr := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(form.Password))
	if form.Username != h.cfg.AdminUser || hashErr != nil {
		slog.WarnContext(c.Request.Context(), "password sign-in rejected", "user", form.Username)
		h.renderLogin(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	h.signIn(c, form.Username, auth.MethodPassword)
}

func (h *Handler) signIn(c *gin.Context, user, method string) {
	s := auth.Issue(user, method, h.cfg.SessionTTL, h.now())
	if err := auth.Save(c, s); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to save session", "error", err)
		c.String(http.StatusInternalServerError, "Session save failed")
		return
	}
	slog.InfoContext(c.Request.Context(), "operator signed in", "user", user, "method", method)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *Handler) GithubLogin(c *gin.Context) {
	if h.oauth == nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	state := uuid.NewString()
	session := sessions.Default(c)
	session.Set(oauthStateKey, state)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Session save failed")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

func (h *Handler) AuthCallback(c *gin.Context) {
	if h.oauth == nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	session := sessions.Default(c)
	expected, _ := session.Get(oauthStateKey).(string)
	session.Delete(oauthStateKey)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Session save failed")
		return
	}
	if expected == "" || c.Query("state") != expected {
		h.renderLogin(c, http.StatusBadRequest, "Sign-in expired, please try again.")
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "oauth exchange failed", "error", err)
		c.String(http.StatusInternalServerError, "OAuth Exchange Failed")
		return
	}

	login, err := h.githubUser(c, token)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "github user lookup failed", "error", err)
		c.String(http.StatusInternalServerError, "GitHub user lookup failed")
		return
	}
	if len(h.cfg.GithubAllowedUsers) > 0 && !slices.Contains(h.cfg.GithubAllowedUsers, login) {
		slog.WarnContext(c.Request.Context(), "github user not allowed", "user", login)
		h.renderLogin(c, http.StatusForbidden, "This GitHub account may not manage content.")
		return
	}

	h.signIn(c, login, auth.MethodGithub)
}

func (h *Handler) fetchGithubLogin(c *gin.Context, token *oauth2.Token) (string, error) {
	client := h.oauth.Client(c.Request.Context(), token)
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github user: unexpected status %d", resp.StatusCode)
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decode github user: %w", err)
	}
	if user.Login == "" {
		return "", fmt.Errorf("github user: empty login")
	}
	return user.Login, nil
}

// Logout invalidates the session and returns to the sign-in page.
func (h *Handler) Logout(c *gin.Context) {
	d := services.NewDashboard(h.store, auth.Load(c))
	user := d.Session().User
	d.SignOut()
	if err := auth.Save(c, d.Session()); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to clear session", "error", err)
	}
	if user != "" {
		slog.InfoContext(c.Request.Context(), "operator signed out", "user", user)
	}
	c.Redirect(http.StatusFound, "/admin")
}
