// Package auth holds the operator session that gates the dashboard.
package auth

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Sign-in methods recorded on a session.
const (
	MethodPassword = "password"
	MethodGithub   = "github"
)

const (
	keyAuthenticated = "admin_authenticated"
	keyUser          = "user"
	keyMethod        = "method"
	keyIssuedAt      = "issued_at"
	keyExpiresAt     = "expires_at"
)

// Session is issued at sign-in and invalidated at sign-out or expiry.
type Session struct {
	Authenticated bool
	User          string
	Method        string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

func Issue(user, method string, ttl time.Duration, now time.Time) *Session {
	return &Session{
		Authenticated: true,
		User:          user,
		Method:        method,
		IssuedAt:      now,
		ExpiresAt:     now.Add(ttl),
	}
}

func (s *Session) Valid(now time.Time) bool {
	return s != nil && s.Authenticated && now.Before(s.ExpiresAt)
}

func (s *Session) Invalidate() {
	*s = Session{}
}

// Load reads the session from the request cookie. A missing or malformed
// cookie gives an unauthenticated session, never nil.
func Load(c *gin.Context) *Session {
	store := sessions.Default(c)

	flag, _ := store.Get(keyAuthenticated).(string)
	if flag != "true" {
		return &Session{}
	}
	user, _ := store.Get(keyUser).(string)
	method, _ := store.Get(keyMethod).(string)
	issued, _ := store.Get(keyIssuedAt).(int64)
	expires, _ := store.Get(keyExpiresAt).(int64)

	return &Session{
		Authenticated: true,
		User:          user,
		Method:        method,
		IssuedAt:      time.Unix(issued, 0),
		ExpiresAt:     time.Unix(expires, 0),
	}
}

// Save writes s to the cookie, or clears the cookie when s is not authenticated.
func Save(c *gin.Context, s *Session) error {
	store := sessions.Default(c)
	if s == nil || !s.Authenticated {
		store.Clear()
		return store.Save()
	}
	store.Set(keyAuthenticated, "true")
	store.Set(keyUser, s.User)
	store.Set(keyMethod, s.Method)
	store.Set(keyIssuedAt, s.IssuedAt.Unix())
	store.Set(keyExpiresAt, s.ExpiresAt.Unix())
	return store.Save()
}

func Clear(c *gin.Context) error {
	return Save(c, nil)
}
