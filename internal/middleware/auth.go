package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/pkg/response"
)

const (
	// ContextKeyUserID is the key for the authenticated user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the key for the authenticated username in gin context
	ContextKeyUsername = "username"
)

// LoadSession populates the request context from the session cookie when a
// valid, unrevoked token is present. A bad or revoked token leaves the
// request anonymous; pages that require auth stack RequireAuth on top.
// A session store outage is the one hard failure and renders the 500 page.
func LoadSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessions.CookieName())
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) || errors.Is(err, session.ErrNotFound) {
				c.Next()
				return
			}
			LogError("session store unavailable: %v", err)
			response.InternalError(c)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Next()
	}
}

// RequireAuth redirects unauthenticated browsers to the login page,
// carrying the originally requested URL so login can send them back.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Authenticated(c) {
			next := c.Request.URL.RequestURI()
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Authenticated reports whether the request carries a valid session
func Authenticated(c *gin.Context) bool {
	_, exists := c.Get(ContextKeyUserID)
	return exists
}

// GetUserID gets the authenticated user ID from the gin context
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	return userID.(uint)
}

// GetUsername gets the authenticated username from the gin context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get(ContextKeyUsername)
	if !exists {
		return ""
	}
	return username.(string)
}
