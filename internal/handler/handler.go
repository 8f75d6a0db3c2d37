// Package handler wires HTTP requests to the services. Every handler is the
// same short sequence: authenticate (middleware), bind and validate on POST,
// mutate and redirect with a flash notice on success, re-render with field
// errors on failure, gather view-data on GET.
package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/internal/middleware"
	"github.com/spendwise/internal/session"
	"github.com/spendwise/pkg/response"
)

const (
	flashCookieName = "spendwise_flash"
	flashCookieAge  = int(10 * time.Minute / time.Second)
	flashKeyContext = "flash_key"
)

// flashKey returns the browser's flash queue key, minting one and setting
// the cookie if this browser has none yet. The key is separate from the
// session so notices survive login and logout boundaries. A minted key is
// cached in the gin context so that storing and popping within the same
// request use the same key.
func flashKey(c *gin.Context) string {
	if key, ok := c.Get(flashKeyContext); ok {
		return key.(string)
	}
	if key, err := c.Cookie(flashCookieName); err == nil && key != "" {
		c.Set(flashKeyContext, key)
		return key
	}
	key := session.NewFlashKey()
	c.Set(flashKeyContext, key)
	c.SetCookie(flashCookieName, key, flashCookieAge, "/", "", false, true)
	return key
}

func addFlash(c *gin.Context, sessions *session.Manager, message, level string) {
	err := sessions.AddFlash(c.Request.Context(), flashKey(c), session.Flash{
		Message: message,
		Level:   level,
	})
	if err != nil {
		middleware.LogError("failed to store flash notice: %v", err)
	}
}

func popFlashes(c *gin.Context, sessions *session.Manager) []session.Flash {
	flashes, err := sessions.PopFlashes(c.Request.Context(), flashKey(c))
	if err != nil {
		middleware.LogError("failed to read flash notices: %v", err)
		return nil
	}
	return flashes
}

// render draws a page with the ambient view-data every template expects:
// title, pending flash notices and the authenticated user, if any.
func render(c *gin.Context, sessions *session.Manager, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["flashes"] = popFlashes(c, sessions)
	data["authenticated"] = middleware.Authenticated(c)
	data["username"] = middleware.GetUsername(c)
	response.HTML(c, status, name, data)
}

// fail logs a hard failure and renders the 500 page
func fail(c *gin.Context, err error) {
	middleware.LogError("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	response.InternalError(c)
}

// safeNext keeps post-login redirects on this site. Anything that is not a
// relative path falls back to the dashboard.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/dashboard"
	}
	return next
}

