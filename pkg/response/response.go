// Package response holds the small set of response helpers shared by all
// page handlers: template rendering, redirects and JSON payloads for the
// charting consumer.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTML renders a named template with the given view data
func HTML(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, data)
}

// Redirect sends a 302 redirect to location
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// JSON sends a JSON payload (chart data endpoints)
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// InternalError renders the generic failure page. Store connectivity
// problems end up here; everything else is surfaced as a field error or
// flash notice.
func InternalError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"title": "Something went wrong",
	})
}
