package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthPageRequired guards HTML pages: without a valid session the browser is
// sent to the login page instead of getting a JSON 401.
func AuthPageRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session(c) != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
