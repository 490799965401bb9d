package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/StellaShiina/inventory-ui/auth"
)

// Context keys set once a session is accepted.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

var errNoSession = errors.New("no session cookie")

// session reads and verifies the token cookie. On success the user id and
// name are stored on the context.
func session(c *gin.Context) error {
	token, err := auth.GetTokenFromCookie(c)
	if err != nil || token == "" {
		return errNoSession
	}
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return err
	}
	c.Set(UserIDKey, claims.UserID)
	c.Set(UsernameKey, claims.Username)
	return nil
}

// AuthRequired guards the JSON API: requests without a valid session get a
// 401 body the client can show.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := session(c); err != nil {
			msg := "Invalid or expired session"
			if errors.Is(err, errNoSession) {
				msg = "Not authenticated"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Next()
	}
}

// UserID returns the id of the session user.
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}

// RedirectIfAuthenticated sends signed-in users to the dashboard
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session(c) != nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, "/dashboard")
		c.Abort()
	}
}
