package middleware

import (
	"net/http"
	"net/url"

	"librarium/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "librarium_session"

// CurrentUser resolves the session cookie into request identity. It never
// rejects: anonymous requests simply carry no identity and the Require*
// middlewares downstream decide what that means per flow.
func CurrentUser(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			// expired or tampered cookie, treat as anonymous
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// RequireAuthPage guards page (GET) flows: anonymous visitors are redirected
// to the login page with a return path back to where they were headed.
func RequireAuthPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("userID"); !ok {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/login/?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthAction guards action (POST) flows: anonymous requests get 403
// rather than a redirect. The asymmetry with RequireAuthPage is intended; a
// POST has nowhere sensible to come back to after logging in.
func RequireAuthAction() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("userID"); !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
