package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sakilait22310750/skillsync/pkg/helpers"
	"github.com/sakilait22310750/skillsync/pkg/response"
)

// IdentityKey is where the verified token subject lands in the gin context.
const IdentityKey = "userEmail"

// Auth requires a valid Bearer token. Every failure mode, missing header,
// malformed header, bad signature, expired token, gets the same 401 body.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		identity, err := jwt.Verify(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// Identity returns the authenticated identity set by Auth.
func Identity(c *gin.Context) string {
	return c.GetString(IdentityKey)
}
