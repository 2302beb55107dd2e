package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
)

// TokenVerifier checks a bearer token and returns the email it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth checks the Authorization bearer token
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			apierrors.Unauthorized(c, "")
			return
		}

		email, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			return
		}

		// Store the principal for the identity lookup further down the chain
		c.Set(constants.ContextKeyPrincipal, email)
		c.Next()
	}
}

// GetPrincipal retrieves the verified email from context
func GetPrincipal(c *gin.Context) (string, bool) {
	email := c.GetString(constants.ContextKeyPrincipal)
	return email, email != ""
}
