package middleware

import (
	"context"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/services"
)

// IdentityResolver maps a principal to its account.
type IdentityResolver interface {
	Resolve(ctx context.Context, email string) (*models.User, error)
}

// LoadCurrentUser resolves the authenticated principal to a user record and
// stores it in context. Must run after RequireAuth.
func LoadCurrentUser(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetPrincipal(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), email)
		if err != nil {
			// A valid token for a vanished account is a server-side inconsistency
			if errors.Is(err, services.ErrIdentityInconsistency) {
				log.Printf("[%s] no account for authenticated principal %q", c.GetString(constants.ContextKeyRequestID), email)
			} else {
				log.Printf("[%s] failed to resolve principal: %v", c.GetString(constants.ContextKeyRequestID), err)
			}
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the user stored by LoadCurrentUser
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}
