package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/middleware"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"github.com/yukikurage/project-tasks-api/internal/services"
)

// Options tune how handlers render service errors.
type Options struct {
	// HideAccessDenied renders access-denied errors as 404 so no route
	// reveals that another user's project or task exists.
	HideAccessDenied bool
}

// respondServiceError maps a service error to an HTTP response.
func respondServiceError(c *gin.Context, err error, opts Options) {
	switch {
	case errors.Is(err, services.ErrIdentityInconsistency):
		log.Printf("[%s] %v", c.GetString(constants.ContextKeyRequestID), err)
		apierrors.InternalError(c, "")
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, notFoundMessage(err))
	case errors.Is(err, services.ErrAccessDenied):
		if opts.HideAccessDenied {
			apierrors.NotFound(c, notFoundMessage(err))
			return
		}
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrAccountTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, err.Error())
	default:
		log.Printf("[%s] unexpected error: %v", c.GetString(constants.ContextKeyRequestID), err)
		apierrors.InternalError(c, "")
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrProjectNotFound), errors.Is(err, services.ErrProjectAccessDenied):
		return "Project not found"
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrTaskAccessDenied):
		return "Task not found"
	default:
		return ""
	}
}

// requestContext returns the user and :id loaded by middleware, writing a
// 401 or 400 when the route was mounted without them.
func requestContext(c *gin.Context, needID bool) (*models.User, uint64, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, 0, false
	}
	if !needID {
		return user, 0, true
	}

	id, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid ID")
		return nil, 0, false
	}
	return user, id, true
}
