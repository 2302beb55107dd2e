package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
)

// RequireIDParam parses the :id route parameter as a positive integer that
// fits a signed 64-bit column
func RequireIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 63)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid ID")
			return
		}

		c.Set(constants.ContextKeyResourceID, id)
		c.Next()
	}
}

// GetIDParam retrieves the id parsed by RequireIDParam
func GetIDParam(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyResourceID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint64)
	return id, ok
}
