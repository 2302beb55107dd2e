package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/constants"
	"github.com/yukikurage/project-tasks-api/internal/handlers"
	"github.com/yukikurage/project-tasks-api/internal/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Projects *handlers.ProjectHandler
	Tasks    *handlers.TaskHandler

	Tokens   middleware.TokenVerifier
	Identity middleware.IdentityResolver
}

// CORS allows the configured browser origins to call the API with a bearer token
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", constants.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", constants.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		config.AllowOrigins = nil
		config.AllowAllOrigins = true
	}
	return cors.New(config)
}

func Setup(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Tasks API is running",
		})
	})

	// Every protected route resolves the caller before reaching a handler
	authenticated := []gin.HandlerFunc{
		middleware.RequireAuth(h.Tokens),
		middleware.LoadCurrentUser(h.Identity),
	}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.GET("/me", append(authenticated, h.Auth.Me)...)
		}

		projects := api.Group("/projects", authenticated...)
		{
			projects.GET("", h.Projects.ListProjects)
			projects.POST("", h.Projects.CreateProject)
			projects.GET("/:id", middleware.RequireIDParam(), h.Projects.GetProject)
			projects.PUT("/:id", middleware.RequireIDParam(), h.Projects.UpdateProject)
			projects.DELETE("/:id", middleware.RequireIDParam(), h.Projects.DeleteProject)
			projects.GET("/:id/tasks", middleware.RequireIDParam(), h.Tasks.ListTasks)
			projects.POST("/:id/tasks", middleware.RequireIDParam(), h.Tasks.CreateTask)
		}

		tasks := api.Group("/tasks", authenticated...)
		{
			tasks.GET("/:id", middleware.RequireIDParam(), h.Tasks.GetTask)
			tasks.PUT("/:id", middleware.RequireIDParam(), h.Tasks.UpdateTask)
			tasks.PATCH("/:id/status", middleware.RequireIDParam(), h.Tasks.UpdateTaskStatus)
			tasks.DELETE("/:id", middleware.RequireIDParam(), h.Tasks.DeleteTask)
		}
	}
}
