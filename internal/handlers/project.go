package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/dto"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/services"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

type ProjectHandler struct {
	projects *services.ProjectService
	opts     Options
}

func NewProjectHandler(projects *services.ProjectService, opts Options) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		opts:     opts,
	}
}

// ListProjects returns the caller's projects, as a page when paginated=true
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, _, ok := requestContext(c, false)
	if !ok {
		return
	}

	paginated, err := utils.IsPaginated(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid paginated flag")
		return
	}

	if !paginated {
		summaries, err := h.projects.List(c.Request.Context(), user)
		if err != nil {
			respondServiceError(c, err, h.opts)
			return
		}
		c.JSON(http.StatusOK, dto.ToProjectDTOs(summaries))
		return
	}

	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	page, err := h.projects.ListPaginated(c.Request.Context(), user, params.Page, params.Size)
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectPage(page))
}

// GetProject returns one project with its progress
func (h *ProjectHandler) GetProject(c *gin.Context) {
	user, id, ok := requestContext(c, true)
	if !ok {
		return
	}

	summary, err := h.projects.Get(c.Request.Context(), user, id)
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*summary))
}

// CreateProject creates a project owned by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, _, ok := requestContext(c, false)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.projects.Create(c.Request.Context(), user, services.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectDTO(*summary))
}

// UpdateProject replaces title and description
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, id, ok := requestContext(c, true)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.projects.Update(c.Request.Context(), user, id, services.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*summary))
}

// DeleteProject deletes a project and all of its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	user, id, ok := requestContext(c, true)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), user, id); err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.Status(http.StatusNoContent)
}
