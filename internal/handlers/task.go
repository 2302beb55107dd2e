package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tasks-api/internal/dto"
	apierrors "github.com/yukikurage/project-tasks-api/internal/errors"
	"github.com/yukikurage/project-tasks-api/internal/services"
	"github.com/yukikurage/project-tasks-api/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
	opts  Options
}

func NewTaskHandler(tasks *services.TaskService, opts Options) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		opts:  opts,
	}
}

// ListTasks returns the tasks of a project, newest first.
// With paginated=true it also honors page, size, search and completed.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, projectID, ok := requestContext(c, true)
	if !ok {
		return
	}

	paginated, err := utils.IsPaginated(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid paginated flag")
		return
	}

	if !paginated {
		tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID, user)
		if err != nil {
			respondServiceError(c, err, h.opts)
			return
		}
		c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
		return
	}

	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	completed, err := utils.OptionalBoolQuery(c, "completed")
	if err != nil {
		apierrors.BadRequest(c, "Invalid completed filter")
		return
	}

	page, err := h.tasks.ListByProjectPaginated(c.Request.Context(), projectID, user, services.TaskQuery{
		Page:      params.Page,
		Size:      params.Size,
		Search:    c.Query("search"),
		Completed: completed,
	})
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskPage(page))
}

// CreateTask adds a task to a project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, projectID, ok := requestContext(c, true)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), projectID, user, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	user, taskID, ok := requestContext(c, true)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), taskID, user)
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask overwrites title and description; due_date only when present
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, taskID, ok := requestContext(c, true)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), taskID, user, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTaskStatus sets the completed flag from the query string
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	user, taskID, ok := requestContext(c, true)
	if !ok {
		return
	}

	completed, err := strconv.ParseBool(c.Query("completed"))
	if err != nil {
		apierrors.BadRequest(c, "Query parameter completed must be true or false")
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), taskID, user, completed)
	if err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, taskID, ok := requestContext(c, true)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID, user); err != nil {
		respondServiceError(c, err, h.opts)
		return
	}
	c.Status(http.StatusNoContent)
}
