package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/http/middleware"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/services"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

// Cost and hours are pointers so that an explicit zero passes the
// required check.
type CreateTaskRequest struct {
	Title          string   `json:"title" binding:"required,max=100"`
	Description    string   `json:"description" binding:"required,max=500"`
	Cost           *float64 `json:"cost" binding:"required,gte=0"`
	HoursEstimated *float64 `json:"hoursEstimated" binding:"required,gte=0"`
}

// UpdateTaskRequest has no owner field, so an ownerId in the body is
// dropped before it can reach the service.
type UpdateTaskRequest struct {
	Title          *string  `json:"title" binding:"omitempty,max=100"`
	Description    *string  `json:"description" binding:"omitempty,max=500"`
	Cost           *float64 `json:"cost" binding:"omitempty,gte=0"`
	HoursEstimated *float64 `json:"hoursEstimated" binding:"omitempty,gte=0"`
	Completed      *bool    `json:"completed"`
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	var req CreateTaskRequest
	if !BindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), user, services.TaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Cost:           *req.Cost,
		HoursEstimated: *req.HoursEstimated,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondList(c, len(tasks), tasks)
}

func (h *TaskHandler) Stats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	stats, err := h.tasks.Stats(c.Request.Context(), user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, stats)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	var req UpdateTaskRequest
	if !BindJSON(c, &req) {
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), user, c.Param("id"), services.TaskUpdate{
		Title:          req.Title,
		Description:    req.Description,
		Cost:           req.Cost,
		HoursEstimated: req.HoursEstimated,
		Completed:      req.Completed,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{})
}
