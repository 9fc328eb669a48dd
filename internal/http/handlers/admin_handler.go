package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/http/middleware"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/services"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

type AdminHandler struct {
	admin *services.AdminService
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondList(c, len(users), users)
}

func (h *AdminHandler) ListTasks(c *gin.Context) {
	tasks, err := h.admin.ListTasks(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondList(c, len(tasks), tasks)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), caller, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, gin.H{})
}

func (h *AdminHandler) ChangeUserRole(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil))
		return
	}

	var req ChangeRoleRequest
	if !BindJSON(c, &req) {
		return
	}

	updated, err := h.admin.ChangeUserRole(c.Request.Context(), caller, c.Param("id"), req.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondOK(c, updated)
}
