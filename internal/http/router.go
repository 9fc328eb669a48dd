package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/config"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/http/handlers"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/http/middleware"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/services"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

type Dependencies struct {
	Config       *config.Config
	Logger       *slog.Logger
	Tokens       middleware.TokenVerifier
	Users        middleware.UserResolver
	AuthService  *services.AuthService
	TaskService  *services.TaskService
	AdminService *services.AdminService
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(deps.AuthService)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)
	adminHandler := handlers.NewAdminHandler(deps.AdminService)

	requireAuth := middleware.Auth(deps.Tokens, deps.Users)

	router.GET("/healthz", handlers.Health)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		authProtected := authGroup.Group("")
		authProtected.Use(requireAuth)
		authProtected.GET("/me", authHandler.Me)
		authProtected.PUT("/profile", authHandler.UpdateProfile)
		authProtected.PUT("/change-password", authHandler.ChangePassword)

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		// stats before :id, so "stats" is never read as a task ID
		tasks.GET("/stats", taskHandler.Stats)
		tasks.GET("/:id", taskHandler.GetByID)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)

		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireRole(models.RoleAdmin))
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/tasks", adminHandler.ListTasks)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.PUT("/users/:id/role", adminHandler.ChangeUserRole)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "route not found", nil))
	})

	return router
}
