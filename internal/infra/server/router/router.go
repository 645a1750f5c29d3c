// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/productivity-app/backend/internal/integration/entrypoint/controller"
	"github.com/productivity-app/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	userController       *controller.UserController
	goalController       *controller.GoalController
	checkpointController *controller.CheckpointController
	buddyController      *controller.BuddyController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	goalController *controller.GoalController,
	checkpointController *controller.CheckpointController,
	buddyController *controller.BuddyController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		userController:       userController,
		goalController:       goalController,
		checkpointController: checkpointController,
		buddyController:      buddyController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.engine.GET("/health", r.healthController.Check)
	r.setupUserRoutes()
	r.setupGoalRoutes()
	r.setupCheckpointRoutes()
	r.setupBuddyRoutes()

	return r.engine
}

func (r *Router) setupUserRoutes() {
	users := r.engine.Group("/users")
	{
		users.POST("/register", r.authController.Register)
		users.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
	}

	authed := users.Group("")
	authed.Use(r.authMiddleware.Authenticate())
	{
		authed.POST("/logout", r.authController.Logout)
		authed.GET("/:id", r.userController.Get)
		authed.PUT("/:id", r.userController.Update)
		authed.DELETE("/:id", r.userController.Delete)
	}
}

// Creation is POST /goals/:id where id names the owning user; every POST under
// /goals shares the :id wildcard.
func (r *Router) setupGoalRoutes() {
	goals := r.engine.Group("/goals")
	goals.Use(r.authMiddleware.Authenticate())
	{
		goals.GET("/user/:userId", r.goalController.ListByUser)
		goals.POST("/:id", r.goalController.Create)
		goals.GET("/:id", r.goalController.Get)
		goals.PUT("/:id", r.goalController.Update)
		goals.DELETE("/:id", r.goalController.Delete)
		goals.POST("/:id/complete", r.goalController.Complete)
		goals.POST("/:id/suggestions", r.goalController.Suggest)
	}
}

func (r *Router) setupCheckpointRoutes() {
	checkpoints := r.engine.Group("/checkpoints")
	checkpoints.Use(r.authMiddleware.Authenticate())
	{
		checkpoints.GET("", r.checkpointController.List)
		checkpoints.POST("", r.checkpointController.Create)
		checkpoints.PUT("/:id", r.checkpointController.Update)
		checkpoints.DELETE("/:id", r.checkpointController.Delete)
	}
}

func (r *Router) setupBuddyRoutes() {
	buddies := r.engine.Group("/buddies")
	buddies.Use(r.authMiddleware.Authenticate())
	{
		buddies.GET("", r.buddyController.List)
		buddies.POST("", r.buddyController.Create)
		buddies.PUT("/:id", r.buddyController.Update)
		buddies.GET("/pending/:userId", r.buddyController.Pending)
		buddies.GET("/sent/:userId", r.buddyController.Sent)
		buddies.GET("/accepted/:userId", r.buddyController.Accepted)
	}
}
