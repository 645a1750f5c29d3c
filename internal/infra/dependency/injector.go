// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/productivity-app/backend/config"
	"github.com/productivity-app/backend/internal/application/adapter"
	"github.com/productivity-app/backend/internal/application/usecase/auth"
	"github.com/productivity-app/backend/internal/application/usecase/buddy"
	"github.com/productivity-app/backend/internal/application/usecase/checkpoint"
	"github.com/productivity-app/backend/internal/application/usecase/goal"
	"github.com/productivity-app/backend/internal/application/usecase/suggestion"
	"github.com/productivity-app/backend/internal/application/usecase/user"
	"github.com/productivity-app/backend/internal/infra/server/router"
	"github.com/productivity-app/backend/internal/integration/adapters"
	"github.com/productivity-app/backend/internal/integration/cache"
	"github.com/productivity-app/backend/internal/integration/email"
	"github.com/productivity-app/backend/internal/integration/email/templates"
	"github.com/productivity-app/backend/internal/integration/entrypoint/controller"
	"github.com/productivity-app/backend/internal/integration/entrypoint/middleware"
	"github.com/productivity-app/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case logout cannot revoke tokens early.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	checkpointRepo := persistence.NewCheckpointRepository(db)
	buddyRepo := persistence.NewBuddyRequestRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	var denylist adapter.TokenDenylist
	if redisClient != nil {
		denylist = cache.NewTokenDenylist(redisClient)
	}
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpiry, denylist)
	geminiService := adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		sender = email.NewLogSender()
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create auth and user use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getUserUseCase := user.NewGetUserUseCase(userRepo)
	updateUserUseCase := user.NewUpdateUserUseCase(userRepo)
	deleteUserUseCase := user.NewDeleteUserUseCase(userRepo, tokenService)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, userRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	completeGoalUseCase := goal.NewCompleteGoalUseCase(goalRepo)
	suggestUseCase := suggestion.NewSuggestCheckpointsUseCase(goalRepo, checkpointRepo, geminiService)

	// Create checkpoint use cases
	listCheckpointsUseCase := checkpoint.NewListCheckpointsUseCase(checkpointRepo, goalRepo)
	createCheckpointUseCase := checkpoint.NewCreateCheckpointUseCase(checkpointRepo, goalRepo)
	updateCheckpointUseCase := checkpoint.NewUpdateCheckpointUseCase(checkpointRepo, goalRepo)
	deleteCheckpointUseCase := checkpoint.NewDeleteCheckpointUseCase(checkpointRepo, goalRepo)

	// Create buddy use cases
	listRequestsUseCase := buddy.NewListRequestsUseCase(buddyRepo)
	sendRequestUseCase := buddy.NewSendRequestUseCase(buddyRepo, userRepo, emailService)
	respondRequestUseCase := buddy.NewRespondRequestUseCase(buddyRepo, userRepo, emailService)

	// Create controllers
	healthController := controller.NewHealthController(databaseChecker(db), redisChecker(redisClient))
	authController := controller.NewAuthController(registerUseCase, loginUseCase, logoutUseCase)
	userController := controller.NewUserController(getUserUseCase, updateUserUseCase, deleteUserUseCase)
	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		completeGoalUseCase,
		suggestUseCase,
	)
	checkpointController := controller.NewCheckpointController(
		listCheckpointsUseCase,
		createCheckpointUseCase,
		updateCheckpointUseCase,
		deleteCheckpointUseCase,
	)
	buddyController := controller.NewBuddyController(listRequestsUseCase, sendRequestUseCase, respondRequestUseCase)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter()
	if cfg.Server.Environment == "test" {
		loginRateLimiter.Disable()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		goalController,
		checkpointController,
		buddyController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}

func databaseChecker(db *gorm.DB) controller.HealthChecker {
	return func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}
}

func redisChecker(client *redis.Client) controller.HealthChecker {
	if client == nil {
		return nil
	}
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(ctx).Err() == nil
	}
}
