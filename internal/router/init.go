package router

import (
	"github.com/sakilait22310750/skillsync/internal/application"
	"github.com/sakilait22310750/skillsync/internal/container"
	"github.com/sakilait22310750/skillsync/internal/infrastructure/mongodb"
	"github.com/sakilait22310750/skillsync/internal/infrastructure/postgres"
	handlers "github.com/sakilait22310750/skillsync/internal/interface/http"
	"github.com/sakilait22310750/skillsync/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup, after the container is filled.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	users := postgres.NewUserRepository(container.GetPGPool())
	posts := mongodb.NewPostRepository(container.GetMongoDB())
	plans := mongodb.NewLearningPlanRepository(container.GetMongoDB())
	progress := mongodb.NewLearningProgressRepository(container.GetMongoDB())

	authSvc := application.NewAuthService(users, jwt, container.GetRabbitPub(), logger)
	postSvc := application.NewPostService(
		posts,
		container.GetBlobStore(),
		users,
		container.GetRedis(),
		container.GetES(),
		cfg.ESPostsIndex,
		container.GetRabbitPub(),
		logger,
	)
	learningSvc := application.NewLearningService(plans, progress, users, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(authSvc, logger), jwt))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), jwt))
	r.Add(modules.NewLearningModule(handlers.NewLearningHandler(learningSvc, logger), jwt))
	r.Add(modules.NewDebugModule())
}
