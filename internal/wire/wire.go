package wire

import (
	"Mingle/internal/api"
	"Mingle/internal/api/handler"
	"Mingle/internal/job"
	"Mingle/internal/pkg/cron"
	"Mingle/internal/repository"
	"Mingle/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	actionRepo := repository.NewPostActionRepo(db)
	followRepo := repository.NewUserFollowRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	tagRepo := repository.NewTagRepo(db)

	smsService := service.NewSmsService()
	userService := service.NewUserService(userRepo, smsService)
	postService := service.NewPostService(db, postRepo, userRepo, actionRepo, followRepo, tagRepo)
	postActionService := service.NewPostActionService(db)
	commentService := service.NewCommentService(db, commentRepo, postRepo, actionRepo, userRepo)
	userFollowService := service.NewUserFollowService(db, followRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	tagService := service.NewTagService(tagRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService, smsService),
		UserFollowHandler:   handler.NewUserFollowHandler(userFollowService),
		PostHandler:         handler.NewPostHandler(postService),
		PostActionHandler:   handler.NewPostActionHandler(postActionService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		TagHandler:          handler.NewTagHandler(tagService),
		MediaHandler:        handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	reconcileJob := job.NewCounterReconcileJob(postRepo, commentRepo, actionRepo, userRepo, followRepo)
	cronMgr := cron.NewCronManager(reconcileJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
