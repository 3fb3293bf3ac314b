package start

import (
	"fmt"
	"log"
	"time"

	"github.com/IDobkov90/ufc/config"
	"github.com/IDobkov90/ufc/internal/handler"
	"github.com/IDobkov90/ufc/internal/middleware"
	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetRoute(r *gin.Engine, httpHandler *handler.Handler, repos *repository.Repositories, rdb *redis.Client) {
	r.Use(middleware.CustomRecovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	publicGroup := r.Group("")
	{
		publicGroup.POST("/register", httpHandler.Register)
		publicGroup.POST("/login", httpHandler.Login)
		publicGroup.GET("/search", httpHandler.Search)
		publicGroup.GET("/categories", httpHandler.ListCategories)
		publicGroup.GET("/topics", httpHandler.ListTopics)
		publicGroup.GET("/topics/recent", httpHandler.RecentTopics)
		publicGroup.GET("/topics/:id", httpHandler.GetTopic)
		publicGroup.GET("/topics/:id/posts", httpHandler.ListTopicPosts)
		publicGroup.GET("/posts/:id", httpHandler.GetPost)
		publicGroup.GET("/posts/:id/comments", httpHandler.GetComments)
		publicGroup.GET("/users/:id/profile", httpHandler.GetProfile)
	}

	authGroup := r.Group("")
	authGroup.Use(middleware.AuthMiddleware())
	authGroup.Use(middleware.CheckStatus(repos.User))
	if rdb != nil {
		authGroup.Use(middleware.RateLimit(rdb, config.Setting.RateLimit.RequestsPerMinute))
	}
	{
		authGroup.PUT("/profile", httpHandler.UpdateProfile)
		authGroup.POST("/topics", httpHandler.CreateTopic)
		authGroup.DELETE("/topics/:id", httpHandler.DeleteTopic)
		authGroup.POST("/topics/:id/posts", httpHandler.CreatePost)
		authGroup.PUT("/posts/:id", httpHandler.UpdatePost)
		authGroup.DELETE("/posts/:id", httpHandler.DeletePost)
		authGroup.POST("/posts/:id/vote", httpHandler.VotePost)
		authGroup.POST("/posts/:id/comments", httpHandler.AddComment)
		authGroup.DELETE("/comments/:id", httpHandler.DeleteComment)
	}

	modGroup := authGroup.Group("/moderation")
	modGroup.Use(middleware.RequireRole(model.RoleModerator))
	{
		modGroup.POST("/topics/:id/pin", httpHandler.PinTopic)
		modGroup.POST("/topics/:id/unpin", httpHandler.UnpinTopic)
		modGroup.POST("/topics/:id/lock", httpHandler.LockTopic)
		modGroup.POST("/topics/:id/unlock", httpHandler.UnlockTopic)
	}

	adminGroup := authGroup.Group("/admin")
	adminGroup.Use(middleware.RequireRole(model.RoleAdmin))
	{
		adminGroup.GET("/stats", httpHandler.GetStats)
		adminGroup.POST("/reconcile", httpHandler.ReconcileCounters)
		adminGroup.POST("/ban/:id", httpHandler.BanUser)
		adminGroup.POST("/unban/:id", httpHandler.UnbanUser)
	}

	addr := config.Setting.Server.GetAddr()
	fmt.Println("start service on", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start service:", err)
	}
}
