package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/HimanshuNaik19/Blog-Platform/auth"
	"github.com/HimanshuNaik19/Blog-Platform/config"
	"github.com/HimanshuNaik19/Blog-Platform/controllers"
	"github.com/HimanshuNaik19/Blog-Platform/middleware"
	"github.com/HimanshuNaik19/Blog-Platform/repository"
	"github.com/HimanshuNaik19/Blog-Platform/storage"
	"github.com/HimanshuNaik19/Blog-Platform/utils"
)

// SetupRouter wires routes, middlewares, and controllers. The db backs the
// identity provider; the store backs the post and comment repositories.
func SetupRouter(db *gorm.DB, store storage.Adapter) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authSvc := auth.NewService(db)
	postRepo := repository.NewStorePostRepository(store)
	commentRepo := repository.NewStoreCommentRepository(store)

	authController := controllers.NewAuthController(authSvc)
	postController := controllers.NewPostController(postRepo)
	commentController := controllers.NewCommentController(commentRepo)
	collectionController := controllers.NewCollectionController(store)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/verify", middleware.AuthRequired(authSvc), authController.Verify)
	authGroup.GET("/me", middleware.AuthRequired(authSvc), authController.Verify)
	authGroup.POST("/logout", middleware.AuthRequired(authSvc), authController.Logout)

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.GET("/comments/:postId", commentController.ListComments)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(authSvc), middleware.RateLimitMiddleware())
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/comments/:postId", commentController.AddComment)
	protected.PATCH("/users/:id/role", authController.UpdateRole)
	protected.GET("/collections/:key", collectionController.GetCollection)
	protected.PUT("/collections/:key", collectionController.PutCollection)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
