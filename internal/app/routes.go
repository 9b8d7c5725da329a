package app

import (
	"github.com/gin-gonic/gin"
	"github.com/inkstone/core/internal/middleware"
	"github.com/inkstone/core/internal/modules/auth/user"
	"github.com/inkstone/core/internal/modules/content/category"
	"github.com/inkstone/core/internal/modules/content/comment"
	"github.com/inkstone/core/internal/modules/content/post"
	"github.com/inkstone/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db

	authMW := middleware.Auth(db, a.signer)
	optionalMW := middleware.OptionalAuth(db, a.signer)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(optionalMW, middleware.RateLimit(a.rc.Raw()))

	userSvc := user.NewService(db, a.signer, a.cfg.BcryptCost, a.cfg.FirstUserIsAdmin, a.logger.Named("user"))
	catSvc := category.NewService(db, a.logger.Named("category"))
	commentSvc := comment.NewService(db)
	postSvc := post.NewService(db, catSvc, a.logger.Named("post"))

	user.NewHandler(userSvc).RegisterRoutes(api, authMW)
	category.NewHandler(catSvc).RegisterRoutes(api, authMW)
	post.NewHandler(postSvc, commentSvc).RegisterRoutes(api, authMW, optionalMW)
}
