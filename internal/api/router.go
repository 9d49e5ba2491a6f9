package api

import (
	"github.com/becketto/xscheduler/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {

	router := gin.Default()
	docs.SwaggerInfo.BasePath = "/api"

	apiRoutes := router.Group("/api")
	{
		apiRoutes.POST("/posts", h.schedulePostsHandler)
		apiRoutes.GET("/posts", h.listPostsHandler)
		apiRoutes.GET("/posts/completed", h.getCompletedPostsHandler)
		apiRoutes.DELETE("/posts/:id", h.deletePostHandler)
		apiRoutes.POST("/posts/clear-completed", h.clearCompletedHandler)
		apiRoutes.POST("/accounts/:id/credentials", h.connectAccountHandler)
		apiRoutes.GET("/quota", h.getQuotaHandler)
		apiRoutes.PUT("/dispatch/toggle-job", h.toggleDispatchJobHandler)
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
