package route

import (
	"pdf-voice/backend/api/handler"
	"pdf-voice/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(route *gin.Engine, h *handler.Handler, critical gin.HandlerFunc) {
	apiRouter := route.Group("/api")
	{
		apiRouter.GET("/status", h.GetStatus)
		apiRouter.POST("/auth/token", critical, h.PostToken)

		authRoute := apiRouter.Group("/")
		authRoute.Use(middleware.JWTAuth(h.Tokens))
		{
			authRoute.POST("/auth/logout", h.PostAPILogout)
			authRoute.GET("/files", h.ListFilesAPI)
			authRoute.POST("/files", h.UploadFileAPI)
			authRoute.DELETE("/files/:name", h.DeleteFileAPI)
			authRoute.POST("/files/:name/convert", h.ConvertFileAPI)
			authRoute.GET("/audio/:name", h.GetAudio)
		}
	}
}
