package route

import (
	"pdf-voice/backend/api/handler"
	"pdf-voice/backend/api/middleware"
	"pdf-voice/backend/common"
	"pdf-voice/backend/web"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

func setWebRouter(route *gin.Engine, h *handler.Handler, critical gin.HandlerFunc) error {
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	route.SetHTMLTemplate(tmpl)
	route.Use(static.Serve("/static", common.EmbedFolder(web.StaticFS, "static")))

	route.GET("/init", h.GetInit)
	route.GET("/signup", h.GetSignup)
	route.POST("/signup", critical, h.PostSignup)
	route.GET("/login", h.GetLogin)
	route.POST("/login", critical, h.PostLogin)
	route.GET("/logout", h.Logout)

	userRoute := route.Group("/")
	userRoute.Use(middleware.UserAuth())
	{
		userRoute.GET("/", h.GetIndex)
		userRoute.POST("/", h.PostIndex)
		userRoute.GET("/change_password", h.GetChangePassword)
		userRoute.POST("/change_password", h.PostChangePassword)
		userRoute.GET("/upload", h.GetUpload)
		userRoute.POST("/upload", h.PostUpload)
		userRoute.GET("/remove", h.GetRemove)
		userRoute.POST("/remove", h.PostRemove)
		userRoute.GET("/audio/:name", h.GetAudio)
	}
	return nil
}
