package handler

import (
	"net/http"
	"net/url"

	"pdf-voice/backend/api/middleware"
	"pdf-voice/backend/common"
	"pdf-voice/backend/library/audiocache"
	"pdf-voice/backend/library/mail"
	"pdf-voice/backend/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler serves both the HTML pages and the JSON API.
type Handler struct {
	DB          *gorm.DB
	Credentials *service.CredentialStore
	Files       *service.FileRegistry
	Uploader    *service.Uploader
	Converter   *service.Converter
	Audio       *audiocache.Cache
	Tokens      *service.TokenService
	Notifier    *mail.Notifier
}

// page is the data every template receives.
type page struct {
	Title     string
	Username  string
	Flashes   []common.Flash
	Files     []string
	Filename  string
	FullText  string
	AudioFile string
	AudioURL  string
}

func (h *Handler) render(c *gin.Context, name string, p page) {
	p.Username = c.GetString(middleware.KeyUsername)
	p.Flashes = common.PopFlashes(c)
	c.HTML(http.StatusOK, name, p)
}

func userID(c *gin.Context) int64 {
	id, _ := middleware.CurrentUserID(c)
	return id
}

func audioURL(audioFile string) string {
	return "/audio/" + url.PathEscape(audioFile)
}
