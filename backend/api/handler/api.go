package handler

import (
	"net/http"
	"strings"

	"pdf-voice/backend/api/middleware"
	"pdf-voice/backend/common"
	pverrors "pdf-voice/backend/common/errors"
	"pdf-voice/backend/common/i18n"

	"github.com/gin-gonic/gin"
)

type tokenRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=64"`
	Password string `json:"password" form:"password" validate:"required,max=128"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type conversionResponse struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	AudioFile string `json:"audio_file"`
	AudioURL  string `json:"audio_url"`
	Cached    bool   `json:"cached"`
}

// PostToken exchanges username and password for a bearer token.
func (h *Handler) PostToken(c *gin.Context) {
	lang := c.GetString("lang")
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.InvalidParamError(lang, err.Error()).Msg)
		return
	}
	if err := common.Validate.Struct(&req); err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, i18n.InvalidParamError(lang, err.Error()).Msg)
		return
	}

	id, err := h.Credentials.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respError(c, err)
		return
	}
	token, err := h.Tokens.Issue(id, req.Username)
	if err != nil {
		respError(c, err)
		return
	}
	common.RespSuccess(c, tokenResponse{Token: token, ExpiresIn: int64(common.JWTExpiry.Seconds())})
}

// PostAPILogout revokes the bearer token of the request.
func (h *Handler) PostAPILogout(c *gin.Context) {
	if err := h.Tokens.Revoke(c.Request.Context(), c.GetString(middleware.KeyToken)); err != nil {
		respError(c, err)
		return
	}
	common.RespSuccess(c, nil)
}

func (h *Handler) ListFilesAPI(c *gin.Context) {
	files, err := h.Files.ListFiles(c.Request.Context(), userID(c))
	if err != nil {
		respError(c, err)
		return
	}
	common.RespSuccess(c, files)
}

func (h *Handler) UploadFileAPI(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		common.RespErrorCode(c, http.StatusBadRequest, pverrors.ErrNoFileChosen)
		return
	}
	name, err := h.Uploader.SaveMultipart(c.Request.Context(), userID(c), header)
	if err != nil {
		respError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.APIResponse{
		Success: true,
		Message: i18n.Translate(pverrors.MsgUploaded, c.GetString("lang")),
		Data:    gin.H{"filename": name},
	})
}

func (h *Handler) DeleteFileAPI(c *gin.Context) {
	if err := h.Files.RemoveFile(c.Request.Context(), userID(c), fileParam(c)); err != nil {
		respError(c, err)
		return
	}
	common.RespSuccessStr(c, i18n.Translate(pverrors.MsgRemoved, c.GetString("lang")))
}

func (h *Handler) ConvertFileAPI(c *gin.Context) {
	conv, err := h.Converter.Convert(c.Request.Context(), userID(c), fileParam(c))
	if err != nil {
		respError(c, err)
		return
	}
	common.RespSuccess(c, conversionResponse{
		Filename:  conv.Filename,
		Text:      conv.Text,
		AudioFile: conv.AudioFile,
		AudioURL:  "/api" + audioURL(conv.AudioFile),
		Cached:    conv.Cached,
	})
}

func (h *Handler) GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"version":       common.Version,
		"system_name":   common.SystemName,
		"start_time":    common.StartTime,
		"redis_enabled": common.RedisEnabled,
		"mail_enabled":  common.MailEnabled(),
		"max_upload_mb": common.MaxUploadMB,
	})
}

// Healthz reports whether the database answers.
func (h *Handler) Healthz(c *gin.Context) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fileParam decodes the :name path segment.
func fileParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("name"), "/")
}
