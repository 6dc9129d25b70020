package common

import (
	"net/http"

	"pdf-voice/backend/common/i18n"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope of every JSON API answer.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "",
		Data:    data,
	})
}

func RespSuccessStr(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: msg,
	})
}

func RespErrorStr(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: msg,
	})
}

// RespErrorCode answers with the translated message for code in the
// request's language.
func RespErrorCode(c *gin.Context, statusCode int, code string, args ...interface{}) {
	RespErrorStr(c, statusCode, i18n.Translate(code, c.GetString("lang"), args...))
}
