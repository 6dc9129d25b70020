package middleware

import (
	"net/http"
	"strings"

	"pdf-voice/backend/common"
	pverrors "pdf-voice/backend/common/errors"
	"pdf-voice/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	KeyUserID   = "id"
	KeyUsername = "username"
	KeyToken    = "token"
)

// UserAuth guards HTML pages. Visitors without a session are sent to /init.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, ok := session.Get(common.SessionUserID).(int64)
		if !ok || id == 0 {
			c.Redirect(http.StatusFound, "/init")
			c.Abort()
			return
		}
		username, _ := session.Get(common.SessionUsername).(string)
		c.Set(KeyUserID, id)
		c.Set(KeyUsername, username)
		c.Next()
	}
}

// JWTAuth guards the JSON API with a bearer token.
func JWTAuth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespErrorCode(c, http.StatusUnauthorized, pverrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			common.RespErrorStr(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(c.Request.Context(), parts[1])
		if err != nil {
			common.RespErrorCode(c, http.StatusUnauthorized, pverrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUsername, claims.Username)
		c.Set(KeyToken, parts[1])
		c.Next()
	}
}

// CurrentUserID returns the id set by UserAuth or JWTAuth.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(KeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
