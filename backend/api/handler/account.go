package handler

import (
	"errors"
	"net/http"

	"pdf-voice/backend/common"
	pverrors "pdf-voice/backend/common/errors"
	"pdf-voice/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) GetInit(c *gin.Context) {
	h.render(c, "init.html", page{Title: "Welcome"})
}

func (h *Handler) GetSignup(c *gin.Context) {
	h.render(c, "signup.html", page{Title: "Sign up"})
}

func (h *Handler) PostSignup(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirmation := c.PostForm("confirmation")

	switch {
	case username == "":
		flashCode(c, common.FlashWarning, pverrors.ErrUsernameMissing, "/signup")
		return
	case password == "":
		flashCode(c, common.FlashWarning, pverrors.ErrPasswordMissing, "/signup")
		return
	case confirmation == "" || password != confirmation:
		flashCode(c, common.FlashWarning, pverrors.ErrConfirmationFailed, "/signup")
		return
	}

	id, err := h.Credentials.Register(c.Request.Context(), username, password)
	if errors.Is(err, service.ErrDuplicateUsername) {
		flashCode(c, common.FlashWarning, pverrors.ErrUsernameTaken, "/signup", username)
		return
	}
	if err != nil {
		flashError(c, err, "/signup")
		return
	}

	common.Logger().Info("user registered", zap.Int64("user_id", id), zap.String("username", username))
	h.Notifier.SendWelcome(username, c.PostForm("email"))
	flashCode(c, common.FlashSuccess, pverrors.MsgRegistered, "/login")
}

func (h *Handler) GetLogin(c *gin.Context) {
	h.render(c, "login.html", page{Title: "Log in"})
}

func (h *Handler) PostLogin(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" {
		flashCode(c, common.FlashWarning, pverrors.ErrUsernameMissing, "/login")
		return
	}
	if password == "" {
		flashCode(c, common.FlashWarning, pverrors.ErrPasswordMissing, "/login")
		return
	}

	id, err := h.Credentials.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		flashError(c, err, "/login")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(common.SessionUserID, id)
	session.Set(common.SessionUsername, username)
	if err := session.Save(); err != nil {
		flashError(c, err, "/login")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		common.SysError("failed to clear session: " + err.Error())
	}
	c.Redirect(http.StatusFound, "/init")
}

func (h *Handler) GetChangePassword(c *gin.Context) {
	h.render(c, "change_password.html", page{Title: "Change password"})
}

func (h *Handler) PostChangePassword(c *gin.Context) {
	err := h.Credentials.ChangePassword(c.Request.Context(), userID(c),
		c.PostForm("old_pswd"), c.PostForm("new_pswd"), c.PostForm("confirmation"))
	if err != nil {
		flashError(c, err, "/change_password")
		return
	}
	flashCode(c, common.FlashSuccess, pverrors.MsgPasswordUpdated, "/")
}
