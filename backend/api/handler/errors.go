package handler

import (
	"errors"
	"net/http"

	"pdf-voice/backend/common"
	pverrors "pdf-voice/backend/common/errors"
	"pdf-voice/backend/common/i18n"
	"pdf-voice/backend/library/pdftext"
	"pdf-voice/backend/library/storage"
	"pdf-voice/backend/library/tts"
	"pdf-voice/backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// failure is an error translated for the user, with the HTTP status used by
// the API and the flash category used by the pages.
type failure struct {
	*i18n.I18nError
	Status   int
	Category string
}

func classify(c *gin.Context, err error) failure {
	lang := c.GetString("lang")
	f := func(status int, category string, code string, args ...interface{}) failure {
		return failure{I18nError: i18n.Wrap(err, code, lang, args...), Status: status, Category: category}
	}

	switch {
	case errors.Is(err, service.ErrEmptyUsername):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrUsernameMissing)
	case errors.Is(err, service.ErrEmptyPassword):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrPasswordMissing)
	case errors.Is(err, service.ErrPasswordTooShort):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrPasswordTooShort)
	case errors.Is(err, service.ErrPasswordComposition):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrPasswordComposition)
	case errors.Is(err, service.ErrInvalidCredentials):
		return f(http.StatusUnauthorized, common.FlashDanger, pverrors.ErrInvalidCredentials)
	case errors.Is(err, service.ErrOldPasswordMissing):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrOldPasswordMissing)
	case errors.Is(err, service.ErrIncorrectOldPassword):
		return f(http.StatusBadRequest, common.FlashDanger, pverrors.ErrOldPasswordIncorrect)
	case errors.Is(err, service.ErrNewPasswordMissing):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrNewPasswordMissing)
	case errors.Is(err, service.ErrConfirmationMissing):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrNewPasswordUnconfirmed)
	case errors.Is(err, service.ErrPasswordMismatch):
		return f(http.StatusBadRequest, common.FlashDanger, pverrors.ErrPasswordMismatch)
	case errors.Is(err, service.ErrNoFileChosen):
		return f(http.StatusBadRequest, common.FlashWarning, pverrors.ErrNoFileChosen)
	case errors.Is(err, service.ErrExtensionNotAllowed):
		return f(http.StatusBadRequest, common.FlashDanger, pverrors.ErrExtensionNotAllowed)
	case errors.Is(err, service.ErrInvalidFilename):
		return f(http.StatusBadRequest, common.FlashDanger, pverrors.ErrInvalidFilename, storage.MaxNameLen)
	case errors.Is(err, service.ErrNotPDF):
		return f(http.StatusBadRequest, common.FlashDanger, pverrors.ErrNotPDF)
	case errors.Is(err, service.ErrFileTooLarge):
		return f(http.StatusRequestEntityTooLarge, common.FlashDanger, pverrors.ErrFileTooLarge, common.MaxUploadMB)
	case errors.Is(err, service.ErrNotFound):
		return f(http.StatusNotFound, common.FlashDanger, pverrors.ErrFileNotFound)
	case errors.Is(err, pdftext.ErrUnreadablePDF):
		return f(http.StatusUnprocessableEntity, common.FlashDanger, pverrors.ErrExtractionFailed)
	case errors.Is(err, tts.ErrEmptyText), errors.Is(err, tts.ErrSynthesis):
		return f(http.StatusBadGateway, common.FlashDanger, pverrors.ErrSynthesisFailed)
	}

	common.Logger().Error("unexpected error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	return f(http.StatusInternalServerError, common.FlashDanger, pverrors.ErrInternalServer)
}

// flashError records err as a flash and redirects to location.
func flashError(c *gin.Context, err error, location string) {
	fail := classify(c, err)
	common.FlashRedirect(c, fail.Category, fail.Msg, location)
}

// flashCode records a translated message and redirects to location.
func flashCode(c *gin.Context, category string, code string, location string, args ...interface{}) {
	common.FlashRedirect(c, category, i18n.Translate(code, c.GetString("lang"), args...), location)
}

// respError answers the JSON API with the translated error.
func respError(c *gin.Context, err error) {
	fail := classify(c, err)
	common.RespErrorStr(c, fail.Status, fail.Msg)
}
