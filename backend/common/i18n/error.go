package i18n

import (
	"errors"

	pverrors "pdf-voice/backend/common/errors"
)

// I18nError carries a message code next to the translated text and the
// underlying cause.
type I18nError struct {
	Code string
	Msg  string
	Err  error
}

func (e *I18nError) Error() string {
	return e.Msg
}

func (e *I18nError) ErrorCode() string {
	return e.Code
}

func (e *I18nError) Unwrap() error {
	return e.Err
}

func New(code string, lang string, args ...interface{}) *I18nError {
	msg := Translate(code, lang, args...)
	return &I18nError{
		Code: code,
		Msg:  msg,
		Err:  errors.New(msg),
	}
}

func Wrap(err error, code string, lang string, args ...interface{}) *I18nError {
	msg := Translate(code, lang, args...)
	return &I18nError{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

func InvalidParamError(lang string, param string) *I18nError {
	return New(pverrors.ErrInvalidParam, lang, param)
}

func IsErrorCode(err error, code string) bool {
	var i18nErr *I18nError
	if errors.As(err, &i18nErr) {
		return i18nErr.Code == code
	}
	return false
}
