package i18n

import (
	"errors"
	"fmt"
	"testing"

	pverrors "pdf-voice/backend/common/errors"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		code     string
		lang     string
		args     []interface{}
		expected string
	}{
		{pverrors.ErrNoFileChosen, "en", nil, "No file chosen"},
		{pverrors.ErrNoFileChosen, "zh-CN", nil, "未选择文件"},
		{pverrors.ErrNoFileChosen, "zh", nil, "未选择文件"},
		{pverrors.ErrInvalidCredentials, "en-US", nil, "Incorrect username and/or password"},
		{pverrors.ErrUsernameTaken, "en", []interface{}{"alice"}, "User with this username already exists, please provide unique username, for example alice1"},
		{pverrors.ErrFileTooLarge, "en", []interface{}{32}, "File is too large (max 32 MB)"},
		// unknown language falls back to English
		{pverrors.MsgConverted, "fr", nil, "Enjoy!"},
		{pverrors.MsgConverted, "", nil, "Enjoy!"},
		// unknown code is returned as is
		{"UNKNOWN_ERROR", "en", nil, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		result := Translate(tt.code, tt.lang, tt.args...)
		if result != tt.expected {
			t.Errorf("Translate(%s, %s) = %s, want %s", tt.code, tt.lang, result, tt.expected)
		}
	}
}

func TestEveryEnglishCodeHasChinese(t *testing.T) {
	for code := range messages["en"] {
		if _, ok := messages["zh-CN"][code]; !ok {
			t.Errorf("code %s has no zh-CN message", code)
		}
	}
}

func TestNewError(t *testing.T) {
	err := New(pverrors.ErrFileNotFound, "en")
	if err.Error() != "File not found" {
		t.Errorf("New(ErrFileNotFound, en).Error() = %s, want 'File not found'", err.Error())
	}
	if err.Code != pverrors.ErrFileNotFound {
		t.Errorf("New(ErrFileNotFound, en).Code = %s, want %s", err.Code, pverrors.ErrFileNotFound)
	}

	if !IsErrorCode(err, pverrors.ErrFileNotFound) {
		t.Errorf("IsErrorCode(err, ErrFileNotFound) = false, want true")
	}
	if IsErrorCode(err, pverrors.ErrNotPDF) {
		t.Errorf("IsErrorCode(err, ErrNotPDF) = true, want false")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrap(cause, pverrors.ErrFileNotFound, "zh-CN")

	if err.Error() != "文件不存在" {
		t.Errorf("Wrap(...).Error() = %s, want '文件不存在'", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}

	outer := fmt.Errorf("convert: %w", err)
	if !IsErrorCode(outer, pverrors.ErrFileNotFound) {
		t.Errorf("IsErrorCode should see through fmt.Errorf wrapping")
	}
}
