package i18n

import (
	"fmt"
	"strings"

	pverrors "pdf-voice/backend/common/errors"
)

const DefaultLang = "en"

var messages = map[string]map[string]string{
	"en": {
		pverrors.ErrInternalServer:  "Something went wrong, please try again",
		pverrors.ErrInvalidParam:    "Invalid parameter: %s",
		pverrors.ErrUnauthorized:    "Please log in first",
		pverrors.ErrTooManyRequests: "Too many requests, please try again later",

		pverrors.ErrUsernameMissing:        "Username is not provided",
		pverrors.ErrPasswordMissing:        "Password is not provided",
		pverrors.ErrConfirmationFailed:     "Password confirmation failed",
		pverrors.ErrPasswordTooShort:       "Password must contain at least 8 characters",
		pverrors.ErrPasswordComposition:    "Password must contain at least one number and one letter",
		pverrors.ErrUsernameTaken:          "User with this username already exists, please provide unique username, for example %s1",
		pverrors.ErrInvalidCredentials:     "Incorrect username and/or password",
		pverrors.ErrOldPasswordMissing:     "Old password is not provided",
		pverrors.ErrOldPasswordIncorrect:   "Incorrect Old Password",
		pverrors.ErrNewPasswordMissing:     "New password is not provided",
		pverrors.ErrNewPasswordUnconfirmed: "New password is not confirmed",
		pverrors.ErrPasswordMismatch:       "Password confirmation failed",
		pverrors.MsgRegistered:             "Thank you for registration!",
		pverrors.MsgPasswordUpdated:        "Password updated successfully!",

		pverrors.ErrNoFileChosen:        "No file chosen",
		pverrors.ErrExtensionNotAllowed: "Only .pdf files allowed",
		pverrors.ErrInvalidFilename:     "File name is too long (max %d bytes)",
		pverrors.ErrNotPDF:              "The uploaded file is not a valid PDF",
		pverrors.ErrFileTooLarge:        "File is too large (max %d MB)",
		pverrors.ErrFileNotFound:        "File not found",
		pverrors.ErrExtractionFailed:    "Could not read text from this PDF",
		pverrors.ErrSynthesisFailed:     "Could not create audio for this file, please try again later",
		pverrors.MsgUploaded:            "File successfully uploaded!",
		pverrors.MsgRemoved:             "File removed successfully!",
		pverrors.MsgConverted:           "Enjoy!",
	},
	"zh-CN": {
		pverrors.ErrInternalServer:  "服务器内部错误，请稍后重试",
		pverrors.ErrInvalidParam:    "无效的参数: %s",
		pverrors.ErrUnauthorized:    "请先登录",
		pverrors.ErrTooManyRequests: "请求过于频繁，请稍后再试",

		pverrors.ErrUsernameMissing:        "未提供用户名",
		pverrors.ErrPasswordMissing:        "未提供密码",
		pverrors.ErrConfirmationFailed:     "两次输入的密码不一致",
		pverrors.ErrPasswordTooShort:       "密码长度至少为 8 个字符",
		pverrors.ErrPasswordComposition:    "密码必须至少包含一个数字和一个字母",
		pverrors.ErrUsernameTaken:          "用户名已被占用，请换一个，例如 %s1",
		pverrors.ErrInvalidCredentials:     "用户名或密码错误",
		pverrors.ErrOldPasswordMissing:     "未提供旧密码",
		pverrors.ErrOldPasswordIncorrect:   "旧密码错误",
		pverrors.ErrNewPasswordMissing:     "未提供新密码",
		pverrors.ErrNewPasswordUnconfirmed: "未确认新密码",
		pverrors.ErrPasswordMismatch:       "两次输入的密码不一致",
		pverrors.MsgRegistered:             "感谢注册！",
		pverrors.MsgPasswordUpdated:        "密码修改成功！",

		pverrors.ErrNoFileChosen:        "未选择文件",
		pverrors.ErrExtensionNotAllowed: "只允许上传 .pdf 文件",
		pverrors.ErrInvalidFilename:     "文件名过长（最多 %d 字节）",
		pverrors.ErrNotPDF:              "上传的文件不是有效的 PDF",
		pverrors.ErrFileTooLarge:        "文件过大（最大 %d MB）",
		pverrors.ErrFileNotFound:        "文件不存在",
		pverrors.ErrExtractionFailed:    "无法读取该 PDF 的文本",
		pverrors.ErrSynthesisFailed:     "语音生成失败，请稍后重试",
		pverrors.MsgUploaded:            "文件上传成功！",
		pverrors.MsgRemoved:             "文件删除成功！",
		pverrors.MsgConverted:           "请欣赏！",
	},
}

// Translate renders code in lang, falling back to English and then to the
// code itself.
func Translate(code string, lang string, args ...interface{}) string {
	table, ok := messages[normalizeLang(lang)]
	if !ok {
		table = messages[DefaultLang]
	}
	msg, ok := table[code]
	if !ok {
		msg, ok = messages[DefaultLang][code]
		if !ok {
			return code
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

func normalizeLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if strings.HasPrefix(strings.ToLower(lang), "zh") {
		return "zh-CN"
	}
	return DefaultLang
}
