package service

import "errors"

var (
	ErrEmptyUsername        = errors.New("username is required")
	ErrEmptyPassword        = errors.New("password is required")
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password must contain at least 8 characters")
	ErrPasswordComposition  = errors.New("password must contain at least one number and one letter")
	ErrOldPasswordMissing   = errors.New("old password is required")
	ErrIncorrectOldPassword = errors.New("incorrect old password")
	ErrNewPasswordMissing   = errors.New("new password is required")
	ErrConfirmationMissing  = errors.New("new password is not confirmed")
	ErrPasswordMismatch     = errors.New("password confirmation failed")

	ErrNotFound            = errors.New("not found")
	ErrNoFileChosen        = errors.New("no file chosen")
	ErrExtensionNotAllowed = errors.New("only .pdf files allowed")
	ErrInvalidFilename     = errors.New("invalid file name")
	ErrNotPDF              = errors.New("file content is not a pdf")
	ErrFileTooLarge        = errors.New("file too large")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)
