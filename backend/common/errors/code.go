package errors

// Message codes shared by flash messages and API errors.
const (
	ErrInternalServer  = "ERR_INTERNAL_SERVER"
	ErrInvalidParam    = "ERR_INVALID_PARAM"
	ErrUnauthorized    = "ERR_UNAUTHORIZED"
	ErrTooManyRequests = "ERR_TOO_MANY_REQUESTS"
)

// Account
const (
	ErrUsernameMissing        = "ERR_USERNAME_MISSING"
	ErrPasswordMissing        = "ERR_PASSWORD_MISSING"
	ErrConfirmationFailed     = "ERR_CONFIRMATION_FAILED"
	ErrPasswordTooShort       = "ERR_PASSWORD_TOO_SHORT"
	ErrPasswordComposition    = "ERR_PASSWORD_COMPOSITION"
	ErrUsernameTaken          = "ERR_USERNAME_TAKEN"
	ErrInvalidCredentials     = "ERR_INVALID_CREDENTIALS"
	ErrOldPasswordMissing     = "ERR_OLD_PASSWORD_MISSING"
	ErrOldPasswordIncorrect   = "ERR_OLD_PASSWORD_INCORRECT"
	ErrNewPasswordMissing     = "ERR_NEW_PASSWORD_MISSING"
	ErrNewPasswordUnconfirmed = "ERR_NEW_PASSWORD_UNCONFIRMED"
	ErrPasswordMismatch       = "ERR_PASSWORD_MISMATCH"
	MsgRegistered             = "MSG_REGISTERED"
	MsgPasswordUpdated        = "MSG_PASSWORD_UPDATED"
)

// Files and conversion
const (
	ErrNoFileChosen        = "ERR_NO_FILE_CHOSEN"
	ErrExtensionNotAllowed = "ERR_EXTENSION_NOT_ALLOWED"
	ErrInvalidFilename     = "ERR_INVALID_FILENAME"
	ErrNotPDF              = "ERR_NOT_PDF"
	ErrFileTooLarge        = "ERR_FILE_TOO_LARGE"
	ErrFileNotFound        = "ERR_FILE_NOT_FOUND"
	ErrExtractionFailed    = "ERR_EXTRACTION_FAILED"
	ErrSynthesisFailed     = "ERR_SYNTHESIS_FAILED"
	MsgUploaded            = "MSG_UPLOADED"
	MsgRemoved             = "MSG_REMOVED"
	MsgConverted           = "MSG_CONVERTED"
)
