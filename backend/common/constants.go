package common

import (
	"flag"
	"time"

	"github.com/google/uuid"
)

var Version = "v0.0.0"
var SystemName = "PDF Voice"
var StartTime = time.Now().Unix()

var (
	Port          = flag.Int("port", 3000, "the listening port")
	PrintVersion  = flag.Bool("version", false, "print version and exit")
	PrintHelpFlag = flag.Bool("help", false, "print help and exit")
	ConfigPath    = flag.String("config", "", "path to config.ini, defaults to ~/.config/pdf-voice/config.ini")
)

var DebugEnabled = false
var LogJSON = false

// Storage
var SQLitePath = "data/pdf-voice.db"
var SQLDSN = ""
var UploadRoot = "data/files"
var AudioRoot = "data/audio"
var MaxUploadMB = 32

// Secrets. SESSION_SECRET is persisted into the config file on first run so
// cookies survive restarts.
var SessionSecret = uuid.New().String()
var JWTSecret = ""
var JWTExpiry = 24 * time.Hour

var RedisConnString = ""
var RedisEnabled = false

// Speech synthesis
var TTSLang = "en"
var TTSTLD = "co.uk"
var TTSTimeout = 30 * time.Second
var TTSEndpoint = ""

var ExtractCacheSize = 128

// Outbound mail
var MailServer = "smtp.gmail.com"
var MailPort = 465
var MailUsername = ""
var MailPassword = ""
var MailDefaultSender = ""

func MailEnabled() bool {
	return MailUsername != "" && MailPassword != ""
}

const (
	AllowedUploadExt = ".pdf"
	AudioExt         = ".mp3"
)

// Session keys
const (
	SessionUserID   = "id"
	SessionUsername = "username"
)

// Rate limits for signup/login/token endpoints, per client IP.
var (
	CriticalRateLimitNum      = 20
	CriticalRateLimitDuration = time.Duration(20) * time.Minute
)
