package common

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

const defaultConfigTemplate = "PORT=3000\nSQLITE_PATH=data/pdf-voice.db\nUPLOAD_ROOT=data/files\nAUDIO_ROOT=data/audio\nSESSION_SECRET=%s\nJWT_SECRET=%s\n"

// LoadConfig layers configuration in this order: config.ini, .env, process
// environment, then explicitly passed command-line flags.
func LoadConfig() error {
	portFlagSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "port" {
			portFlagSet = true
		}
	})
	flagPort := *Port

	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := applyConfigMap(environMap()); err != nil {
		return fmt.Errorf("apply environment: %w", err)
	}
	if portFlagSet {
		*Port = flagPort
	}
	if JWTSecret == "" {
		JWTSecret = SessionSecret
	}
	return nil
}

func loadConfigFile() error {
	configPath := *ConfigPath
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get user home directory: %w", err)
		}
		configPath = filepath.Join(homeDir, ".config", "pdf-voice", "config.ini")
	}
	if err := ensureConfigFile(configPath); err != nil {
		return err
	}

	configMap, err := parseIniConfig(configPath)
	if err != nil {
		return err
	}

	if err := applyConfigMap(configMap); err != nil {
		return fmt.Errorf("apply config file %s: %w", configPath, err)
	}

	return nil
}

func ensureConfigFile(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", configDir, err)
	}

	configFile, err := os.OpenFile(configPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("create config file %s: %w", configPath, err)
	}
	defer configFile.Close()

	content := fmt.Sprintf(defaultConfigTemplate, uuid.New().String(), uuid.New().String())
	if _, err := configFile.WriteString(content); err != nil {
		return fmt.Errorf("write default config file %s: %w", configPath, err)
	}

	return nil
}

func parseIniConfig(path string) (map[string]string, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parse ini config %s: %w", path, err)
	}

	configMap := make(map[string]string)
	for _, section := range cfg.Sections() {
		for _, key := range section.Keys() {
			configKey := strings.ToUpper(strings.TrimSpace(key.Name()))
			if configKey == "" {
				continue
			}
			configMap[configKey] = strings.TrimSpace(key.Value())
		}
	}

	return configMap, nil
}

func environMap() map[string]string {
	configMap := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		configMap[strings.ToUpper(k)] = v
	}
	return configMap
}

func applyConfigMap(configMap map[string]string) error {
	stringKeys := map[string]*string{
		"SQLITE_PATH":         &SQLitePath,
		"SQL_DSN":             &SQLDSN,
		"UPLOAD_ROOT":         &UploadRoot,
		"AUDIO_ROOT":          &AudioRoot,
		"SESSION_SECRET":      &SessionSecret,
		"JWT_SECRET":          &JWTSecret,
		"REDIS_CONN_STRING":   &RedisConnString,
		"TTS_LANG":            &TTSLang,
		"TTS_TLD":             &TTSTLD,
		"TTS_ENDPOINT":        &TTSEndpoint,
		"MAIL_SERVER":         &MailServer,
		"MAIL_USERNAME":       &MailUsername,
		"MAIL_PASSWORD":       &MailPassword,
		"MAIL_DEFAULT_SENDER": &MailDefaultSender,
	}
	for key, target := range stringKeys {
		if configValue, ok := configMap[key]; ok && configValue != "" {
			*target = configValue
		}
	}

	intKeys := map[string]*int{
		"PORT":               Port,
		"MAX_UPLOAD_MB":      &MaxUploadMB,
		"EXTRACT_CACHE_SIZE": &ExtractCacheSize,
		"MAIL_PORT":          &MailPort,
	}
	for key, target := range intKeys {
		if configValue, ok := configMap[key]; ok && configValue != "" {
			v, err := strconv.Atoi(configValue)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			*target = v
		}
	}

	durationKeys := map[string]*time.Duration{
		"JWT_EXPIRY":  &JWTExpiry,
		"TTS_TIMEOUT": &TTSTimeout,
	}
	for key, target := range durationKeys {
		if configValue, ok := configMap[key]; ok && configValue != "" {
			d, err := time.ParseDuration(configValue)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			*target = d
		}
	}

	boolKeys := map[string]*bool{
		"DEBUG":    &DebugEnabled,
		"LOG_JSON": &LogJSON,
	}
	for key, target := range boolKeys {
		if configValue, ok := configMap[key]; ok && configValue != "" {
			b, err := strconv.ParseBool(configValue)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			*target = b
		}
	}

	return nil
}

func PrintHelp() {
	fmt.Println(SystemName + " " + Version)
	fmt.Println("Usage: pdf-voice [--port <port>] [--config <path>] [--version] [--help]")
	fmt.Println("Configuration is read from config.ini, then .env, then the process environment.")
}
