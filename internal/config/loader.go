package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "COLLAB"

// Keys shared with the serve command flag bindings.
const (
	KeyHTTPPort    = "http_port"
	KeyCatalogFile = "catalog_file"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

const (
	keyTimezone     = "timezone"
	keyTokenTTL     = "token_ttl"
	keyMaxTokens    = "max_tokens"
	keyDemoEmail    = "demo_email"
	keyDemoPassword = "demo_password"
	keyDemoName     = "demo_name"
)

// Config captures environment driven configuration values for the booking service.
type Config struct {
	HTTPPort     int
	Location     *time.Location
	CatalogFile  string
	TokenTTL     time.Duration
	MaxTokens    int
	DemoEmail    string
	DemoPassword string
	DemoName     string
	LogLevel     string
	LogFormat    string
}

// Load parses configuration values from the current process environment.
func Load() (Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through v, which is bound to COLLAB_* variables.
//
// Defaults are applied for optional fields; missing and malformed values are
// aggregated into a single error naming every offending variable.
func LoadFrom(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyHTTPPort, 8080)
	v.SetDefault(keyTimezone, "Local")
	v.SetDefault(KeyCatalogFile, "")
	v.SetDefault(keyTokenTTL, "24h")
	v.SetDefault(keyMaxTokens, 1024)
	v.SetDefault(keyDemoEmail, "demo@collab.local")
	v.SetDefault(keyDemoPassword, "123456")
	v.SetDefault(keyDemoName, "Demo User")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")

	cfg := Config{
		CatalogFile: strings.TrimSpace(v.GetString(KeyCatalogFile)),
		DemoName:    strings.TrimSpace(v.GetString(keyDemoName)),
	}

	missing := make([]string, 0, 2)
	invalid := make([]string, 0, 4)

	if port, err := parsePositiveInt(v.GetString(KeyHTTPPort)); err != nil || port > 65535 {
		invalid = append(invalid, envName(KeyHTTPPort))
	} else {
		cfg.HTTPPort = port
	}

	if loc, err := time.LoadLocation(strings.TrimSpace(v.GetString(keyTimezone))); err != nil {
		invalid = append(invalid, envName(keyTimezone))
	} else {
		cfg.Location = loc
	}

	if ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString(keyTokenTTL))); err != nil || ttl <= 0 {
		invalid = append(invalid, envName(keyTokenTTL))
	} else {
		cfg.TokenTTL = ttl
	}

	if maxTokens, err := parsePositiveInt(v.GetString(keyMaxTokens)); err != nil {
		invalid = append(invalid, envName(keyMaxTokens))
	} else {
		cfg.MaxTokens = maxTokens
	}

	if cfg.DemoEmail = strings.TrimSpace(v.GetString(keyDemoEmail)); cfg.DemoEmail == "" {
		missing = append(missing, envName(keyDemoEmail))
	}
	if cfg.DemoPassword = v.GetString(keyDemoPassword); strings.TrimSpace(cfg.DemoPassword) == "" {
		missing = append(missing, envName(keyDemoPassword))
	}

	switch level := strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))); level {
	case "debug", "info", "warn", "warning", "error":
		cfg.LogLevel = level
	default:
		invalid = append(invalid, envName(KeyLogLevel))
	}

	switch format := strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))); format {
	case "json", "text":
		cfg.LogFormat = format
	default:
		invalid = append(invalid, envName(KeyLogFormat))
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("value %d must be positive", value)
	}
	return value, nil
}
