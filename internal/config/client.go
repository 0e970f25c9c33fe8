package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Keys shared with the CLI flag bindings.
const (
	KeyServer    = "server"
	KeyTokenFile = "token_file"
)

const (
	defaultServer   = "http://localhost:8080"
	tokenConfigDir  = ".collab-booking"
	tokenConfigFile = "token.toml"
)

// ClientConfig captures the settings used by CLI commands talking to the API.
type ClientConfig struct {
	Server    string
	TokenFile string
}

// LoadClient resolves client settings from v. Flags bound to KeyServer and
// KeyTokenFile take precedence over COLLAB_SERVER and COLLAB_TOKEN_FILE.
func LoadClient(v *viper.Viper) (ClientConfig, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(KeyServer, defaultServer)

	server := strings.TrimRight(strings.TrimSpace(v.GetString(KeyServer)), "/")
	parsed, err := url.Parse(server)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ClientConfig{}, fmt.Errorf("invalid server URL %q", server)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ClientConfig{}, fmt.Errorf("unsupported server scheme %q", parsed.Scheme)
	}

	tokenFile := strings.TrimSpace(v.GetString(KeyTokenFile))
	if tokenFile == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ClientConfig{}, fmt.Errorf("resolve home directory: %w", err)
		}
		tokenFile = filepath.Join(homeDir, tokenConfigDir, tokenConfigFile)
	}
	tokenFile, err = filepath.Abs(tokenFile)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("resolve token file path: %w", err)
	}

	return ClientConfig{Server: server, TokenFile: filepath.Clean(tokenFile)}, nil
}
