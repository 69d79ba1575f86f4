package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"bookit/internal/logger"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home   string // session cache directory, e.g. $HOME/.bookit
	API    APIConfig
	Socket SocketConfig
	Chat   ChatConfig
	// Passphrase seals the remembered session file when set.
	Passphrase string
	Log        logger.Config
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// SocketConfig configures the chat socket.
type SocketConfig struct {
	URL                  string
	MaxReconnectAttempts int
	ReconnectDelay       time.Duration
	ReconnectDelayMax    time.Duration
	PingInterval         time.Duration
}

// ChatConfig tunes the chat sync.
type ChatConfig struct {
	TypingTimeout time.Duration
}

// LoadConfig reads bookit.toml from path (or ., $HOME/.bookit when path is
// empty), then BOOKIT_* environment variables. A .env file in the working
// directory is loaded first if present.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bookit")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ".bookit"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BOOKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Home: v.GetString("home"),
		API: APIConfig{
			BaseURL:           v.GetString("api.base_url"),
			Timeout:           v.GetDuration("api.timeout"),
			RequestsPerSecond: v.GetFloat64("api.requests_per_second"),
			Burst:             v.GetInt("api.burst"),
		},
		Socket: SocketConfig{
			URL:                  v.GetString("socket.url"),
			MaxReconnectAttempts: v.GetInt("socket.max_reconnect_attempts"),
			ReconnectDelay:       v.GetDuration("socket.reconnect_delay"),
			ReconnectDelayMax:    v.GetDuration("socket.reconnect_delay_max"),
			PingInterval:         v.GetDuration("socket.ping_interval"),
		},
		Chat: ChatConfig{
			TypingTimeout: v.GetDuration("chat.typing_timeout"),
		},
		Passphrase: v.GetString("session.passphrase"),
		Log: logger.Config{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			Output:     v.GetString("log.output"),
			TimeFormat: v.GetString("log.time_format"),
		},
	}
	if cfg.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.Home = filepath.Join(dir, ".bookit")
	}
	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.requests_per_second", 10)
	v.SetDefault("api.burst", 5)

	v.SetDefault("socket.url", "ws://localhost:5000/ws")
	v.SetDefault("socket.max_reconnect_attempts", 5)
	v.SetDefault("socket.reconnect_delay", time.Second)
	v.SetDefault("socket.reconnect_delay_max", 5*time.Second)
	v.SetDefault("socket.ping_interval", 25*time.Second)

	v.SetDefault("chat.typing_timeout", 3*time.Second)

	d := logger.DefaultConfig()
	v.SetDefault("log.level", d.Level)
	v.SetDefault("log.format", d.Format)
	v.SetDefault("log.output", d.Output)
	v.SetDefault("log.time_format", d.TimeFormat)
}

// Validate checks the settings the wiring cannot default.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Socket.URL == "" {
		return errors.New("socket.url is required")
	}
	if !strings.HasPrefix(c.Socket.URL, "ws://") && !strings.HasPrefix(c.Socket.URL, "wss://") {
		return fmt.Errorf("socket.url must be ws:// or wss://, got %q", c.Socket.URL)
	}
	return nil
}
