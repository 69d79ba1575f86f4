package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookit.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
home = "`+filepath.ToSlash(dir)+`"

[api]
base_url = "https://api.example.com/api"
timeout = "5s"

[socket]
url = "wss://api.example.com/ws"

[log]
level = "debug"
`), 0o600))
	t.Setenv("BOOKIT_CHAT_TYPING_TIMEOUT", "750ms")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(dir), cfg.Home)
	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "wss://api.example.com/ws", cfg.Socket.URL)
	assert.Equal(t, 750*time.Millisecond, cfg.Chat.TypingTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Socket.MaxReconnectAttempts)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{API: APIConfig{BaseURL: "http://x"}, Socket: SocketConfig{URL: "http://x"}}
	assert.Error(t, cfg.Validate())
	cfg.Socket.URL = "ws://x/ws"
	assert.NoError(t, cfg.Validate())
}

func TestNewWire_RestoresSession(t *testing.T) {
	home := t.TempDir()
	cfg := &Config{
		Home:   home,
		API:    APIConfig{BaseURL: "http://127.0.0.1:1/api"},
		Socket: SocketConfig{URL: "ws://127.0.0.1:1/ws"},
	}
	cfg.Log.Output = filepath.Join(home, "bookit.log")

	require.NoError(t, os.WriteFile(filepath.Join(home, "session.json"),
		[]byte(`{"token":"opaque","user":{"_id":"u1","name":"Ada"}}`), 0o600))

	w, err := NewWire(cfg)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, "opaque", w.Auth.Token())

	s, err := w.Chat(nil)
	require.NoError(t, err)
	assert.NotNil(t, s)
}
