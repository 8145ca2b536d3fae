package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/wasend/pkg/browser"
	"github.com/entrhq/wasend/pkg/whatsapp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "chrome", cfg.Browser)
	assert.Equal(t, 10.0, cfg.WaitSeconds)
	assert.Equal(t, 20*time.Second, cfg.LoginWait)
	assert.Equal(t, time.Second, cfg.StepDelay)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `browser: Firefox
wait_seconds: 5
login_wait: 45s
headless: true
log_level: debug
selectors:
  text_box:
    class: new-box.copyable-text
    index: 0
  caption_box:
    index: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Firefox", cfg.Browser)
	assert.Equal(t, 5.0, cfg.WaitSeconds)
	assert.Equal(t, 45*time.Second, cfg.LoginWait)
	assert.Equal(t, time.Second, cfg.StepDelay, "unset fields keep their defaults")
	assert.True(t, cfg.Headless)
	textBox := cfg.Selectors[whatsapp.SelectorTextBox]
	assert.Equal(t, "new-box.copyable-text", textBox.Class)
	require.NotNil(t, textBox.Index)
	assert.Equal(t, 0, *textBox.Index)
	captionBox := cfg.Selectors[whatsapp.SelectorCaptionBox]
	assert.Empty(t, captionBox.Class)
	require.NotNil(t, captionBox.Index)
	assert.Equal(t, 3, *captionBox.Index)
}

func indexOf(i int) *int { return &i }

func TestLoadSelectorOverridesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `selectors:
  text_box:
    class: new.text.box
  send_file:
    index: 2
  caption_box:
    class: new.caption
    index: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	defaults := whatsapp.DefaultSelectors()
	merged := defaults.Merge(cfg.Selectors)
	assert.Equal(t, whatsapp.Selector{Class: "new.text.box", Index: 1}, merged[whatsapp.SelectorTextBox],
		"an omitted index keeps the default index")
	assert.Equal(t, whatsapp.Selector{Class: defaults[whatsapp.SelectorSendFile].Class, Index: 2}, merged[whatsapp.SelectorSendFile])
	assert.Equal(t, whatsapp.Selector{Class: "new.caption", Index: 0}, merged[whatsapp.SelectorCaptionBox])
	assert.Equal(t, defaults[whatsapp.SelectorAttachMenu], merged[whatsapp.SelectorAttachMenu])
}

func TestSaveRoundTripSelectorOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Selectors = whatsapp.SelectorOverrides{
		whatsapp.SelectorTextBox:  {Class: "box"},
		whatsapp.SelectorSendText: {Index: indexOf(0)},
	}
	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "index: null")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser: [\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Browser = "edge"
	cfg.WaitSeconds = 2.5

	require.NoError(t, Save(cfg, path))
	assert.NoFileExists(t, path+".tmp")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"unsupported browser", func(c *Config) { c.Browser = "opera" }, browser.ErrUnsupportedBrowser},
		{"negative wait", func(c *Config) { c.WaitSeconds = -1 }, whatsapp.ErrInvalidArgument},
		{"negative login wait", func(c *Config) { c.LoginWait = -time.Second }, whatsapp.ErrInvalidArgument},
		{"bad selector index", func(c *Config) {
			c.Selectors = whatsapp.SelectorOverrides{whatsapp.SelectorSendFile: {Index: indexOf(-2)}}
		}, whatsapp.ErrInvalidArgument},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target))
			}
		})
	}
}

func TestClientOptions(t *testing.T) {
	cfg := DefaultConfig()
	assert.Len(t, cfg.ClientOptions(), 3)

	cfg.Selectors = whatsapp.SelectorOverrides{whatsapp.SelectorTextBox: {Class: "x"}}
	assert.Len(t, cfg.ClientOptions(), 4)

	client, err := whatsapp.New(cfg.ClientOptions()...)
	require.NoError(t, err)
	assert.Equal(t, "", client.Browser())
}

func TestSaveWritesReadableDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "login_wait: 20s")
	assert.Contains(t, string(data), "step_delay: 1s")
	assert.NotContains(t, string(data), "selectors")
}
