package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Directory: DirectoryConfig{
			DataPath:         "/some/path",
			Watch:            true,
			WatchSettleDelay: 500 * time.Millisecond,
		},
		Search: SearchConfig{
			DebounceInterval: 250 * time.Millisecond,
			MaxSecondary:     50,
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"INFO", true},   // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Directory.DataPath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_SearchBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Search.MaxSecondary = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Search.DebounceInterval = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Search.DebounceInterval = 0 // immediate evaluation is allowed
	assert.NoError(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/directory/data", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "directory", "data"), expanded)

	expanded, err = expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", expanded)

	expanded, err = expandPath("/already/absolute", "")
	require.NoError(t, err)
	assert.Equal(t, "/already/absolute", expanded)
}

func TestExpandDataPath_Default(t *testing.T) {
	cfg := validConfig()
	cfg.Directory.DataPath = ""
	require.NoError(t, cfg.expandDataPath())
	assert.True(t, filepath.IsAbs(cfg.Directory.DataPath))
	assert.Equal(t, "data", filepath.Base(cfg.Directory.DataPath))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("DIRECTORY_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "DIRECTORY_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "DIRECTORY_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "DIRECTORY_TEST_UNSET", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	assert.True(t, getBoolConfigValue("true", "UNSET_KEY", false))
	assert.True(t, getBoolConfigValue("YES", "UNSET_KEY", false))
	assert.True(t, getBoolConfigValue("1", "UNSET_KEY", false))
	assert.False(t, getBoolConfigValue("false", "UNSET_KEY", true))
	assert.True(t, getBoolConfigValue("", "UNSET_KEY", true))
}

func TestGetIntConfigValue(t *testing.T) {
	assert.Equal(t, 25, getIntConfigValue("25", "UNSET_KEY", 50))
	assert.Equal(t, 50, getIntConfigValue("", "UNSET_KEY", 50))
	assert.Equal(t, 50, getIntConfigValue("not-a-number", "UNSET_KEY", 50))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := `
# comment line
DIRECTORY_ENV_A=hello
DIRECTORY_ENV_B="quoted value"
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))
	t.Setenv("DIRECTORY_ENV_A", "")
	os.Unsetenv("DIRECTORY_ENV_A")
	t.Setenv("DIRECTORY_ENV_B", "")
	os.Unsetenv("DIRECTORY_ENV_B")

	require.NoError(t, loadEnvFile(envFile))
	assert.Equal(t, "hello", os.Getenv("DIRECTORY_ENV_A"))
	assert.Equal(t, "quoted value", os.Getenv("DIRECTORY_ENV_B"))
}

func TestLoadEnvFile_Missing(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
}
