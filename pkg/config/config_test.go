/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: config_test.go
Description: Tests for configuration defaults, file and environment loading, and
validation.
*/

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/lstar-probe/pkg/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 21, cfg.TableMax())
	assert.True(t, cfg.SlackSufficient())
	require.NoError(t, cfg.Validate())

	v, err := cfg.TeacherVector()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 7, 10}, v.Accepted())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lstar.yaml")
	content := []byte("max_length: 4\noverflow_slack: 2\nenumerate: false\nteacher: \"10001\"\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := config.Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.MaxLength)
	assert.Equal(t, 2, cfg.OverflowSlack)
	assert.False(t, cfg.Enumerate)
	assert.Equal(t, "10001", cfg.Teacher)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "custom", cfg.Log.Format, "unset keys keep their defaults")
	assert.False(t, cfg.SlackSufficient())
	assert.NoError(t, cfg.Validate())

	opts := cfg.LearnerOptions()
	assert.Equal(t, 6, opts.TableMax())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("LSTAR_MAX_LENGTH", "6")
	t.Setenv("LSTAR_LOG_LEVEL", "warn")

	cfg, err := config.Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.MaxLength)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative max length", func(c *config.Config) { c.MaxLength = -1 }},
		{"negative slack", func(c *config.Config) { c.OverflowSlack = -1 }},
		{"empty table", func(c *config.Config) { c.MaxLength, c.OverflowSlack = 0, 0 }},
		{"enumeration too long", func(c *config.Config) { c.MaxLength = 70 }},
		{"negative workers", func(c *config.Config) { c.Workers = -2 }},
		{"bad teacher", func(c *config.Config) { c.Enumerate = false; c.Teacher = "10z" }},
		{"teacher length", func(c *config.Config) { c.Enumerate = false; c.Teacher = "101" }},
		{"log format", func(c *config.Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

func TestUndersizedSlackIsAllowed(t *testing.T) {
	cfg := config.Default()
	cfg.OverflowSlack = 0
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.SlackSufficient())
}
