package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestInitCobraCommand__DefaultValues(t *testing.T) {
	resetViper(t)

	called := false
	rootCmd := InitCobraCommand(func(cmd *cobra.Command, args []string) {
		called = true
		assert.NotNil(t, cmd)

		config, err := LoadConfig()
		assert.Nil(t, err)

		assert.Equal(t, false, config.Profiling.Enabled)
		assert.Equal(t, ".", config.Profiling.Dir)
		assert.Equal(t, false, config.Prometheus.Enabled)
		assert.Equal(t, "warn", config.Logging.Level)
		assert.Equal(t, 1024, config.Queue.StringLength)
		assert.Equal(t, 0, config.Alloc.FailProbability)
		assert.Equal(t, int64(0), config.Alloc.Seed)
	})

	assert.NotNil(t, rootCmd)

	rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()
	assert.Nil(t, err)
	assert.True(t, called)
}

func TestInitCobraCommand__ConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "alt.yaml")
	content := "queue:\n  string_length: 7\nlogging:\n  level: error\nalloc:\n  fail_probability: 25\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	var config *Config
	rootCmd := InitCobraCommand(func(cmd *cobra.Command, args []string) {
		var err error
		config, err = LoadConfig()
		assert.Nil(t, err)
	})

	rootCmd.SetArgs([]string{"--config", path})
	require.NoError(t, rootCmd.Execute())
	require.NotNil(t, config)

	assert.Equal(t, 7, config.Queue.StringLength)
	assert.Equal(t, "error", config.Logging.Level)
	assert.Equal(t, 25, config.Alloc.FailProbability)
	assert.Equal(t, int64(0), config.Alloc.Seed)
}

func TestInitCobraCommand__FlagOverridesConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "alt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue:\n  string_length: 7\n"), 0600))

	var config *Config
	rootCmd := InitCobraCommand(func(cmd *cobra.Command, args []string) {
		config, _ = LoadConfig()
	})

	rootCmd.SetArgs([]string{"--config", path, "--queue.string_length", "64"})
	require.NoError(t, rootCmd.Execute())
	require.NotNil(t, config)

	assert.Equal(t, 64, config.Queue.StringLength)
}

func TestInitCobraCommand__MissingConfigFile(t *testing.T) {
	resetViper(t)

	called := false
	rootCmd := InitCobraCommand(func(cmd *cobra.Command, args []string) {
		called = true
	})
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, rootCmd.Execute())
	assert.False(t, called)
}

func TestInitCobraCommand__Environment(t *testing.T) {
	resetViper(t)
	t.Setenv("QUEUE_STRING_LENGTH", "9")
	t.Setenv("ALLOC_SEED", "42")

	var config *Config
	rootCmd := InitCobraCommand(func(cmd *cobra.Command, args []string) {
		config, _ = LoadConfig()
	})

	rootCmd.SetArgs([]string{})
	require.NoError(t, rootCmd.Execute())
	require.NotNil(t, config)

	assert.Equal(t, 9, config.Queue.StringLength)
	assert.Equal(t, int64(42), config.Alloc.Seed)
}
