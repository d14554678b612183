package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kgantsov/qlist/pkg/logger"
)

var cfgFile string

type ProfilingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type PrometheusConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type QueueConfig struct {
	StringLength int `mapstructure:"string_length"`
}

type AllocConfig struct {
	FailProbability int   `mapstructure:"fail_probability"`
	Seed            int64 `mapstructure:"seed"`
}

type Config struct {
	Profiling  ProfilingConfig
	Prometheus PrometheusConfig
	Logging    LoggingConfig
	Queue      QueueConfig
	Alloc      AllocConfig
}

func LoadConfig() (*Config, error) {
	var config Config

	// Unmarshal the config into the struct
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	return &config, nil
}

func (c *Config) ConfigureLogger() {
	logger.Configure(c.Logging.Level)
}

// initConfig reads the config file and the environment. It runs once cobra
// has parsed the flags, so --config is already known.
func initConfig() error {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config file
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	// Enable environment variable support, QUEUE_STRING_LENGTH for queue.string_length
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}

	log.Debug().Msgf("Using config file: %s", viper.ConfigFileUsed())
	return nil
}

func InitCobraCommand(runFunc func(cmd *cobra.Command, args []string)) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "qtest",
		Short: "qtest drives a linked-list queue with textual commands",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		Run: runFunc,
	}

	// Command-line flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yaml)")
	rootCmd.Flags().Bool("profiling.enabled", false, "Enable CPU profiling")
	rootCmd.Flags().String("profiling.dir", ".", "Directory for the CPU profile")
	rootCmd.Flags().Bool("prometheus.enabled", false, "Print collected metrics on exit")
	rootCmd.Flags().String("logging.level", "warn", "Log level")
	rootCmd.Flags().Int("queue.string_length", 1024, "Size of the buffer removed values are copied into")
	rootCmd.Flags().Int("alloc.fail_probability", 0, "Percentage of allocations to refuse")
	rootCmd.Flags().Int64("alloc.seed", 0, "Seed for allocation failures and random strings, 0 means time based")

	// Bind CLI flags to Viper settings
	viper.BindPFlag("profiling.enabled", rootCmd.Flags().Lookup("profiling.enabled"))
	viper.BindPFlag("profiling.dir", rootCmd.Flags().Lookup("profiling.dir"))
	viper.BindPFlag("prometheus.enabled", rootCmd.Flags().Lookup("prometheus.enabled"))
	viper.BindPFlag("logging.level", rootCmd.Flags().Lookup("logging.level"))
	viper.BindPFlag("queue.string_length", rootCmd.Flags().Lookup("queue.string_length"))
	viper.BindPFlag("alloc.fail_probability", rootCmd.Flags().Lookup("alloc.fail_probability"))
	viper.BindPFlag("alloc.seed", rootCmd.Flags().Lookup("alloc.seed"))

	return rootCmd
}
