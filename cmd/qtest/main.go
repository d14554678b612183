package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kgantsov/qlist/pkg/alloc"
	"github.com/kgantsov/qlist/pkg/config"
	"github.com/kgantsov/qlist/pkg/console"
	"github.com/kgantsov/qlist/pkg/metrics"
)

var scriptFile string

func run(config *config.Config) int {
	if config.Profiling.Enabled {
		defer profile.Start(
			profile.CPUProfile,
			profile.ProfilePath(config.Profiling.Dir),
			profile.Quiet,
		).Stop()
	}

	seed := config.Alloc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(registry, "qlist", "queue")

	tracker := alloc.NewTracker(alloc.WithSeed(seed), alloc.WithMetrics(m))
	if err := tracker.SetFailProbability(config.Alloc.FailProbability); err != nil {
		log.Error().Err(err).Msg("Invalid allocation settings")
		return 1
	}

	var input io.Reader = os.Stdin
	if scriptFile != "" {
		file, err := os.Open(scriptFile)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to open %s", scriptFile)
			return 1
		}
		defer file.Close()
		input = file
	}

	c := console.New(
		console.WithOutput(os.Stdout),
		console.WithEcho(scriptFile != ""),
		console.WithTracker(tracker),
		console.WithMetrics(m, registry),
		console.WithSeed(seed),
		console.WithStringLength(config.Queue.StringLength),
	)

	log.Info().Int64("seed", seed).Msg("Starting qtest")

	if err := c.Run(input); err != nil {
		log.Error().Err(err).Msg("Failed to read commands")
		return 1
	}
	c.Close()

	if config.Prometheus.Enabled {
		c.Execute("stats")
	}

	if failures := c.Failures(); failures > 0 {
		fmt.Printf("%d commands failed\n", failures)
		return 1
	}

	return 0
}

func Run(cmd *cobra.Command, args []string) {
	config, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	config.ConfigureLogger()

	os.Exit(run(config))
}

func main() {
	rootCmd := config.InitCobraCommand(Run)
	rootCmd.Flags().StringVarP(&scriptFile, "file", "f", "", "Read commands from file instead of standard input")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Error starting qtest")
	}
}
