// terrain renders conversations as landscapes: heightmaps, contours,
// trajectories, cluster labels and cross-conversation density.
//
// Usage:
//
//	terrain heightmap  -i conversations.json [--size 64]
//	terrain contours   -i conversations.json [--count 20]
//	terrain trajectory -i conversations.json [--mode affect|authority]
//	terrain classify   -i conversations.json [--assignments table.yaml]
//	terrain density    -i conversations.json
//	terrain assignments import table.yaml
//	terrain assignments list
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/convo-terrain/internal/config"
	"github.com/danielpatrickdp/convo-terrain/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	output     string
}

// cfg is loaded once per invocation by the root pre-run hook.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "terrain",
	Short: "Turn conversations into explorable landscapes",
	Long: "terrain derives a procedural heightmap, contour lines and an elevated\n" +
		"trajectory for each conversation, assigns it a behavioural cluster,\n" +
		"and folds many conversations into one density field.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&rootFlags.configPath, "config", "c", "", "Config file (.yaml, .toml or .json)")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	f.StringVarP(&rootFlags.output, "output", "o", "json", "Output format: json, table or markdown")

	rootCmd.AddCommand(heightmapCmd)
	rootCmd.AddCommand(contoursCmd)
	rootCmd.AddCommand(trajectoryCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(densityCmd)
	rootCmd.AddCommand(assignmentsCmd)
	rootCmd.Version = version
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(rootFlags.configPath)
	if err != nil {
		return err
	}
	if rootFlags.logLevel != "" {
		c.Logging.Level = rootFlags.logLevel
	}
	logging.Setup(c.Logging, cmd.ErrOrStderr())
	slog.Debug("config loaded", slog.String("path", rootFlags.configPath))
	cfg = c
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
