package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mx-llm/vuechunk/pkg/util"
)

const version = "0.1.0-dev"

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "vuechunk",
	Short: "Extract component metadata from Vue single-file components",
	Long: `vuechunk walks a directory of .vue files, parses the TypeScript script
block of each class-style component and writes one JSON snapshot with the
template, script, class name, methods, properties and emitted events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vuechunk %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the logger from the persistent flags. Logs go to stderr.
// quiet raises the level to error.
func newLogger(quiet bool) *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	cfg.Level = util.ParseLogLevel(logLevel)
	cfg.Format = util.ParseLogFormat(logFormat)
	if quiet {
		cfg.Level = util.LevelError
	}
	return util.NewLogger(cfg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
