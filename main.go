package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code-converter/backend/internal/config"
	"code-converter/backend/internal/logging"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd starts the HTTP server when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "code-converter",
	Short: "Code Converter Backend",
	Long: `Code Converter turns text descriptions, screenshots and Figma designs
into HTML with Tailwind CSS classes.

Text descriptions are resolved by the remote AI endpoint when configured, then
by the local model, and finally by built-in placeholder markup.

Run without arguments to start the HTTP server.`,
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
		cfg = config.Load()

		// convert prints code on stdout, so its logs go to stderr.
		output := "stdout"
		if cmd.Parent() == convertCmd {
			output = "stderr"
		}

		var err error
		logger, err = logging.NewWithOutput(cfg.Environment, cfg.LogLevel, output)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, convertCmd)
	convertCmd.AddCommand(convertTextCmd, convertFigmaCmd, convertScreenshotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
