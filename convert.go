package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"code-converter/backend/internal/features/conversion/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run a single conversion and print the generated code",
	Long: `Runs one conversion with the same pipeline the server uses and prints the
generated code on stdout. Logs go to stderr.

Available subcommands:
  text        - convert a text description
  figma       - convert a Figma file URL
  screenshot  - convert a screenshot file`,
}

var convertTextCmd = &cobra.Command{
	Use:   "text [description]",
	Short: "Convert a text description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, domain.ConversionRequest{Kind: domain.SourceText, Text: args[0]})
	},
}

var convertFigmaCmd = &cobra.Command{
	Use:   "figma [url]",
	Short: "Convert a Figma file URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, domain.ConversionRequest{Kind: domain.SourceFigma, FigmaURL: args[0]})
	},
}

var convertScreenshotCmd = &cobra.Command{
	Use:   "screenshot [path]",
	Short: "Convert a screenshot image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, domain.ConversionRequest{Kind: domain.SourceScreenshot, ImagePath: args[0]})
	},
}

func runConvert(cmd *cobra.Command, req domain.ConversionRequest) error {
	// Only text conversion can use the local model.
	a, err := newApp(cmd.Context(), cfg, logger, req.Kind == domain.SourceText)
	if err != nil {
		return err
	}

	res, err := a.conversion.Convert(cmd.Context(), req)
	if err != nil {
		convErr := domain.AsConversionError(err)
		return fmt.Errorf("%s conversion failed (%s): %w", req.Kind, convErr.Kind, err)
	}

	logger.Info("conversion finished", zap.String("strategy", res.Strategy))
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Code)
	return err
}
