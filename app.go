package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"code-converter/backend/internal/config"
	configapp "code-converter/backend/internal/features/config/application"
	"code-converter/backend/internal/features/conversion/application"
	"code-converter/backend/internal/features/conversion/infrastructure"
	"code-converter/backend/internal/metrics"
)

const figmaTimeout = 30 * time.Second

// app holds the services built once at startup. Nothing here is mutated after
// newApp returns.
type app struct {
	cfg           *config.Config
	logger        *zap.Logger
	conversion    application.ConversionService
	configService configapp.ConfigService
	localDevice   string
}

// newApp wires the conversion pipeline. The local model is only loaded when
// withLocalModel is set; a failed load is logged and the resolver simply skips
// the local strategy.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, withLocalModel bool) (*app, error) {
	profiles := config.NewProfileService(cfg.GenerationProfile)
	profile, err := profiles.LoadProfile()
	if err != nil {
		return nil, fmt.Errorf("failed to load generation profile: %w", err)
	}

	remote := infrastructure.NewRemoteInferenceClient(cfg.RemoteAIURL, cfg.RemoteAITimeout, logger)
	if !remote.Available() {
		logger.Info("COLAB_AI_API_URL not set, remote inference disabled")
	}

	strategies := []application.Strategy{remote}

	// A nil runner must not reach the resolver as a typed-nil Strategy.
	var local *infrastructure.LocalModelRunner
	if withLocalModel {
		local, err = infrastructure.NewLocalModelRunner(ctx, cfg.LocalModel, *profile, logger)
		if err != nil {
			logger.Warn("local model unavailable, continuing without it", zap.Error(err))
		} else {
			logger.Info("local model ready", zap.String("device", local.Device()))
			strategies = append(strategies, local)
		}
	}
	metrics.SetLocalModelReady(local.Available())

	figma := infrastructure.NewFigmaClient(cfg.FigmaAPIKey, cfg.FigmaAPIBase, figmaTimeout, logger)
	if !figma.HasCredentials() {
		logger.Warn("FIGMA_API_KEY not set, figma conversion will fail")
	}

	conversion := application.NewConversionService(
		application.NewResolver(logger, strategies...),
		application.NewFigmaService(figma, logger),
		application.NewScreenshotService(logger),
	)

	return &app{
		cfg:           cfg,
		logger:        logger,
		conversion:    conversion,
		configService: configapp.NewConfigService(profiles, *profile),
		localDevice:   local.Device(),
	}, nil
}
