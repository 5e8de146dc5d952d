package application

import (
	"context"
	"fmt"

	"code-converter/backend/internal/features/conversion/domain"
	"code-converter/backend/internal/metrics"
)

// ConversionService is the single entry point used by the HTTP handlers and the
// CLI. Every request yields exactly one Resolution or one error.
type ConversionService interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.Resolution, error)
	Strategies() []StrategyStatus
}

type conversionService struct {
	text       TextResolver
	figma      FigmaService
	screenshot ScreenshotService
}

// NewConversionService wires the three conversion paths together.
func NewConversionService(text TextResolver, figma FigmaService, screenshot ScreenshotService) ConversionService {
	return &conversionService{text: text, figma: figma, screenshot: screenshot}
}

func (s *conversionService) Convert(ctx context.Context, req domain.ConversionRequest) (domain.Resolution, error) {
	var (
		res domain.Resolution
		err error
	)

	switch req.Kind {
	case domain.SourceText:
		res = s.text.ResolveText(ctx, req.Text)
	case domain.SourceFigma:
		res.Strategy = string(domain.SourceFigma)
		res.Code, err = s.figma.Convert(ctx, req.FigmaURL)
	case domain.SourceScreenshot:
		res.Strategy = string(domain.SourceScreenshot)
		res.Code, err = s.screenshot.Convert(ctx, req.ImagePath)
	default:
		err = domain.NewValidationError(domain.ReasonMissingInput, fmt.Sprintf("unknown conversion source %q", req.Kind))
	}

	if err != nil {
		metrics.IncConversion(string(req.Kind), "error")
		return domain.Resolution{}, err
	}
	metrics.IncConversion(string(req.Kind), "ok")
	return res, nil
}

func (s *conversionService) Strategies() []StrategyStatus {
	return s.text.Strategies()
}
