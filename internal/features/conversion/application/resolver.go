package application

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"code-converter/backend/internal/features/conversion/domain"
	"code-converter/backend/internal/metrics"
)

// PlaceholderStrategyName names the built-in keyword strategy.
const PlaceholderStrategyName = "placeholder"

// Strategy is one way of turning a description into code.
type Strategy interface {
	Name() string
	// Available reports whether the strategy is configured at all. Unavailable
	// strategies are skipped without an attempt.
	Available() bool
	Generate(ctx context.Context, description string) (string, error)
}

// StrategyStatus describes a configured strategy for health output.
type StrategyStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// TextResolver turns a text description into code.
type TextResolver interface {
	ResolveText(ctx context.Context, description string) domain.Resolution
	Strategies() []StrategyStatus
}

// resolver tries each strategy in order and returns the first success.
type resolver struct {
	strategies []Strategy
	fallback   Strategy
	logger     *zap.Logger
}

// NewResolver creates a TextResolver over strategies, in priority order. The
// placeholder strategy is used when every other strategy fails, so it need not
// be part of strategies.
func NewResolver(logger *zap.Logger, strategies ...Strategy) TextResolver {
	var kept []Strategy
	for _, s := range strategies {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &resolver{
		strategies: kept,
		fallback:   NewPlaceholderStrategy(),
		logger:     logger.Named("resolver"),
	}
}

// ResolveText never fails: upstream errors are logged and the next strategy is
// tried.
func (r *resolver) ResolveText(ctx context.Context, description string) domain.Resolution {
	r.logger.Info("resolving text description", zap.Int("length", len(description)))

	for _, s := range r.strategies {
		name := s.Name()
		if !s.Available() {
			metrics.IncStrategyAttempt(name, "skipped")
			r.logger.Debug("strategy unavailable, skipping", zap.String("strategy", name))
			continue
		}

		code, err := s.Generate(ctx, description)
		if err == nil && strings.TrimSpace(code) == "" {
			err = domain.NewInternalError(domain.ReasonEmptyOutput, name+" strategy returned no code", nil)
		}
		if err != nil {
			metrics.IncStrategyAttempt(name, "failure")
			r.logger.Warn("strategy failed, falling back",
				zap.String("strategy", name),
				zap.String("kind", string(domain.KindOf(err))),
				zap.String("reason", string(domain.ReasonOf(err))),
				zap.Error(err),
			)
			continue
		}

		metrics.IncStrategyAttempt(name, "success")
		r.logger.Info("strategy succeeded", zap.String("strategy", name))
		return domain.Resolution{Code: domain.GeneratedCode(code), Strategy: name}
	}

	code, _ := r.fallback.Generate(ctx, description)
	metrics.IncStrategyAttempt(r.fallback.Name(), "success")
	r.logger.Info("using placeholder output", zap.String("strategy", r.fallback.Name()))
	return domain.Resolution{Code: domain.GeneratedCode(code), Strategy: r.fallback.Name()}
}

// Strategies lists the configured strategies in priority order, ending with
// the placeholder.
func (r *resolver) Strategies() []StrategyStatus {
	out := make([]StrategyStatus, 0, len(r.strategies)+1)
	for _, s := range r.strategies {
		if s.Name() == r.fallback.Name() {
			continue
		}
		out = append(out, StrategyStatus{Name: s.Name(), Available: s.Available()})
	}
	return append(out, StrategyStatus{Name: r.fallback.Name(), Available: true})
}
