package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"code-converter/backend/internal/config"
	configdomain "code-converter/backend/internal/features/config/domain"
	"code-converter/backend/internal/features/conversion/domain"
	"code-converter/backend/internal/metrics"
)

// ErrModelNotFound is returned when the model directory holds no artifacts.
var ErrModelNotFound = errors.New("local model artifacts not found")

const (
	loadTimeout   = 10 * time.Second
	localUpstream = "local model"
)

var (
	artifactNames = map[string]bool{
		"config.json":           true,
		"tokenizer.json":        true,
		"tokenizer_config.json": true,
		"vocab.json":            true,
		"merges.txt":            true,
	}
	artifactExts = map[string]bool{
		".safetensors": true,
		".bin":         true,
		".gguf":        true,
		".pt":          true,
	}
)

// LocalModelRunner drives a locally served causal language model through an
// OpenAI-compatible completion endpoint. It is built once at startup and is
// read-only afterwards.
type LocalModelRunner struct {
	client  *openai.Client
	model   string
	device  string
	profile configdomain.GenerationProfile
	timeout time.Duration
	sem     *semaphore.Weighted
	logger  *zap.Logger
}

// NewLocalModelRunner checks the model directory, picks a device and verifies
// that the serving pipeline answers. Any failure leaves the caller without a
// runner; it is never fatal for the process.
func NewLocalModelRunner(ctx context.Context, cfg config.LocalModelConfig, profile configdomain.GenerationProfile, logger *zap.Logger) (*LocalModelRunner, error) {
	logger = logger.Named("local_model")

	if err := checkArtifacts(cfg.Dir); err != nil {
		return nil, err
	}

	device := resolveDevice(cfg.Device)
	logger.Info("loading local model",
		zap.String("dir", cfg.Dir),
		zap.String("model", cfg.Name),
		zap.String("device", device),
	)

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	client := openai.NewClientWithConfig(clientConfig)

	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()
	models, err := client.ListModels(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to reach generation pipeline at %s: %w", cfg.BaseURL, err)
	}

	served := false
	for _, m := range models.Models {
		if m.ID == cfg.Name {
			served = true
			break
		}
	}
	if !served {
		logger.Warn("configured model not listed by pipeline", zap.String("model", cfg.Name), zap.Int("listed", len(models.Models)))
	}

	return &LocalModelRunner{
		client:  client,
		model:   cfg.Name,
		device:  device,
		profile: profile.WithDefaults(),
		timeout: cfg.Timeout,
		sem:     semaphore.NewWeighted(1),
		logger:  logger,
	}, nil
}

func (r *LocalModelRunner) Name() string {
	return "local"
}

func (r *LocalModelRunner) Available() bool {
	return r != nil && r.client != nil
}

// Device reports the device the pipeline was bound to.
func (r *LocalModelRunner) Device() string {
	if r == nil {
		return ""
	}
	return r.device
}

// Infer runs one generation for prompt and returns the raw output, which
// includes the echoed prompt. Calls are serialized, and the configured timeout
// covers both the wait for the pipeline and the completion itself.
func (r *LocalModelRunner) Infer(ctx context.Context, prompt string) (string, error) {
	if !r.Available() {
		return "", domain.NewInternalError(domain.ReasonUnexpected, "local model is not initialized", nil)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		metrics.IncError("local", "busy")
		return "", classifyTransportError(localUpstream, err)
	}
	defer r.sem.Release(1)

	start := time.Now()
	defer func() { metrics.ObserveUpstreamDuration("local", time.Since(start)) }()

	// top_k has no field in the completion API; the server applies its own.
	params := r.profile.ModelParams
	resp, err := r.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       r.model,
		Prompt:      prompt,
		MaxTokens:   params.MaxNewTokens,
		Temperature: float32(params.Temperature),
		TopP:        float32(params.TopP),
		Echo:        true,
	})
	if err != nil {
		metrics.IncError("local", "completion")
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", domain.NewUpstreamError(domain.ReasonHTTPStatus, localUpstream+" returned an error status", err)
		}
		return "", classifyTransportError(localUpstream, err)
	}
	if len(resp.Choices) == 0 {
		metrics.IncError("local", "no_choices")
		return "", domain.NewMalformedError("local model returned no choices", nil)
	}
	return resp.Choices[0].Text, nil
}

// Generate builds the prompt for description, runs inference and cleans the
// output.
func (r *LocalModelRunner) Generate(ctx context.Context, description string) (string, error) {
	if !r.Available() {
		return "", domain.NewInternalError(domain.ReasonUnexpected, "local model is not initialized", nil)
	}
	prompt := r.profile.BuildPrompt(description)

	raw, err := r.Infer(ctx, prompt)
	if err != nil {
		return "", err
	}

	code := CleanGeneratedCode(raw, prompt)
	if code == "" {
		return "", domain.NewInternalError(domain.ReasonEmptyOutput, "local model produced no code", nil)
	}
	r.logger.Debug("local generation succeeded", zap.Int("code_length", len(code)))
	return code, nil
}

func checkArtifacts(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrModelNotFound, dir)
		}
		return fmt.Errorf("failed to read model directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if artifactNames[name] || artifactExts[filepath.Ext(name)] {
			return nil
		}
	}
	return fmt.Errorf("%w: no model files in %s", ErrModelNotFound, dir)
}

func resolveDevice(requested string) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "cuda", "gpu":
		return "cuda"
	case "cpu":
		return "cpu"
	}
	if v := os.Getenv("CUDA_VISIBLE_DEVICES"); v != "" && v != "-1" {
		return "cuda"
	}
	if _, err := os.Stat("/dev/nvidia0"); err == nil {
		return "cuda"
	}
	return "cpu"
}
