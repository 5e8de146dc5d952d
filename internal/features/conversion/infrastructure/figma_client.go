package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"code-converter/backend/internal/features/conversion/domain"
	"code-converter/backend/internal/metrics"
)

const figmaUpstream = "Figma API"

// FigmaClient talks to the Figma REST API.
type FigmaClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewFigmaClient creates a client. baseURL is the files endpoint, e.g.
// https://api.figma.com/v1/files/.
func NewFigmaClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *FigmaClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &FigmaClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("figma"),
	}
}

// HasCredentials reports whether an API key is configured.
func (c *FigmaClient) HasCredentials() bool {
	return c.apiKey != ""
}

// FetchFile downloads the design file fileID.
func (c *FigmaClient) FetchFile(ctx context.Context, fileID string) (*domain.FigmaFile, error) {
	if !c.HasCredentials() {
		return nil, domain.NewInternalError(domain.ReasonMissingCredential,
			"Figma API Key (FIGMA_API_KEY) not set in environment variables", nil)
	}

	start := time.Now()
	defer func() { metrics.ObserveUpstreamDuration("figma", time.Since(start)) }()

	apiURL := c.baseURL + url.PathEscape(fileID)
	c.logger.Info("fetching figma file", zap.String("url", apiURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, domain.NewInternalError(domain.ReasonUnexpected, "failed to create Figma request", err)
	}
	req.Header.Set("X-Figma-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		convErr := classifyTransportError(figmaUpstream, err)
		metrics.IncError("figma", string(convErr.Reason))
		return nil, convErr
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("close body failed", zap.Error(err))
		}
	}()

	if !isSuccess(resp.StatusCode) {
		metrics.IncError("figma", "http_status")
		return nil, statusError(figmaUpstream, resp)
	}

	var file domain.FigmaFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		metrics.IncError("figma", "decode_response")
		return nil, domain.NewMalformedError("Figma API returned an unreadable document", err)
	}
	return &file, nil
}
