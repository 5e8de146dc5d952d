package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"code-converter/backend/internal/features/conversion/domain"
	"code-converter/backend/internal/metrics"
)

const remoteUpstream = "remote AI endpoint"

// RemoteInferenceClient posts descriptions to an external inference endpoint
// that answers with a {"code"} or {"error"} envelope.
type RemoteInferenceClient struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	logger   *zap.Logger
}

// NewRemoteInferenceClient creates a client for endpoint. An empty endpoint
// yields a client that reports itself unavailable.
func NewRemoteInferenceClient(endpoint string, timeout time.Duration, logger *zap.Logger) *RemoteInferenceClient {
	return &RemoteInferenceClient{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.Named("remote"),
	}
}

func (c *RemoteInferenceClient) Name() string {
	return "remote"
}

func (c *RemoteInferenceClient) Available() bool {
	return c.endpoint != ""
}

// Generate sends one request and returns the generated code verbatim.
func (c *RemoteInferenceClient) Generate(ctx context.Context, description string) (string, error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstreamDuration("remote", time.Since(start)) }()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"text": description})
	if err != nil {
		return "", domain.NewInternalError(domain.ReasonUnexpected, "failed to marshal remote request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", domain.NewInternalError(domain.ReasonUnexpected, "failed to create remote request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		convErr := classifyTransportError(remoteUpstream, err)
		metrics.IncError("remote", string(convErr.Reason))
		return "", convErr
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug("close body failed", zap.Error(err))
		}
	}()

	if !isSuccess(resp.StatusCode) {
		metrics.IncError("remote", fmt.Sprintf("api_error_%d", resp.StatusCode))
		return "", statusError(remoteUpstream, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		convErr := classifyTransportError(remoteUpstream, err)
		metrics.IncError("remote", string(convErr.Reason))
		return "", convErr
	}

	code, err := parseRemoteEnvelope(body)
	if err != nil {
		metrics.IncError("remote", string(domain.ReasonOf(err)))
		return "", err
	}

	c.logger.Debug("remote generation succeeded", zap.Int("code_length", len(code)))
	return code, nil
}

// parseRemoteEnvelope accepts {"code": string} and reports {"error": ...}
// bodies as remote errors. Anything else is malformed.
func parseRemoteEnvelope(body []byte) (string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", domain.NewMalformedError("remote AI endpoint returned invalid JSON", err)
	}

	if raw, ok := envelope["code"]; ok {
		var code string
		if err := json.Unmarshal(raw, &code); err != nil {
			return "", domain.NewMalformedError("remote AI endpoint returned a non-string code field", err)
		}
		return code, nil
	}

	if raw, ok := envelope["error"]; ok {
		message := rawText(raw)
		if msg, ok := envelope["message"]; ok {
			message = rawText(msg)
		}
		details := "No further details."
		if d, ok := envelope["details"]; ok {
			details = rawText(d)
		}
		return "", domain.NewUpstreamError(domain.ReasonRemoteError,
			"remote AI error: "+message, errors.New(details))
	}

	return "", domain.NewMalformedError("unexpected response format from remote AI endpoint", nil)
}

// rawText renders a JSON value as text, unquoting strings.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
