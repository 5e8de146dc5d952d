package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"code-converter/backend/internal/features/conversion/domain"
)

// maxErrorBody bounds how much of an upstream error body ends up in messages.
const maxErrorBody = 512

// classifyTransportError turns an http.Client error into an UPSTREAM_UNAVAILABLE
// ConversionError with a timeout or connection reason.
func classifyTransportError(upstream string, err error) *domain.ConversionError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewUpstreamError(domain.ReasonTimeout, upstream+" request timed out", err)
	}
	return domain.NewUpstreamError(domain.ReasonConnection, "could not connect to "+upstream, err)
}

// statusError reads a bounded prefix of a non-2xx body and wraps it.
func statusError(upstream string, resp *http.Response) *domain.ConversionError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	return domain.NewUpstreamError(domain.ReasonHTTPStatus, upstream+" returned an error status", cause)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
