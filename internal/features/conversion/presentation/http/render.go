package http

import (
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"

	"code-converter/backend/internal/config"
	"code-converter/backend/internal/features/conversion/domain"
	"code-converter/backend/internal/metrics"
	"code-converter/backend/internal/middleware"
)

const errorMarkupFormat = `
<div class="p-4 bg-red-100 border border-red-400 text-red-700 rounded-md">
    <p>Error: %s</p>
    <p>Details: %s</p>
</div>
`

// respondError renders err according to the configured error rendering mode.
// Validation errors are always a 400 JSON body. Other kinds become a 500 JSON
// body, or red markup inside a 200 code response in inline mode.
func (h *ConversionHandler) respondError(c *gin.Context, source domain.SourceKind, err error) {
	convErr := domain.AsConversionError(err)
	_ = c.Error(err)
	c.Set(middleware.ErrorKindKey, string(convErr.Kind))
	c.Set(middleware.ErrorReasonKey, string(convErr.Reason))
	metrics.IncError(string(source), string(convErr.Reason))

	if convErr.Kind == domain.KindValidation {
		c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: convErr.Message})
		return
	}

	if h.errorRendering == config.ErrorRenderingInline {
		c.JSON(http.StatusOK, domain.CodeResponse{Code: errorMarkup(convErr)})
		return
	}

	c.JSON(http.StatusInternalServerError, domain.ErrorResponse{
		Error:   convErr.Message,
		Details: convErr.Details(),
	})
}

func errorMarkup(err *domain.ConversionError) domain.GeneratedCode {
	details := err.Details()
	if details == "" {
		details = "No further details."
	}
	return domain.GeneratedCode(fmt.Sprintf(errorMarkupFormat,
		html.EscapeString(err.Message), html.EscapeString(details)))
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: message})
}
