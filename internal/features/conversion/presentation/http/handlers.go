package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"code-converter/backend/internal/features/conversion/application"
	"code-converter/backend/internal/features/conversion/domain"
	"code-converter/backend/internal/middleware"
)

// StrategyHeader reports which strategy produced the returned code.
const StrategyHeader = "X-Conversion-Strategy"

// ConversionHandler serves the three conversion endpoints.
type ConversionHandler struct {
	service        application.ConversionService
	uploadDir      string
	errorRendering string
	logger         *zap.Logger
}

// NewConversionHandler creates a new ConversionHandler. Uploaded screenshots are
// written below uploadDir for the duration of a request.
func NewConversionHandler(service application.ConversionService, uploadDir, errorRendering string, logger *zap.Logger) *ConversionHandler {
	return &ConversionHandler{
		service:        service,
		uploadDir:      uploadDir,
		errorRendering: errorRendering,
		logger:         logger.Named("http"),
	}
}

// RegisterRoutes mounts the conversion endpoints on group.
func (h *ConversionHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/text-to-code", tagSource(domain.SourceText), h.TextToCodeHandler)
	group.POST("/screenshot-to-code", tagSource(domain.SourceScreenshot), h.ScreenshotToCodeHandler)
	group.POST("/figma-to-code", tagSource(domain.SourceFigma), h.FigmaToCodeHandler)
}

// tagSource records the conversion source for the request logger.
func tagSource(kind domain.SourceKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ConversionSourceKey, string(kind))
		c.Next()
	}
}

// TextToCodeHandler converts a text description. Upstream failures never reach
// the client; the resolver falls back to placeholder markup.
func (h *ConversionHandler) TextToCodeHandler(c *gin.Context) {
	var req domain.TextToCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil {
		badRequest(c, "Missing text in request body")
		return
	}

	h.convert(c, domain.ConversionRequest{Kind: domain.SourceText, Text: *req.Text})
}

// FigmaToCodeHandler converts a Figma file URL.
func (h *ConversionHandler) FigmaToCodeHandler(c *gin.Context) {
	var req domain.FigmaToCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == nil {
		badRequest(c, "Missing Figma URL in request body")
		return
	}

	h.convert(c, domain.ConversionRequest{Kind: domain.SourceFigma, FigmaURL: *req.URL})
}

// ScreenshotToCodeHandler accepts a multipart upload under the "image" field.
// The file is stored in a per-request directory that is removed before the
// handler returns.
func (h *ConversionHandler) ScreenshotToCodeHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		// A file input submitted without a file arrives as a plain form value.
		if _, ok := c.GetPostForm("image"); ok {
			badRequest(c, "No selected file")
			return
		}
		badRequest(c, "No image file provided")
		return
	}

	name := filepath.Base(file.Filename)
	if file.Filename == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		badRequest(c, "No selected file")
		return
	}

	dir := filepath.Join(h.uploadDir, uuid.NewString())
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			h.logger.Error("failed to remove upload directory", zap.String("dir", dir), zap.Error(err))
		}
	}()

	imagePath := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		h.respondError(c, domain.SourceScreenshot,
			domain.NewInternalError(domain.ReasonUnexpected, "Failed to create upload directory", err))
		return
	}
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		h.respondError(c, domain.SourceScreenshot,
			domain.NewInternalError(domain.ReasonUnexpected, "Failed to store uploaded image", err))
		return
	}

	h.convert(c, domain.ConversionRequest{Kind: domain.SourceScreenshot, ImagePath: imagePath})
}

// RootHandler answers the liveness probe used by the front-end.
func (h *ConversionHandler) RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Code Converter Backend is running!")
}

func (h *ConversionHandler) convert(c *gin.Context, req domain.ConversionRequest) {
	res, err := h.service.Convert(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, req.Kind, err)
		return
	}

	c.Set(middleware.ConversionStrategyKey, res.Strategy)
	c.Header(StrategyHeader, res.Strategy)
	c.JSON(http.StatusOK, domain.CodeResponse{Code: res.Code})
}
