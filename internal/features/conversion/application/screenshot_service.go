package application

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"code-converter/backend/internal/features/conversion/domain"
)

// ScreenshotService converts an uploaded screenshot into markup.
type ScreenshotService interface {
	Convert(ctx context.Context, imagePath string) (domain.GeneratedCode, error)
}

type screenshotService struct {
	logger *zap.Logger
}

// NewScreenshotService creates a ScreenshotService. No vision model is
// involved; the output is a placeholder naming the image.
func NewScreenshotService(logger *zap.Logger) ScreenshotService {
	return &screenshotService{logger: logger.Named("screenshot")}
}

func (s *screenshotService) Convert(_ context.Context, imagePath string) (domain.GeneratedCode, error) {
	if strings.TrimSpace(imagePath) == "" {
		return "", domain.NewValidationError(domain.ReasonMissingInput, "No image file provided")
	}

	imageName := filepath.Base(imagePath)
	s.logger.Info("processing screenshot", zap.String("image", imageName))

	return domain.GeneratedCode(fmt.Sprintf(`
<!-- Generated HTML for screenshot: %[1]s -->
<div class="p-4 bg-green-100 border border-green-400 text-green-700 rounded-md text-center">
    <p>Placeholder for screenshot-to-code conversion.</p>
    <p>Image received: <strong>%[1]s</strong></p>
    <img src="https://placehold.co/300x200/cccccc/000000?text=Screenshot+Placeholder" alt="Screenshot Placeholder" class="mx-auto mt-4 rounded-md shadow-md"/>
</div>
`, html.EscapeString(imageName))), nil
}
