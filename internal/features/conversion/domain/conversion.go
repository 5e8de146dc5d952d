package domain

// SourceKind identifies what a conversion request starts from.
type SourceKind string

const (
	SourceText       SourceKind = "text"
	SourceScreenshot SourceKind = "screenshot"
	SourceFigma      SourceKind = "figma"
)

// GeneratedCode is the markup produced for a single conversion request.
type GeneratedCode string

// ConversionRequest carries exactly one payload, selected by Kind.
type ConversionRequest struct {
	Kind      SourceKind
	Text      string
	ImagePath string
	FigmaURL  string
}

// Resolution is the outcome of resolving a text description.
type Resolution struct {
	Code     GeneratedCode `json:"code"`
	Strategy string        `json:"strategy"`
}

// TextToCodeRequest is the body of POST /api/text-to-code.
type TextToCodeRequest struct {
	Text *string `json:"text" binding:"required"`
}

// FigmaToCodeRequest is the body of POST /api/figma-to-code.
type FigmaToCodeRequest struct {
	URL *string `json:"url" binding:"required"`
}

// CodeResponse is returned by every conversion endpoint on success.
type CodeResponse struct {
	Code GeneratedCode `json:"code"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
