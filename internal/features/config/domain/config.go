package domain

import (
	"fmt"
	"strings"
)

// GenerationProfile controls how the local model is prompted.
type GenerationProfile struct {
	PromptTemplate string      `json:"prompt_template" yaml:"prompt_template"`
	ModelParams    ModelParams `json:"model_params" yaml:"model_params"`
}

// ModelParams defines the sampling parameters for the local model. A zero
// field means unset and takes its default in WithDefaults, so temperature 0
// selects 0.7 rather than greedy decoding; the completion request omits a zero
// temperature as well. Use a small positive value for near-greedy output.
type ModelParams struct {
	MaxNewTokens int     `json:"max_new_tokens" yaml:"max_new_tokens"`
	Temperature  float64 `json:"temperature" yaml:"temperature"`
	TopK         int     `json:"top_k" yaml:"top_k"`
	TopP         float64 `json:"top_p" yaml:"top_p"`
}

// DefaultPromptTemplate embeds the description at %s.
const DefaultPromptTemplate = "<!-- HTML with Tailwind CSS classes for the following UI description -->\n" +
	"<!-- Description: %s -->\n"

// DefaultGenerationProfile returns the built-in profile.
func DefaultGenerationProfile() GenerationProfile {
	return GenerationProfile{
		PromptTemplate: DefaultPromptTemplate,
		ModelParams: ModelParams{
			MaxNewTokens: 256,
			Temperature:  0.7,
			TopK:         50,
			TopP:         0.95,
		},
	}
}

// WithDefaults fills zero fields from DefaultGenerationProfile. Zero is never
// kept as an explicit setting.
func (p GenerationProfile) WithDefaults() GenerationProfile {
	def := DefaultGenerationProfile()
	if strings.TrimSpace(p.PromptTemplate) == "" {
		p.PromptTemplate = def.PromptTemplate
	}
	if p.ModelParams.MaxNewTokens == 0 {
		p.ModelParams.MaxNewTokens = def.ModelParams.MaxNewTokens
	}
	if p.ModelParams.Temperature == 0 {
		p.ModelParams.Temperature = def.ModelParams.Temperature
	}
	if p.ModelParams.TopK == 0 {
		p.ModelParams.TopK = def.ModelParams.TopK
	}
	if p.ModelParams.TopP == 0 {
		p.ModelParams.TopP = def.ModelParams.TopP
	}
	return p
}

// Validate checks that the profile can be used for generation.
func (p GenerationProfile) Validate() error {
	if strings.Count(p.PromptTemplate, "%s") != 1 {
		return fmt.Errorf("prompt_template must contain exactly one %%s placeholder")
	}
	if p.ModelParams.MaxNewTokens < 1 || p.ModelParams.MaxNewTokens > 4096 {
		return fmt.Errorf("max_new_tokens must be between 1 and 4096, got %d", p.ModelParams.MaxNewTokens)
	}
	if p.ModelParams.Temperature <= 0 || p.ModelParams.Temperature > 2 {
		return fmt.Errorf("temperature must be in (0, 2], got %g", p.ModelParams.Temperature)
	}
	if p.ModelParams.TopK < 0 {
		return fmt.Errorf("top_k must not be negative, got %d", p.ModelParams.TopK)
	}
	if p.ModelParams.TopP <= 0 || p.ModelParams.TopP > 1 {
		return fmt.Errorf("top_p must be in (0, 1], got %g", p.ModelParams.TopP)
	}
	return nil
}

// BuildPrompt renders the template for a description.
func (p GenerationProfile) BuildPrompt(description string) string {
	return strings.Replace(p.PromptTemplate, "%s", description, 1)
}
