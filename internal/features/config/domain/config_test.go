package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	profile := GenerationProfile{PromptTemplate: "Describe: %s\n"}

	assert.Equal(t, "Describe: a 100% wide card\n", profile.BuildPrompt("a 100% wide card"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *GenerationProfile)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(p *GenerationProfile) {}},
		{name: "two placeholders", mutate: func(p *GenerationProfile) { p.PromptTemplate = "%s %s" }, wantErr: true},
		{name: "zero tokens", mutate: func(p *GenerationProfile) { p.ModelParams.MaxNewTokens = 0 }, wantErr: true},
		{name: "zero temperature", mutate: func(p *GenerationProfile) { p.ModelParams.Temperature = 0 }, wantErr: true},
		{name: "hot temperature", mutate: func(p *GenerationProfile) { p.ModelParams.Temperature = 3 }, wantErr: true},
		{name: "negative top_k", mutate: func(p *GenerationProfile) { p.ModelParams.TopK = -1 }, wantErr: true},
		{name: "zero top_p", mutate: func(p *GenerationProfile) { p.ModelParams.TopP = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := DefaultGenerationProfile()
			tt.mutate(&profile)
			err := profile.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithDefaultsTreatsZeroAsUnset(t *testing.T) {
	profile := GenerationProfile{
		PromptTemplate: "Q: %s\n",
		ModelParams:    ModelParams{MaxNewTokens: 64, Temperature: 0, TopP: 0.5},
	}.WithDefaults()

	assert.Equal(t, "Q: %s\n", profile.PromptTemplate)
	assert.Equal(t, 64, profile.ModelParams.MaxNewTokens)
	assert.Equal(t, 0.7, profile.ModelParams.Temperature)
	assert.Equal(t, 50, profile.ModelParams.TopK)
	assert.Equal(t, 0.5, profile.ModelParams.TopP)
	assert.NoError(t, profile.Validate())
}
