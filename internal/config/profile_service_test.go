package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-converter/backend/internal/features/config/domain"
)

func TestLoadProfileMissingFileUsesDefaults(t *testing.T) {
	svc := NewProfileService(filepath.Join(t.TempDir(), "missing.json"))

	profile, err := svc.LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGenerationProfile(), *profile)
}

func TestLoadProfileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model_params": {"temperature": 0.2}}`), 0o644))

	profile, err := NewProfileService(path).LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPromptTemplate, profile.PromptTemplate)
	assert.Equal(t, 0.2, profile.ModelParams.Temperature)
	assert.Equal(t, 256, profile.ModelParams.MaxNewTokens)
	assert.Equal(t, 50, profile.ModelParams.TopK)
	assert.Equal(t, 0.95, profile.ModelParams.TopP)
}

func TestLoadProfileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "prompt_template: \"Write HTML for: %s\\n\"\nmodel_params:\n  max_new_tokens: 128\n  top_k: 40\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	profile, err := NewProfileService(path).LoadProfile()
	require.NoError(t, err)
	assert.Equal(t, "Write HTML for: %s\n", profile.PromptTemplate)
	assert.Equal(t, 128, profile.ModelParams.MaxNewTokens)
	assert.Equal(t, 40, profile.ModelParams.TopK)
}

func TestLoadProfileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "broken json", content: `{"prompt_template": `},
		{name: "template without placeholder", content: `{"prompt_template": "no slot here"}`},
		{name: "top_p out of range", content: `{"model_params": {"top_p": 1.5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "profile.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := NewProfileService(path).LoadProfile()
			assert.Error(t, err)
		})
	}
}

func TestSaveProfileRoundTrip(t *testing.T) {
	for _, name := range []string{"nested/profile.json", "nested/profile.yml"} {
		t.Run(name, func(t *testing.T) {
			svc := NewProfileService(filepath.Join(t.TempDir(), name))
			profile := domain.DefaultGenerationProfile()
			profile.ModelParams.MaxNewTokens = 512

			require.NoError(t, svc.SaveProfile(&profile))

			loaded, err := svc.LoadProfile()
			require.NoError(t, err)
			assert.Equal(t, profile, *loaded)
		})
	}
}

func TestSaveProfileValidates(t *testing.T) {
	svc := NewProfileService(filepath.Join(t.TempDir(), "profile.json"))
	profile := domain.DefaultGenerationProfile()
	profile.PromptTemplate = "missing slot"

	err := svc.SaveProfile(&profile)
	require.Error(t, err)
	_, statErr := os.Stat(svc.Path())
	assert.True(t, os.IsNotExist(statErr))
}
