package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"code-converter/backend/internal/config"
	conversion_http "code-converter/backend/internal/features/conversion/presentation/http"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		CORSAllowedOrigins: []string{"*"},
		ErrorRendering:     config.ErrorRenderingJSON,
		RemoteAITimeout:    time.Second,
		LocalModel:         config.LocalModelConfig{Dir: filepath.Join(dir, "models")},
		FigmaAPIBase:       "http://127.0.0.1:1/",
		UploadDir:          filepath.Join(dir, "uploads"),
		GenerationProfile:  filepath.Join(dir, "profile.json"),
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	a, err := newApp(testContext(t), testConfig(t), zap.NewNop(), true)
	require.NoError(t, err)
	assert.Empty(t, a.localDevice)
	return newRouter(a)
}

func TestRouterHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body conversion_http.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]bool{"remote": false, "local": false, "placeholder": true}, body.Strategies)
	assert.Equal(t, "none", body.LocalDevice)
}

func TestNewAppSkipsMissingLocalModel(t *testing.T) {
	a, err := newApp(testContext(t), testConfig(t), zap.NewNop(), true)
	require.NoError(t, err)

	var names []string
	for _, s := range a.conversion.Strategies() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"remote", "placeholder"}, names)
}

func TestRouterTextToCodeWithoutModels(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/text-to-code", strings.NewReader(`{"text":"a blue button"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Blue Button")
	assert.Equal(t, "placeholder", w.Header().Get(conversion_http.StrategyHeader))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterFigmaWithoutKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/figma-to-code", strings.NewReader(`{"url":"https://www.figma.com/file/abc/x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "FIGMA_API_KEY")
}

func TestRouterMetricsAndProfile(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "codegen_local_model_ready")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config/profile", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewAppRejectsInvalidProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.GenerationProfile = filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, writeFile(cfg.GenerationProfile, `{"prompt_template":"no placeholder"}`))

	_, err := newApp(testContext(t), cfg, zap.NewNop(), false)
	assert.ErrorContains(t, err, "generation profile")
}

func TestConvertTextCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COLAB_AI_API_URL", "")
	t.Setenv("LOCAL_MODEL_DIR", filepath.Join(dir, "missing"))
	t.Setenv("GENERATION_PROFILE", filepath.Join(dir, "profile.json"))
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"convert", "text", "large heading"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "<h1 class='text-4xl font-bold text-gray-800 mb-4'>Large Heading</h1>\n", out.String())
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
