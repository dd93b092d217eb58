package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textlens/internal/apihandlers"
	"textlens/internal/app"
	"textlens/internal/config"
	"textlens/internal/models"
)

const (
	emotionModel   = "acme/emotions"
	gibberishModel = "acme/gibberish"
)

// newInferenceStub serves config.json for both models and answers inference
// calls with fixed logits. Texts containing "zzz" score as noise.
func newInferenceStub(t *testing.T) *httptest.Server {
	t.Helper()
	labels := map[string]map[string]string{
		emotionModel:   {"0": "joy", "1": "neutral", "2": "sadness"},
		gibberishModel: {"0": "clean", "1": "mild gibberish", "2": "noise", "3": "word salad"},
	}

	mux := http.NewServeMux()
	for model, id2label := range labels {
		id2label := id2label
		mux.HandleFunc("/hub/"+model+"/resolve/main/config.json", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"id2label": id2label})
		})
	}
	mux.HandleFunc("/models/"+emotionModel, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[[{"label":"joy","score":3.2},{"label":"neutral","score":0.4},{"label":"sadness","score":-1.5}]]`)
	})
	mux.HandleFunc("/models/"+gibberishModel, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Inputs string `json:"inputs"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if strings.Contains(req.Inputs, "zzz") {
			fmt.Fprint(w, `[{"label":"noise","score":5},{"label":"clean","score":0},{"label":"mild gibberish","score":0},{"label":"word salad","score":1}]`)
			return
		}
		fmt.Fprint(w, `[{"label":"clean","score":6},{"label":"noise","score":0},{"label":"mild gibberish","score":1},{"label":"word salad","score":0}]`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(dsn, stubURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Database.DSN = dsn
	cfg.Database.MaxConns = 4
	cfg.Inference.HubURL = stubURL + "/hub"
	cfg.Inference.URL = stubURL + "/models"
	cfg.Inference.MaxLength = 512
	cfg.Inference.EmotionModel = emotionModel
	cfg.Inference.GibberishModel = gibberishModel
	cfg.Server.Port = 8000
	cfg.Server.GinMode = gin.TestMode
	cfg.CORS.AllowedOrigins = []string{"*"}
	return cfg
}

// TestAnalysisRoundTrip drives the HTTP API against a real database and a stub
// inference server. It runs only when TEXTLENS_TEST_DSN is set, and shares
// that database with the store tests, so run with -p 1.
func TestAnalysisRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEXTLENS_TEST_DSN")
	if dsn == "" {
		t.Skip("TEXTLENS_TEST_DSN not set; skipping end-to-end test")
	}
	ctx := context.Background()
	stub := newInferenceStub(t)
	cfg := testConfig(dsn, stub.URL)
	require.NoError(t, cfg.Validate())

	a, err := app.NewApp(ctx, cfg, app.Options{LoadModels: true})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	existing, err := a.AnalysisService.ListEntries(ctx)
	require.NoError(t, err)
	for _, r := range existing {
		require.NoError(t, a.AnalysisService.DeleteEntry(ctx, r.ID))
	}

	gin.SetMode(gin.TestMode)
	router := apihandlers.NewRouter(apihandlers.NewAPIHandler(a.AnalysisService, a.Logger), apihandlers.RouterOptions{})
	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/analyze", `{"text":"I am feeling very happy today!"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "joy", result.Emotion.Label)
	assert.Greater(t, result.Emotion.Confidence, 0.5)
	assert.Equal(t, "clean", result.Gibberish.Label)

	w = do(http.MethodPost, "/analyze", `{"text":"zzz qqq xkcd"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(http.MethodGet, "/entries/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.AnalysisRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Less(t, entries[0].ID, entries[1].ID)
	assert.Equal(t, "I am feeling very happy today!", entries[0].Text)
	assert.Equal(t, result, entries[0].Result())
	assert.Equal(t, "noise", entries[1].GibberishLabel)
	for _, e := range entries {
		assert.GreaterOrEqual(t, e.EmotionConfidence, 0.0)
		assert.LessOrEqual(t, e.EmotionConfidence, 1.0)
		assert.GreaterOrEqual(t, e.GibberishScore, 0.0)
		assert.LessOrEqual(t, e.GibberishScore, 1.0)
	}

	id := entries[0].ID
	w = do(http.MethodGet, fmt.Sprintf("/entries/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodDelete, fmt.Sprintf("/delete/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(http.MethodGet, fmt.Sprintf("/entries/%d", id), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(http.MethodDelete, fmt.Sprintf("/delete/%d", id), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Ids beyond the int4 id column are simply absent.
	w = do(http.MethodGet, "/entries/3000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(http.MethodDelete, "/delete/3000000000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewApp_BadDSN(t *testing.T) {
	cfg := testConfig("postgres://nobody@127.0.0.1:1/none?connect_timeout=1", "http://127.0.0.1:1")
	_, err := app.NewApp(context.Background(), cfg, app.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init primary store")
}
