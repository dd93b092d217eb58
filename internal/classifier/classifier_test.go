package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = "acme/gibberish-detector"

var gibberishLabels = map[string]string{"0": "clean", "1": "mild gibberish", "2": "noise", "3": "word salad"}

// stubServer serves a model config and answers inference calls with handler.
type stubServer struct {
	*httptest.Server
	inferenceCalls atomic.Int32
	lastRequest    inferenceRequest
	lastAuth       string
}

func newStubServer(t *testing.T, id2label map[string]string, handler func(w http.ResponseWriter, r *http.Request)) *stubServer {
	t.Helper()
	s := &stubServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/hub/"+testModel+"/resolve/main/config.json", func(w http.ResponseWriter, r *http.Request) {
		s.lastAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"architectures": []string{"RobertaForSequenceClassification"},
			"id2label":      id2label,
		})
	})
	mux.HandleFunc("/models/"+testModel, func(w http.ResponseWriter, r *http.Request) {
		s.inferenceCalls.Add(1)
		s.lastAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&s.lastRequest))
		handler(w, r)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) options() Options {
	return Options{
		HubURL:       s.URL + "/hub/",
		InferenceURL: s.URL + "/models",
		APIToken:     "hf_test",
		MaxLength:    512,
	}
}

func respondJSON(body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}
}

func loadedClassifier(t *testing.T, s *stubServer) *Classifier {
	t.Helper()
	c := New(testModel, s.options())
	require.NoError(t, c.Load(context.Background()))
	return c
}

func TestLoad_OrdersLabelsByID(t *testing.T) {
	s := newStubServer(t, gibberishLabels, respondJSON(`[]`))
	c := loadedClassifier(t, s)

	assert.Equal(t, []string{"clean", "mild gibberish", "noise", "word salad"}, c.Labels())
	assert.Equal(t, testModel, c.Model())
	assert.Equal(t, "Bearer hf_test", s.lastAuth)
}

func TestLoad_RejectsBadConfigs(t *testing.T) {
	testCases := []struct {
		name     string
		id2label map[string]string
	}{
		{"empty", map[string]string{}},
		{"gap", map[string]string{"0": "a", "2": "b"}},
		{"non numeric", map[string]string{"zero": "a"}},
		{"duplicate label", map[string]string{"0": "a", "1": "a"}},
		{"empty label", map[string]string{"0": ""}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStubServer(t, tc.id2label, respondJSON(`[]`))
			err := New(testModel, s.options()).Load(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnexpectedResponse)
		})
	}
}

func TestLoad_HubError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"Invalid credentials in Authorization header"}`)
	}))
	defer srv.Close()

	err := New(testModel, Options{HubURL: srv.URL, InferenceURL: srv.URL}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestClassify_NotLoaded(t *testing.T) {
	c := New(testModel, Options{HubURL: "http://unused", InferenceURL: "http://unused"})
	_, err := c.Classify(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrModelNotLoaded)
}

func TestClassify_SoftmaxOverLogits(t *testing.T) {
	s := newStubServer(t, gibberishLabels, respondJSON(`[[
		{"label":"clean","score":4.0},
		{"label":"word salad","score":1.0},
		{"label":"mild gibberish","score":0.5},
		{"label":"noise","score":-2.0}
	]]`))
	c := loadedClassifier(t, s)

	pred, err := c.Classify(context.Background(), "I am feeling very happy today!")
	require.NoError(t, err)

	expected := math.Exp(4) / (math.Exp(4) + math.Exp(0.5) + math.Exp(-2) + math.Exp(1))
	assert.Equal(t, "clean", pred.Label)
	assert.InDelta(t, expected, pred.Confidence, 1e-12)

	assert.Equal(t, "I am feeling very happy today!", s.lastRequest.Inputs)
	assert.Equal(t, "none", s.lastRequest.Parameters.FunctionToApply)
	assert.Equal(t, 4, s.lastRequest.Parameters.TopK)
	assert.True(t, s.lastRequest.Parameters.Truncation)
	assert.Equal(t, 512, s.lastRequest.Parameters.MaxLength)
	assert.Equal(t, "Bearer hf_test", s.lastAuth)
}

func TestClassify_FlatResponse(t *testing.T) {
	s := newStubServer(t, gibberishLabels, respondJSON(`[
		{"label":"noise","score":9.0},
		{"label":"clean","score":0.0},
		{"label":"mild gibberish","score":0.0},
		{"label":"word salad","score":0.0}
	]`))
	c := loadedClassifier(t, s)

	pred, err := c.Classify(context.Background(), "xkq zzv pplm")
	require.NoError(t, err)
	assert.Equal(t, "noise", pred.Label)
	assert.Greater(t, pred.Confidence, 0.99)
	assert.LessOrEqual(t, pred.Confidence, 1.0)
}

func TestClassify_TieGoesToLowestID(t *testing.T) {
	s := newStubServer(t, gibberishLabels, respondJSON(`[
		{"label":"word salad","score":1.0},
		{"label":"mild gibberish","score":1.0},
		{"label":"clean","score":0.0},
		{"label":"noise","score":0.0}
	]`))
	c := loadedClassifier(t, s)

	pred, err := c.Classify(context.Background(), "tie")
	require.NoError(t, err)
	assert.Equal(t, "mild gibberish", pred.Label)
}

func TestClassify_MalformedResponses(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"missing label", `[{"label":"clean","score":1.0}]`},
		{"unknown label", `[{"label":"clean","score":1},{"label":"noise","score":1},{"label":"word salad","score":1},{"label":"joy","score":1}]`},
		{"duplicate label", `[{"label":"clean","score":1},{"label":"clean","score":1},{"label":"noise","score":1},{"label":"word salad","score":1}]`},
		{"not a list", `{"label":"clean","score":1}`},
		{"two result sets", `[[],[]]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStubServer(t, gibberishLabels, respondJSON(tc.body))
			c := loadedClassifier(t, s)

			_, err := c.Classify(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnexpectedResponse)
			assert.Contains(t, err.Error(), testModel)
		})
	}
}

func TestClassify_ServerErrorIsNotRetriedByDefault(t *testing.T) {
	s := newStubServer(t, gibberishLabels, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":"Model is currently loading","estimated_time":20.0}`)
	})
	c := loadedClassifier(t, s)

	_, err := c.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "Model is currently loading")
	assert.EqualValues(t, 1, s.inferenceCalls.Load())
}

func TestClassify_OptInRetries(t *testing.T) {
	var calls atomic.Int32
	s := newStubServer(t, gibberishLabels, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		respondJSON(`[{"label":"clean","score":2},{"label":"noise","score":0},{"label":"word salad","score":0},{"label":"mild gibberish","score":0}]`)(w, r)
	})
	opts := s.options()
	opts.HTTPClient = NewRetryableHTTPClient(1, 0)
	opts.HTTPClient.RetryWaitMin = 0
	opts.HTTPClient.RetryWaitMax = 0
	c := New(testModel, opts)
	require.NoError(t, c.Load(context.Background()))

	pred, err := c.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "clean", pred.Label)
	assert.EqualValues(t, 2, s.inferenceCalls.Load())
}

func TestClassify_ContextCanceled(t *testing.T) {
	s := newStubServer(t, gibberishLabels, respondJSON(`[]`))
	c := loadedClassifier(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Classify(ctx, "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "short", truncate([]byte("  short\n")))

	body := strings.Repeat("a", 255) + strings.Repeat("é", 10)
	got := truncate([]byte(body))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 255)+"é...", got)
}

func TestClassify_MultiByteErrorBodyStaysValidUTF8(t *testing.T) {
	s := newStubServer(t, gibberishLabels, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, strings.Repeat("ü", 400))
	})
	c := loadedClassifier(t, s)

	_, err := c.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "status 502")
}
