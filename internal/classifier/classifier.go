// Package classifier runs pretrained sequence-classification models hosted
// behind a Hugging Face compatible inference endpoint.
//
// The endpoint is asked for raw logits over every label. Softmax and argmax
// are computed here against the label order from the model's config.json, so
// the reported confidence is the maximum softmax probability regardless of
// how the server post-processes scores.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
)

// Prediction is the argmax label and its softmax probability.
type Prediction struct {
	Label      string
	Confidence float64
}

// Options configures where a model is loaded from and how it is called.
type Options struct {
	// HubURL serves {HubURL}/{model}/resolve/main/config.json.
	HubURL string

	// InferenceURL receives POST {InferenceURL}/{model}.
	InferenceURL string
	APIToken     string

	// MaxLength is the tokenizer truncation limit passed to the server.
	MaxLength  int
	HTTPClient *retryablehttp.Client
}

// Classifier is safe for concurrent use once Load has returned.
type Classifier struct {
	model string
	opts  Options

	mu     sync.RWMutex
	labels []string
	index  map[string]int
}

func New(model string, opts Options) *Classifier {
	if opts.HTTPClient == nil {
		opts.HTTPClient = NewRetryableHTTPClient(0, 0)
	}
	opts.HubURL = strings.TrimRight(opts.HubURL, "/")
	opts.InferenceURL = strings.TrimRight(opts.InferenceURL, "/")
	return &Classifier{model: model, opts: opts}
}

// Model returns the model id, e.g. "SamLowe/roberta-base-go_emotions".
func (c *Classifier) Model() string {
	return c.model
}

// Labels returns the label set in model output order.
func (c *Classifier) Labels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.labels...)
}

type modelConfig struct {
	ID2Label map[string]string `json:"id2label"`
}

// Load fetches the model config and records its id2label mapping.
func (c *Classifier) Load(ctx context.Context) error {
	url := fmt.Sprintf("%s/%s/resolve/main/config.json", c.opts.HubURL, c.model)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build config request for %s: %w", c.model, err)
	}
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return fmt.Errorf("fetch config for %s: %w", c.model, err)
	}

	var cfg modelConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return fmt.Errorf("decode config for %s: %w", c.model, err)
	}
	labels, err := orderedLabels(cfg.ID2Label)
	if err != nil {
		return fmt.Errorf("model %s: %w", c.model, err)
	}

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	c.mu.Lock()
	c.labels = labels
	c.index = index
	c.mu.Unlock()
	return nil
}

// orderedLabels turns {"0": "a", "1": "b"} into ["a", "b"]. Ids must cover
// 0..n-1 exactly and labels must be unique.
func orderedLabels(id2label map[string]string) ([]string, error) {
	if len(id2label) == 0 {
		return nil, fmt.Errorf("%w: config has no id2label", ErrUnexpectedResponse)
	}
	labels := make([]string, len(id2label))
	seen := make(map[string]bool, len(id2label))
	for key, label := range id2label {
		id, err := strconv.Atoi(key)
		if err != nil || id < 0 || id >= len(labels) {
			return nil, fmt.Errorf("%w: id2label key %q is not in 0..%d", ErrUnexpectedResponse, key, len(labels)-1)
		}
		if label == "" || seen[label] {
			return nil, fmt.Errorf("%w: id2label has empty or duplicate label %q", ErrUnexpectedResponse, label)
		}
		seen[label] = true
		labels[id] = label
	}
	return labels, nil
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	FunctionToApply string `json:"function_to_apply"`
	TopK            int    `json:"top_k"`
	Truncation      bool   `json:"truncation"`
	MaxLength       int    `json:"max_length,omitempty"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify runs one inference call and normalizes the logits.
func (c *Classifier) Classify(ctx context.Context, text string) (Prediction, error) {
	c.mu.RLock()
	labels, index := c.labels, c.index
	c.mu.RUnlock()
	if len(labels) == 0 {
		return Prediction{}, fmt.Errorf("%w: %s", ErrModelNotLoaded, c.model)
	}

	payload, err := json.Marshal(inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			FunctionToApply: "none",
			TopK:            len(labels),
			Truncation:      true,
			MaxLength:       c.opts.MaxLength,
		},
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("encode inference request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.opts.InferenceURL, c.model)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return Prediction{}, fmt.Errorf("build inference request for %s: %w", c.model, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	body, err := c.do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("inference for %s: %w", c.model, err)
	}

	scores, err := decodeScores(body)
	if err != nil {
		return Prediction{}, fmt.Errorf("inference for %s: %w", c.model, err)
	}
	logits, err := alignLogits(scores, index)
	if err != nil {
		return Prediction{}, fmt.Errorf("inference for %s: %w", c.model, err)
	}

	probs := Softmax(logits)
	best := Argmax(probs)
	return Prediction{Label: labels[best], Confidence: probs[best]}, nil
}

// decodeScores accepts both the flat [{label,score}] shape and the batched
// [[{label,score}]] shape returned for a single input.
func decodeScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) != 1 {
			return nil, fmt.Errorf("%w: expected one result set, got %d", ErrUnexpectedResponse, len(nested))
		}
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedResponse, truncate(body))
	}
	return flat, nil
}

// alignLogits orders scores by label id. Every label must appear exactly once.
func alignLogits(scores []labelScore, index map[string]int) ([]float64, error) {
	if len(scores) != len(index) {
		return nil, fmt.Errorf("%w: got %d scores for %d labels", ErrUnexpectedResponse, len(scores), len(index))
	}
	logits := make([]float64, len(index))
	seen := make([]bool, len(index))
	for _, s := range scores {
		i, ok := index[s.Label]
		if !ok {
			return nil, fmt.Errorf("%w: unknown label %q", ErrUnexpectedResponse, s.Label)
		}
		if seen[i] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrUnexpectedResponse, s.Label)
		}
		seen[i] = true
		logits[i] = s.Score
	}
	return logits, nil
}

func (c *Classifier) authorize(req *retryablehttp.Request) {
	if c.opts.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIToken)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// do sends req and returns the body of a 2xx response.
func (c *Classifier) do(req *retryablehttp.Request) ([]byte, error) {
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := truncate(body)
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			msg = eb.Error
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}
	return body, nil
}

// truncate shortens a response body for error messages, keeping at most 256
// runes so multi-byte characters are never split.
func truncate(body []byte) string {
	const limit = 256
	runes := []rune(strings.TrimSpace(string(body)))
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return string(runes)
}
