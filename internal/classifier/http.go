package classifier

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"textlens/internal/logger"
)

// NewRetryableHTTPClient builds the client used for hub and inference calls.
// retryMax of zero sends each request exactly once.
func NewRetryableHTTPClient(retryMax int, timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.HTTPClient.Timeout = timeout
	client.Logger = logger.NewLeveledLogrus(logger.Get())
	client.Backoff = retryablehttp.DefaultBackoff
	client.CheckRetry = retryPolicy
	// Hand the final response back so error bodies from the server reach the caller.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return client
}

// retryPolicy retries connection errors, 429 and 5xx, and never retries once
// the request context is done.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}
