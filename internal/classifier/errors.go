package classifier

import "errors"

var (
	// ErrModelNotLoaded is returned by Classify before Load has succeeded.
	ErrModelNotLoaded = errors.New("classifier: model not loaded")
	// ErrUnexpectedResponse wraps inference or hub payloads that do not match
	// the model's label set.
	ErrUnexpectedResponse = errors.New("classifier: unexpected response")
)
