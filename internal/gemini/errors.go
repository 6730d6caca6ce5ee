package gemini

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GenericFailureMessage is used when a rejection carries no message of its own.
const GenericFailureMessage = "image processing failed, please try again"

var (
	// ErrMissingCredential is returned before any network call is attempted.
	ErrMissingCredential = errors.New("gemini API key is not configured: set GEMINI_API_KEY and restart the server")
	// ErrNoImageProduced means the model answered without an inline image.
	ErrNoImageProduced = errors.New("the model did not return an image, try again or adjust the settings")
)

// RemoteError is a rejected model call: network, quota or model refusal.
// Error returns the most specific human-readable message available.
type RemoteError struct {
	Code    int
	Status  string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Quota reports whether the model rejected the call for rate or quota limits.
func (e *RemoteError) Quota() bool {
	return e.Code == 429 || strings.EqualFold(e.Status, "RESOURCE_EXHAUSTED")
}

func newRemoteError(err error) *RemoteError {
	remote := &RemoteError{Err: err, Message: GenericFailureMessage}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		remote.Code = apiErr.Code
		remote.Status = apiErr.Status
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			remote.Message = msg
		}
		return remote
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		remote.Message = msg
	}
	return remote
}
