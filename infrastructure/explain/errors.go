package explain

import "errors"

// Sentinel errors for chat provider construction and responses.
var (
	// ErrEmptyAPIKey indicates a provider was configured without an API
	// key.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")

	// ErrUnknownProvider indicates the configured provider name has no
	// registered factory.
	ErrUnknownProvider = errors.New("unknown chat provider")

	// ErrEmptyResponse indicates the provider returned no usable
	// content.
	ErrEmptyResponse = errors.New("empty response from chat provider")
)
