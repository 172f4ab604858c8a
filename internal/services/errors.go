package services

import "fmt"

// ClientInputError is a failure caused by what the client sent: a missing
// part, an oversized file or an unsupported media type.
type ClientInputError struct {
	Message string
}

func (e *ClientInputError) Error() string {
	return e.Message
}

func NewUnsupportedTypeError(mediaType string) *ClientInputError {
	return &ClientInputError{
		Message: fmt.Sprintf("Unsupported file type: %s. Please upload a PDF or TXT file.", mediaType),
	}
}

// ExtractionError wraps a parse or read failure on a supported document.
type ExtractionError struct {
	Strategy string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text (%s): %v", e.Strategy, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// RemoteServiceError wraps any failure of the completion provider.
type RemoteServiceError struct {
	Provider string
	Err      error
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}
