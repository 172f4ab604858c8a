package models

// Critique is the generated review for one submission.
type Critique struct {
	Suggestions string
	Reader      string
}

type AnalyzeResponse struct {
	Suggestions string `json:"suggestions"`
}

// ErrorResponse is the body of every failed request. Details and Stack are
// only filled for server-side failures; Stack only in development.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
}
