package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error          string `json:"error"`
	Code           string `json:"code"`
	OffendingCount *int   `json:"offendingCount,omitempty"`
}
