// Package dto defines the JSON request and response shapes of the API.
package dto

// ErrorResponse is the error body every endpoint returns, produced
// centrally by the error-handling middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
