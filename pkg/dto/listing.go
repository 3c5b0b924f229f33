package dto

// Envelope is the paginated list response shape:
// {results, count, next}. Endpoints return it whenever the request
// carries a page parameter; otherwise they return a bare array.
type Envelope[T any] struct {
	Results []T     `json:"results"`
	Count   int     `json:"count"`
	Next    *string `json:"next"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// FieldError is a single validation failure, keyed by the JSON field
// name so forms can render it inline.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}
