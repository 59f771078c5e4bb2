package translate

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingKey is returned when a translate request is attempted
	// without a subscription key.
	ErrMissingKey = errors.New("subscription key is required")
	// ErrResponseMismatch is returned when the service answers with a
	// different number of records than texts submitted.
	ErrResponseMismatch = errors.New("response does not match request")
	// ErrNoSourceSegment is returned for catalogs whose file name carries no
	// source locale segment, so no target path can be derived.
	ErrNoSourceSegment = errors.New("file name has no source locale segment")
)

// ServiceError is a structured error returned by the translator service.
// Code and Message are carried verbatim from the response.
type ServiceError struct {
	Status  int
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error { code: %d, message: '%s' }", e.Code, e.Message)
}

// errorResponse is the service's error payload.
type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseServiceError decodes an error payload. It returns nil when body is
// not a structured error.
func parseServiceError(status int, body []byte) *ServiceError {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Error == nil {
		return nil
	}
	return &ServiceError{Status: status, Code: resp.Error.Code, Message: resp.Error.Message}
}

// Describe renders err for a log line: service errors as code and message,
// anything else as its raw representation.
func Describe(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return fmt.Sprintf("error: { code: %d, message: '%s' }", se.Code, se.Message)
	}
	return fmt.Sprintf("failed to translate input: %v", err)
}
