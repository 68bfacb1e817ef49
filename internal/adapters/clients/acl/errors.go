package acl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/devotional-service/internal/adapters/clients"
	"github.com/jsamuelsen/devotional-service/internal/domain"
)

// DefaultErrorMessage is reported when a failed response carries no message.
const DefaultErrorMessage = "failed to fetch data from devotional API"

// maxErrorBody bounds how much of an error body is read.
const maxErrorBody = 64 << 10

// Error codes emitted by the devotional API.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeValidation  = "VALIDATION_ERROR"
	CodeBadRequest  = "BAD_REQUEST"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
	CodeTimeout     = "TIMEOUT"
)

// ErrorResponse is an error body. Both the nested {"error":{...}} envelope and
// a flat {"code","message"} form are accepted.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail is the nested part of an error envelope.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// GetCode returns the nested code, falling back to the flat one.
func (e *ErrorResponse) GetCode() string {
	if e.Error.Code != "" {
		return e.Error.Code
	}

	return e.Code
}

// GetMessage returns the nested message, falling back to the flat one.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error body. It returns nil when the body is
// not JSON or carries neither a code nor a message.
func ParseErrorResponse(body []byte) *ErrorResponse {
	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}

	if resp.GetCode() == "" && resp.GetMessage() == "" {
		return nil
	}

	return &resp
}

// APIError is a non-2xx answer from the devotional API. Its message is the one
// the API reported. It unwraps to the matching domain sentinel.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
	TraceID string

	kind error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Unwrap returns the domain sentinel for errors.Is.
func (e *APIError) Unwrap() error {
	return e.kind
}

// MapHTTPError translates the outcome of a request into a domain error.
// clientErr takes precedence; a 2xx response maps to nil.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var body []byte
	if resp.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	}

	return newAPIError(resp.StatusCode, body)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status, Message: DefaultErrorMessage}

	if parsed := ParseErrorResponse(body); parsed != nil {
		apiErr.Code = parsed.GetCode()
		apiErr.Details = parsed.Error.Details
		apiErr.TraceID = parsed.TraceID

		if msg := parsed.GetMessage(); msg != "" {
			apiErr.Message = msg
		}
	} else if text := bytes.TrimSpace(body); len(text) > 0 && !json.Valid(text) {
		apiErr.Message = string(text)
	}

	apiErr.kind = kindFor(status, apiErr.Code)

	return apiErr
}

// kindFor picks the domain sentinel, preferring the API's code over the status.
func kindFor(status int, code string) error {
	switch code {
	case CodeNotFound:
		return domain.ErrNotFound
	case CodeValidation, CodeBadRequest:
		return domain.ErrValidation
	case CodeUnavailable, CodeTimeout:
		return domain.ErrUnavailable
	}

	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return domain.ErrUnavailable
	default:
		return domain.ErrValidation
	}
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName, "circuit breaker open during "+operation)
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName, "max retries exceeded during "+operation)
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
	}
}
