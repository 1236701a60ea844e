package path

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lakeio/dlstore/pkg/transport"
)

// StorageError represents a non-success response from the storage service.
//
// The protocol never retries these itself: retry policy belongs to the
// executor, and a continuation result is not an error. Callers can use
// errors.As to extract the structured information:
//
//	var storageErr *path.StorageError
//	if errors.As(err, &storageErr) {
//	    if storageErr.ErrorCode == "PathNotFound" { ... }
//	}
type StorageError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// ErrorCode is the service error code (e.g. "PathNotFound",
	// "SourcePathNotFound", "ConditionNotMet").
	ErrorCode string

	// Message is the human-readable error description from the service.
	Message string

	// RequestID is the server-generated request ID, for support
	// correlation.
	RequestID string

	// Conditions are the access conditions that were in effect on the
	// failed request, for caller inspection. Nil when none were set.
	Conditions *AccessConditions
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("storage: %s (%d): %s", e.ErrorCode, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("storage: unexpected status %d: %s", e.StatusCode, e.Message)
}

// IsStorageError checks whether err is a *StorageError with the given
// service error code.
func IsStorageError(err error, code string) bool {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.ErrorCode == code
	}
	return false
}

// errorBody is the JSON shape of service error responses.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newStorageError builds a StorageError from a non-success response. The
// JSON body is preferred for code and message; the error-code header and raw
// body serve as fallbacks for proxies that strip the body.
func newStorageError(resp *transport.Response, conditions *AccessConditions) *StorageError {
	storageErr := &StorageError{
		StatusCode: resp.StatusCode,
		ErrorCode:  resp.Header.Get(transport.HeaderErrorCode),
		RequestID:  resp.RequestID(),
		Conditions: conditions,
	}

	var body errorBody
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Error.Code != "" {
		storageErr.ErrorCode = body.Error.Code
		storageErr.Message = body.Error.Message
	} else {
		storageErr.Message = string(resp.Body)
	}

	return storageErr
}
