// Package path implements the path operations of a hierarchical-namespace
// filesystem: create, recursive delete, rename, access control reads and
// writes, and user-property passthrough.
//
// Delete and rename are continuation-driven: the service may process only a
// bounded number of paths per request and signal remaining work through an
// opaque continuation token. The step methods (DeleteStep, RenameStep) issue
// exactly one request each and surface the token; the Delete and Rename
// helpers drive an explicit, bounded loop over the steps. The core never
// hides an unbounded loop inside a single call, so cancellation and retry
// policy compose naturally around each individual round trip.
package path

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lakeio/dlstore/pkg/transport"
)

// TokenRecorder persists the latest continuation token of an in-flight
// multi-step operation so an interrupted run can resume later. Implemented
// by journal.Store; a nil recorder disables persistence.
type TokenRecorder interface {
	// Record stores the pending token for (operation, path), replacing any
	// previous one.
	Record(operation, path, token string) error

	// Clear removes the pending token for (operation, path), if any.
	Clear(operation, path string) error
}

// Operation names used as journal keys.
const (
	OpDelete = "delete"
	OpRename = "rename"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Executor performs the individual round trips. Required.
	Executor transport.Executor

	// Journal records continuation tokens between steps of the Delete and
	// Rename helpers. Optional; nil disables resume support.
	Journal TokenRecorder
}

// Client issues path operations against one filesystem.
//
// The client is stateless across calls and safe for concurrent use; each
// method performs at most one round trip per invocation (the Delete and
// Rename helpers perform one per step, sequentially).
type Client struct {
	executor transport.Executor
	journal  TokenRecorder
}

// NewClient creates a path operation client over the given executor.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Executor == nil {
		return nil, fmt.Errorf("path: Executor is required")
	}
	return &Client{
		executor: config.Executor,
		journal:  config.Journal,
	}, nil
}

// StepResult is the outcome of one successful continuation step.
type StepResult struct {
	// ContinuationToken is the opaque token to echo back on the next step.
	// Empty means the operation is complete.
	ContinuationToken string

	// RequestID is the server request ID of the step, for correlation.
	RequestID string
}

// Done reports whether the operation completed with this step.
func (r *StepResult) Done() bool {
	return r.ContinuationToken == ""
}

// execute performs one round trip and maps any non-success status to a
// StorageError. Transport failures pass through unwrapped in meaning: they
// signify the request never produced a service verdict.
func (c *Client) execute(
	ctx context.Context,
	req *transport.Request,
	wantStatus int,
	conditions *AccessConditions,
) (*transport.Response, error) {
	resp, err := c.executor.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != wantStatus {
		return nil, newStorageError(resp, conditions)
	}
	return resp, nil
}

// newRequest builds a request shell with initialized header and query maps.
func newRequest(method, targetPath string) *transport.Request {
	return &transport.Request{
		Method: method,
		Path:   strings.TrimPrefix(targetPath, "/"),
		Query:  url.Values{},
		Header: http.Header{},
	}
}
