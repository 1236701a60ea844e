package path

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lakeio/dlstore/internal/logger"
	"github.com/lakeio/dlstore/pkg/transport"
)

// DeleteOptions carries the optional parameters of a delete step.
type DeleteOptions struct {
	// Recursive deletes a directory together with its contents. Required
	// for non-empty directories.
	Recursive bool

	// Conditions are access conditions on the target path. An ETag match
	// is what makes retrying an individual step safe.
	Conditions *AccessConditions

	// ContinuationToken resumes a previously interrupted delete. Empty
	// starts a fresh operation.
	ContinuationToken string

	// MaxSteps bounds the Delete helper's loop. Zero means no bound. It is
	// ignored by DeleteStep.
	MaxSteps int
}

// DeleteStep issues exactly one delete request and reports the outcome.
//
// A result with an empty ContinuationToken means the service finished the
// operation; a non-empty token means more work remains and the caller must
// invoke the next step with that token. Continuing is a normal result, never
// an error. A non-success status maps to a *StorageError.
func (c *Client) DeleteStep(
	ctx context.Context,
	targetPath string,
	opts *DeleteOptions,
) (*StepResult, error) {
	if opts == nil {
		opts = &DeleteOptions{}
	}

	req := newRequest(http.MethodDelete, targetPath)
	if opts.Recursive {
		req.Query.Set(transport.QueryRecursive, strconv.FormatBool(true))
	}
	if opts.ContinuationToken != "" {
		req.Query.Set(transport.QueryContinuation, opts.ContinuationToken)
	}
	opts.Conditions.apply(req.Header)

	resp, err := c.execute(ctx, req, http.StatusOK, opts.Conditions)
	if err != nil {
		return nil, err
	}

	return &StepResult{
		ContinuationToken: resp.ContinuationToken(),
		RequestID:         resp.RequestID(),
	}, nil
}

// Delete drives DeleteStep until the service reports completion, the context
// is cancelled, or the step budget runs out.
//
// Every returned token is persisted to the client's journal (when one is
// configured) before the next step, and the journal entry is cleared on
// completion, so an interrupted run can resume by passing the recorded token
// as opts.ContinuationToken.
//
// When MaxSteps is exhausted with work remaining, Delete returns the last
// step result (Done() == false) and a nil error: the pending token is a
// normal outcome for the caller to act on, not a failure.
func (c *Client) Delete(
	ctx context.Context,
	targetPath string,
	opts *DeleteOptions,
) (*StepResult, error) {
	if opts == nil {
		opts = &DeleteOptions{}
	}

	stepOpts := *opts
	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.DeleteStep(ctx, targetPath, &stepOpts)
		if err != nil {
			return nil, err
		}
		steps++

		if result.Done() {
			if err := c.clearToken(OpDelete, targetPath); err != nil {
				return nil, err
			}
			return result, nil
		}

		logger.Debug("delete of %s continuing after step %d", targetPath, steps)
		if err := c.recordToken(OpDelete, targetPath, result.ContinuationToken); err != nil {
			return nil, err
		}

		if opts.MaxSteps > 0 && steps >= opts.MaxSteps {
			return result, nil
		}
		stepOpts.ContinuationToken = result.ContinuationToken
	}
}

// recordToken persists a pending continuation token, when a journal is
// configured.
func (c *Client) recordToken(operation, targetPath, token string) error {
	if c.journal == nil {
		return nil
	}
	if err := c.journal.Record(operation, targetPath, token); err != nil {
		return fmt.Errorf("path: failed to record continuation token: %w", err)
	}
	return nil
}

// clearToken removes a pending continuation token, when a journal is
// configured.
func (c *Client) clearToken(operation, targetPath string) error {
	if c.journal == nil {
		return nil
	}
	if err := c.journal.Clear(operation, targetPath); err != nil {
		return fmt.Errorf("path: failed to clear continuation token: %w", err)
	}
	return nil
}
