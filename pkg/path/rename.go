package path

import (
	"context"
	"net/http"

	"github.com/lakeio/dlstore/internal/logger"
	"github.com/lakeio/dlstore/pkg/transport"
)

// RenameMode selects the rename semantics offered by the service.
type RenameMode string

const (
	// RenameModeLegacy is the flat-namespace compatible rename.
	RenameModeLegacy RenameMode = "legacy"

	// RenameModePosix renames with POSIX semantics (atomic within a
	// directory, sticky-bit checks on the source parent).
	RenameModePosix RenameMode = "posix"
)

// RenameOptions carries the optional parameters of a rename step.
type RenameOptions struct {
	// Mode selects the rename semantics. Empty means service default.
	Mode RenameMode

	// Permissions is the permission string applied to the destination.
	Permissions string

	// Umask is applied by the service when the destination parent has no
	// default ACL.
	Umask string

	// SourceConditions are access conditions on the source path.
	SourceConditions *AccessConditions

	// DestinationConditions are access conditions on the destination path.
	DestinationConditions *AccessConditions

	// ContinuationToken resumes a previously interrupted rename. Empty
	// starts a fresh operation.
	ContinuationToken string

	// MaxSteps bounds the Rename helper's loop. Zero means no bound. It is
	// ignored by RenameStep.
	MaxSteps int
}

// RenameStep issues exactly one rename request for moving sourcePath to
// destinationPath and reports the outcome.
//
// Renaming a large directory may take several steps: the service moves a
// bounded number of paths per request and returns a continuation token until
// the move is complete. Continuing is a normal result, never an error.
func (c *Client) RenameStep(
	ctx context.Context,
	sourcePath string,
	destinationPath string,
	opts *RenameOptions,
) (*StepResult, error) {
	if opts == nil {
		opts = &RenameOptions{}
	}

	req := newRequest(http.MethodPut, destinationPath)
	req.Header.Set(transport.HeaderRenameSource, "/"+trimSlash(sourcePath))
	if opts.Mode != "" {
		req.Query.Set(transport.QueryRenameMode, string(opts.Mode))
	}
	if opts.ContinuationToken != "" {
		req.Query.Set(transport.QueryContinuation, opts.ContinuationToken)
	}
	if opts.Permissions != "" {
		req.Header.Set(transport.HeaderPermissions, opts.Permissions)
	}
	if opts.Umask != "" {
		req.Header.Set(transport.HeaderUmask, opts.Umask)
	}
	opts.DestinationConditions.apply(req.Header)
	opts.SourceConditions.applySource(req.Header)

	resp, err := c.execute(ctx, req, http.StatusCreated, opts.DestinationConditions)
	if err != nil {
		return nil, err
	}

	return &StepResult{
		ContinuationToken: resp.ContinuationToken(),
		RequestID:         resp.RequestID(),
	}, nil
}

// Rename drives RenameStep until the service reports completion, the context
// is cancelled, or the step budget runs out. Pending tokens are journaled
// under the destination path, mirroring the Delete helper; see Delete for
// the resume and budget-exhaustion contract.
func (c *Client) Rename(
	ctx context.Context,
	sourcePath string,
	destinationPath string,
	opts *RenameOptions,
) (*StepResult, error) {
	if opts == nil {
		opts = &RenameOptions{}
	}

	stepOpts := *opts
	steps := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := c.RenameStep(ctx, sourcePath, destinationPath, &stepOpts)
		if err != nil {
			return nil, err
		}
		steps++

		if result.Done() {
			if err := c.clearToken(OpRename, destinationPath); err != nil {
				return nil, err
			}
			return result, nil
		}

		logger.Debug("rename of %s continuing after step %d", sourcePath, steps)
		if err := c.recordToken(OpRename, destinationPath, result.ContinuationToken); err != nil {
			return nil, err
		}

		if opts.MaxSteps > 0 && steps >= opts.MaxSteps {
			return result, nil
		}
		stepOpts.ContinuationToken = result.ContinuationToken
	}
}

// trimSlash strips a single leading slash; the rename-source header carries
// a root-relative path with exactly one.
func trimSlash(path string) string {
	if len(path) > 0 && path[0] == '/' {
		return path[1:]
	}
	return path
}
