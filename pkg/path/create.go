package path

import (
	"context"
	"net/http"

	"github.com/lakeio/dlstore/pkg/transport"
)

// ResourceType selects what kind of path a create request produces.
type ResourceType string

const (
	// ResourceFile creates a zero-length file.
	ResourceFile ResourceType = "file"

	// ResourceDirectory creates a directory.
	ResourceDirectory ResourceType = "directory"
)

// CreateOptions carries the optional parameters of a create request.
type CreateOptions struct {
	// Permissions is the octal or symbolic permission string to set on the
	// new path. Empty means service defaults.
	Permissions string

	// Umask is applied by the service when the immediate parent has no
	// default ACL. The umask's effect is entirely the service's policy;
	// the client only transmits it.
	Umask string

	// Properties are user metadata pairs stored with the path. Values must
	// be Latin-1 representable.
	Properties map[string]string

	// Conditions are access conditions on the target path.
	Conditions *AccessConditions
}

// CreateResult reports the outcome of a successful create.
type CreateResult struct {
	// ETag is the entity tag of the new path.
	ETag string

	// RequestID is the server request ID.
	RequestID string
}

// Create creates a file or directory in a single round trip. There is no
// continuation loop: create either completes or fails.
func (c *Client) Create(
	ctx context.Context,
	targetPath string,
	resource ResourceType,
	opts *CreateOptions,
) (*CreateResult, error) {
	if opts == nil {
		opts = &CreateOptions{}
	}

	req := newRequest(http.MethodPut, targetPath)
	req.Query.Set(transport.QueryResource, string(resource))

	if opts.Permissions != "" {
		req.Header.Set(transport.HeaderPermissions, opts.Permissions)
	}
	if opts.Umask != "" {
		req.Header.Set(transport.HeaderUmask, opts.Umask)
	}
	if len(opts.Properties) > 0 {
		encoded, err := EncodeProperties(opts.Properties)
		if err != nil {
			return nil, err
		}
		req.Header.Set(transport.HeaderProperties, encoded)
	}
	opts.Conditions.apply(req.Header)

	resp, err := c.execute(ctx, req, http.StatusCreated, opts.Conditions)
	if err != nil {
		return nil, err
	}

	return &CreateResult{
		ETag:      resp.Header.Get("ETag"),
		RequestID: resp.RequestID(),
	}, nil
}
