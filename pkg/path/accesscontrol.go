package path

import (
	"context"
	"net/http"

	"github.com/lakeio/dlstore/pkg/acl"
	"github.com/lakeio/dlstore/pkg/permissions"
	"github.com/lakeio/dlstore/pkg/transport"
)

// GetAccessControl fetches the owner, owning group, permissions, and ACL of
// a path in a single round trip.
//
// The permission header is parsed symbolically (the service reports the
// nine- or ten-character form, with '+' marking an extended ACL); the ACL
// header is parsed as a comma-joined entry list in wire order. The returned
// aggregate replaces any previously fetched one wholesale.
func (c *Client) GetAccessControl(
	ctx context.Context,
	targetPath string,
	conditions *AccessConditions,
) (*acl.AccessControls, error) {
	req := newRequest(http.MethodHead, targetPath)
	req.Query.Set(transport.QueryAction, "getAccessControl")
	conditions.apply(req.Header)

	resp, err := c.execute(ctx, req, http.StatusOK, conditions)
	if err != nil {
		return nil, err
	}

	controls := &acl.AccessControls{
		Owner: resp.Header.Get(transport.HeaderOwner),
		Group: resp.Header.Get(transport.HeaderGroup),
	}

	if text := resp.Header.Get(transport.HeaderPermissions); text != "" {
		perms, err := permissions.ParseSymbolic(text)
		if err != nil {
			return nil, err
		}
		controls.Permissions = perms
	}

	if text := resp.Header.Get(transport.HeaderACL); text != "" {
		entries, err := acl.ParseList(text)
		if err != nil {
			return nil, err
		}
		controls.Entries = entries
	}

	return controls, nil
}

// SetPermissions replaces the POSIX permission bits of a path in a single
// round trip. The ACL is left untouched: permissions and ACL are independent
// wire operations even though GetAccessControl reports them together.
func (c *Client) SetPermissions(
	ctx context.Context,
	targetPath string,
	perms permissions.PathPermissions,
	conditions *AccessConditions,
) error {
	req := newRequest(http.MethodPatch, targetPath)
	req.Query.Set(transport.QueryAction, "setAccessControl")
	req.Header.Set(transport.HeaderPermissions, perms.OctalString())
	conditions.apply(req.Header)

	_, err := c.execute(ctx, req, http.StatusOK, conditions)
	return err
}

// SetAccessControl replaces the full ACL of a path in a single round trip.
// Entry order is preserved on the wire; the service treats the serialized
// list as canonical. Every entry is validated before anything is sent.
func (c *Client) SetAccessControl(
	ctx context.Context,
	targetPath string,
	entries []acl.Entry,
	conditions *AccessConditions,
) error {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return err
		}
	}

	req := newRequest(http.MethodPatch, targetPath)
	req.Query.Set(transport.QueryAction, "setAccessControl")
	req.Header.Set(transport.HeaderACL, acl.FormatList(entries))
	conditions.apply(req.Header)

	_, err := c.execute(ctx, req, http.StatusOK, conditions)
	return err
}
