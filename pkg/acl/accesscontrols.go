package acl

import "github.com/lakeio/dlstore/pkg/permissions"

// AccessControls aggregates everything the service reports about who may do
// what with a path: the owning identities, the POSIX permission bits, and the
// ordered access control list.
//
// A fetch fills the whole aggregate. Writes take fragments of it: setting
// permissions and setting the ACL are independent wire operations that
// happen to share this container.
type AccessControls struct {
	// Owner is the owning user identity reported by the service.
	Owner string

	// Group is the owning group identity reported by the service.
	Group string

	// Permissions are the POSIX permission bits for the path.
	Permissions permissions.PathPermissions

	// Entries is the path's access control list in wire order.
	Entries []Entry
}
