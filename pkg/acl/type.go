// Package acl implements the access control list model of
// hierarchical-namespace storage paths: the four-variant entry type, the
// colon-delimited entry codec, the comma-joined list codec, and the
// AccessControls aggregate exchanged with the service.
package acl

import (
	"strings"

	"github.com/lakeio/dlstore/pkg/permissions"
)

// AccessControlType identifies which class of principal an ACL entry applies to.
type AccessControlType int

const (
	// User entries apply to the owning user (no entity ID) or to a named
	// user (entity ID present).
	User AccessControlType = iota

	// Group entries apply to the owning group (no entity ID) or to a named
	// group (entity ID present).
	Group

	// Mask entries cap the effective permissions granted by named-user,
	// named-group, and owning-group entries. They never carry an entity ID.
	Mask

	// Other entries apply to principals matched by no other entry. They
	// never carry an entity ID.
	Other
)

// ParseAccessControlType matches text case-insensitively against the four
// known literals. Unrecognized text fails with a ParseError carrying
// permissions.ErrUnknownType.
func ParseAccessControlType(text string) (AccessControlType, error) {
	switch strings.ToLower(text) {
	case "user":
		return User, nil
	case "group":
		return Group, nil
	case "mask":
		return Mask, nil
	case "other":
		return Other, nil
	default:
		return 0, &permissions.ParseError{
			Code:    permissions.ErrUnknownType,
			Message: "unrecognized access control type",
			Input:   text,
		}
	}
}

// String returns the lower-case wire literal for the type.
func (t AccessControlType) String() string {
	switch t {
	case User:
		return "user"
	case Group:
		return "group"
	case Mask:
		return "mask"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}
