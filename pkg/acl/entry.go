package acl

import (
	"strings"

	"github.com/lakeio/dlstore/pkg/permissions"
)

// defaultScopeLiteral is the leading field marking an entry that applies to
// children created under a directory rather than to the directory itself.
const defaultScopeLiteral = "default"

// Entry is one access control line for a path.
//
// The wire form is colon-delimited: "[default:]type:entityID:rwx". The
// entity ID field is always present on the wire but may be empty; an empty
// EntityID here means the entry targets the owning user or owning group (for
// user/group entries) and is required to be empty for mask and other entries.
//
// A path's full ACL is an ordered slice of entries. Order is wire order and
// is preserved on round-trip: the service treats the serialized list as
// canonical.
type Entry struct {
	// DefaultScope marks an entry inherited by children created under the
	// directory, rather than applied to the path itself.
	DefaultScope bool

	// Type is the principal class the entry applies to.
	Type AccessControlType

	// EntityID names the user or group the entry applies to. Empty means
	// the owning user or owning group. Must be empty for Mask and Other.
	EntityID string

	// Permissions are the capabilities granted by the entry.
	Permissions permissions.RolePermissions
}

// Validate checks the entity-ID invariant: mask and other entries must not
// name a principal.
func (e Entry) Validate() error {
	if e.EntityID != "" && (e.Type == Mask || e.Type == Other) {
		return &permissions.ParseError{
			Code:    permissions.ErrInvalidArgument,
			Message: "entity ID must be empty for " + e.Type.String() + " entries",
			Input:   e.EntityID,
		}
	}
	return nil
}

// String builds the colon-delimited wire form. The entity ID field is
// rendered as an empty string when absent, never omitted.
func (e Entry) String() string {
	var sb strings.Builder
	if e.DefaultScope {
		sb.WriteString(defaultScopeLiteral)
		sb.WriteByte(':')
	}
	sb.WriteString(e.Type.String())
	sb.WriteByte(':')
	sb.WriteString(e.EntityID)
	sb.WriteByte(':')
	sb.WriteString(e.Permissions.String())
	return sb.String()
}

// ParseEntry decodes one colon-delimited ACL line.
//
// Three fields decode as "type:entityID:rwx". Four fields require the first
// to be the literal "default" and shift the remaining fields by one; any
// other first field fails with an invalid-argument error. Any other field
// count fails with a format error. The permission field is parsed with the
// sticky bit disallowed.
func ParseEntry(text string) (Entry, error) {
	parts := strings.Split(text, ":")

	var entry Entry
	offset := 0

	switch len(parts) {
	case 3:
	case 4:
		if parts[0] != defaultScopeLiteral {
			return Entry{}, &permissions.ParseError{
				Code:    permissions.ErrInvalidArgument,
				Message: "four-field access control entry must begin with \"default\"",
				Input:   text,
			}
		}
		entry.DefaultScope = true
		offset = 1
	default:
		return Entry{}, &permissions.ParseError{
			Code:    permissions.ErrFormat,
			Message: "access control entry must have 3 or 4 colon-delimited fields",
			Input:   text,
		}
	}

	accessType, err := ParseAccessControlType(parts[offset])
	if err != nil {
		return Entry{}, err
	}
	entry.Type = accessType
	entry.EntityID = parts[offset+1]

	perms, err := permissions.ParseRoleSymbolic(parts[offset+2], false)
	if err != nil {
		return Entry{}, err
	}
	entry.Permissions = perms

	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// FormatList joins the wire form of each entry with commas, preserving order.
func FormatList(entries []Entry) string {
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = entry.String()
	}
	return strings.Join(parts, ",")
}

// ParseList splits text on commas and parses each segment as one entry.
// Result order is wire order. An empty input yields an empty list.
func ParseList(text string) ([]Entry, error) {
	if text == "" {
		return nil, nil
	}

	segments := strings.Split(text, ",")
	entries := make([]Entry, 0, len(segments))
	for _, segment := range segments {
		entry, err := ParseEntry(segment)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
