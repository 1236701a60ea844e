package permissions

// PathPermissions is the full POSIX permission set attached to a path: one
// RolePermissions per role, the directory sticky bit, and a response-side
// flag reporting whether the path also carries an extended ACL.
type PathPermissions struct {
	// Owner holds the owning user's permissions.
	Owner RolePermissions

	// Group holds the owning group's permissions.
	Group RolePermissions

	// Other holds the permissions of everyone else.
	Other RolePermissions

	// StickyBit restricts rename and delete of a directory's children to
	// the child's owner, the directory's owner, or a privileged user.
	StickyBit bool

	// ExtendedACL reports that the path carries access control entries
	// beyond owner/group/other. It is set by the service when parsing a
	// response and is never part of the serialized permission string, so
	// Equal deliberately ignores it.
	ExtendedACL bool
}

// ParseOctal decodes the four-digit octal wire form "[sticky][owner][group][other]".
//
// The first digit is treated leniently: '0' clears the sticky bit and any
// other accepted digit sets it. The remaining three digits decode through
// ParseRoleOctal and are assigned to owner, group, and other in order.
//
// An empty input fails with ErrInvalidArgument; any other length than four
// fails with ErrOutOfRange.
func ParseOctal(text string) (PathPermissions, error) {
	if text == "" {
		return PathPermissions{}, &ParseError{
			Code:    ErrInvalidArgument,
			Message: "octal path permission must not be empty",
		}
	}
	if len(text) != 4 {
		return PathPermissions{}, &ParseError{
			Code:    ErrOutOfRange,
			Message: "octal path permission must be exactly 4 digits",
			Input:   text,
		}
	}

	var perms PathPermissions
	perms.StickyBit = text[0] != '0'

	var err error
	if perms.Owner, err = ParseRoleOctal(text[1]); err != nil {
		return PathPermissions{}, err
	}
	if perms.Group, err = ParseRoleOctal(text[2]); err != nil {
		return PathPermissions{}, err
	}
	if perms.Other, err = ParseRoleOctal(text[3]); err != nil {
		return PathPermissions{}, err
	}

	return perms, nil
}

// ParseSymbolic decodes the nine- or ten-character symbolic wire form.
//
// Characters 0-8 are the owner, group, and other role groups. The sticky bit
// is folded into the final "other execute" position: 't' or 'T' (either case)
// sets it. A tenth character, when present, must be '+' and marks the
// presence of an extended ACL.
//
// An empty input fails with ErrInvalidArgument; a length other than 9 or 10
// fails with ErrOutOfRange; a tenth character other than '+' fails with
// ErrFormat.
func ParseSymbolic(text string) (PathPermissions, error) {
	if text == "" {
		return PathPermissions{}, &ParseError{
			Code:    ErrInvalidArgument,
			Message: "symbolic path permission must not be empty",
		}
	}
	if len(text) != 9 && len(text) != 10 {
		return PathPermissions{}, &ParseError{
			Code:    ErrOutOfRange,
			Message: "symbolic path permission must be 9 or 10 characters",
			Input:   text,
		}
	}

	var perms PathPermissions

	if len(text) == 10 {
		if text[9] != '+' {
			return PathPermissions{}, &ParseError{
				Code:    ErrFormat,
				Message: "tenth character of a symbolic path permission must be '+'",
				Input:   text,
			}
		}
		perms.ExtendedACL = true
	}

	// The sticky bit lives in the case of the "other execute" character.
	perms.StickyBit = text[8] == 't' || text[8] == 'T'

	var err error
	if perms.Owner, err = ParseRoleSymbolic(text[0:3], false); err != nil {
		return PathPermissions{}, err
	}
	if perms.Group, err = ParseRoleSymbolic(text[3:6], false); err != nil {
		return PathPermissions{}, err
	}
	if perms.Other, err = ParseRoleSymbolic(text[6:9], true); err != nil {
		return PathPermissions{}, err
	}

	return perms, nil
}

// OctalString returns the four-digit octal encoding
// "[sticky][owner][group][other]".
func (p PathPermissions) OctalString() string {
	sticky := byte('0')
	if p.StickyBit {
		sticky = '1'
	}
	return string([]byte{sticky, p.Owner.OctalChar(), p.Group.OctalChar(), p.Other.OctalChar()})
}

// String returns the nine-character symbolic encoding. When the sticky bit
// is set the final character is replaced with 't' ('T' when other-execute is
// unset, following the usual ls convention): the boolean is the single source
// of truth and the character is derived display output. The extended ACL
// marker is never serialized.
func (p PathPermissions) String() string {
	buf := []byte(p.Owner.String() + p.Group.String() + p.Other.String())
	if p.StickyBit {
		if p.Other.Execute {
			buf[8] = 't'
		} else {
			buf[8] = 'T'
		}
	}
	return string(buf)
}

// Equal reports whether two permission sets grant the same access. The
// ExtendedACL flag is excluded: it annotates a response but does not define
// the permission value.
func (p PathPermissions) Equal(other PathPermissions) bool {
	return p.Owner == other.Owner &&
		p.Group == other.Group &&
		p.Other == other.Other &&
		p.StickyBit == other.StickyBit
}
