// Package permissions implements the POSIX-style permission model used by
// hierarchical-namespace storage accounts, together with the octal and
// symbolic wire codecs.
//
// Both codecs are bit-exact with the service's permission string format:
// octal encodes one role as a digit 0-7 (4=read, 2=write, 1=execute) and a
// full path permission as four digits (sticky, owner, group, other);
// symbolic encodes one role as a three-character "rwx" group and a full path
// permission as nine characters, with the sticky bit folded into the final
// "other execute" position and an optional trailing '+' marking the presence
// of an extended ACL.
package permissions

// RolePermissions is the capability set held by one of the three POSIX roles
// (owner, owning group, other) on a path.
//
// Values are plain data: construct them directly or through one of the parse
// functions, and treat them as immutable once built. Equality is structural.
type RolePermissions struct {
	// Read grants permission to read file content or list a directory.
	Read bool

	// Write grants permission to modify file content or create and delete
	// children of a directory.
	Write bool

	// Execute grants permission to execute a file or traverse a directory.
	Execute bool
}

// ParseRoleOctal decodes a single octal digit into a RolePermissions.
//
// The character's numeric value must be in [0, 7]. Only the integer range is
// validated, matching the wire format: any byte whose distance from '0' falls
// inside the range is accepted.
//
// Returns a ParseError with code ErrOutOfRange for any other byte.
func ParseRoleOctal(c byte) (RolePermissions, error) {
	value := int(c) - '0'
	if value < 0 || value > 7 {
		return RolePermissions{}, &ParseError{
			Code:    ErrOutOfRange,
			Message: "octal permission digit must be between 0 and 7",
			Input:   string(c),
		}
	}

	return RolePermissions{
		Read:    value&4 != 0,
		Write:   value&2 != 0,
		Execute: value&1 != 0,
	}, nil
}

// ParseRoleSymbolic decodes a three-character symbolic permission group
// ("rwx", "r--", ...) into a RolePermissions.
//
// Position 0 must be 'r' or '-', position 1 must be 'w' or '-'. Position 2
// must be 'x' or '-'; when allowSticky is true it may additionally be 't'
// (sticky, execute set) or 'T' (sticky, execute unset). The sticky bit itself
// is not part of the returned value: callers assembling a full path
// permission read it out of band from the case of the final character.
//
// Returns a ParseError with code ErrOutOfRange on a wrong-length input and
// ErrFormat on an invalid character.
func ParseRoleSymbolic(text string, allowSticky bool) (RolePermissions, error) {
	if len(text) < 3 {
		return RolePermissions{}, &ParseError{
			Code:    ErrOutOfRange,
			Message: "symbolic role permission is too short, expected 3 characters",
			Input:   text,
		}
	}
	if len(text) > 3 {
		return RolePermissions{}, &ParseError{
			Code:    ErrOutOfRange,
			Message: "symbolic role permission is too long, expected 3 characters",
			Input:   text,
		}
	}

	var perms RolePermissions

	switch text[0] {
	case 'r':
		perms.Read = true
	case '-':
	default:
		return RolePermissions{}, &ParseError{
			Code:    ErrFormat,
			Message: "read position must be 'r' or '-'",
			Input:   text,
		}
	}

	switch text[1] {
	case 'w':
		perms.Write = true
	case '-':
	default:
		return RolePermissions{}, &ParseError{
			Code:    ErrFormat,
			Message: "write position must be 'w' or '-'",
			Input:   text,
		}
	}

	switch text[2] {
	case 'x':
		perms.Execute = true
	case '-':
	case 't':
		// Sticky with execute set. Only valid in the "other" position.
		if !allowSticky {
			return RolePermissions{}, &ParseError{
				Code:    ErrFormat,
				Message: "sticky bit is not allowed in this position",
				Input:   text,
			}
		}
		perms.Execute = true
	case 'T':
		// Sticky with execute unset.
		if !allowSticky {
			return RolePermissions{}, &ParseError{
				Code:    ErrFormat,
				Message: "sticky bit is not allowed in this position",
				Input:   text,
			}
		}
	default:
		return RolePermissions{}, &ParseError{
			Code:    ErrFormat,
			Message: "execute position must be 'x', 't', 'T' or '-'",
			Input:   text,
		}
	}

	return perms, nil
}

// Octal returns the numeric octal value of the permission set (0-7).
func (p RolePermissions) Octal() int {
	value := 0
	if p.Read {
		value += 4
	}
	if p.Write {
		value += 2
	}
	if p.Execute {
		value++
	}
	return value
}

// OctalChar returns the single octal digit encoding of the permission set.
func (p RolePermissions) OctalChar() byte {
	return byte('0' + p.Octal())
}

// String returns the three-character symbolic encoding ("rwx", "r--", ...).
func (p RolePermissions) String() string {
	buf := []byte{'-', '-', '-'}
	if p.Read {
		buf[0] = 'r'
	}
	if p.Write {
		buf[1] = 'w'
	}
	if p.Execute {
		buf[2] = 'x'
	}
	return string(buf)
}
