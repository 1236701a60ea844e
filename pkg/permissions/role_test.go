package permissions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helper Functions
// ============================================================================

// requireParseError asserts that err is a *ParseError with the given code.
func requireParseError(t *testing.T, err error, code ErrorCode) {
	t.Helper()

	var parseErr *ParseError
	require.Error(t, err)
	require.True(t, errors.As(err, &parseErr), "expected *ParseError, got %T: %v", err, err)
	assert.Equal(t, code, parseErr.Code, "unexpected error code: %v", parseErr)
}

// allRolePermissions returns every (read, write, execute) combination.
func allRolePermissions() []RolePermissions {
	var all []RolePermissions
	for _, read := range []bool{false, true} {
		for _, write := range []bool{false, true} {
			for _, execute := range []bool{false, true} {
				all = append(all, RolePermissions{Read: read, Write: write, Execute: execute})
			}
		}
	}
	return all
}

// ============================================================================
// ParseRoleOctal Tests
// ============================================================================

func TestParseRoleOctal(t *testing.T) {
	t.Run("DecodesAllDigits", func(t *testing.T) {
		expected := map[byte]RolePermissions{
			'0': {},
			'1': {Execute: true},
			'2': {Write: true},
			'3': {Write: true, Execute: true},
			'4': {Read: true},
			'5': {Read: true, Execute: true},
			'6': {Read: true, Write: true},
			'7': {Read: true, Write: true, Execute: true},
		}

		for digit, want := range expected {
			perms, err := ParseRoleOctal(digit)
			require.NoError(t, err, "digit %q", digit)
			assert.Equal(t, want, perms, "digit %q", digit)
		}
	})

	t.Run("RejectsDigitAboveRange", func(t *testing.T) {
		_, err := ParseRoleOctal('8')
		requireParseError(t, err, ErrOutOfRange)
	})

	t.Run("RejectsNonDigit", func(t *testing.T) {
		for _, c := range []byte{'r', 'x', ' ', '/', ':'} {
			_, err := ParseRoleOctal(c)
			requireParseError(t, err, ErrOutOfRange)
		}
	})
}

// ============================================================================
// ParseRoleSymbolic Tests
// ============================================================================

func TestParseRoleSymbolic(t *testing.T) {
	t.Run("DecodesBasicGroups", func(t *testing.T) {
		tests := []struct {
			input string
			want  RolePermissions
		}{
			{"---", RolePermissions{}},
			{"r--", RolePermissions{Read: true}},
			{"-w-", RolePermissions{Write: true}},
			{"--x", RolePermissions{Execute: true}},
			{"rw-", RolePermissions{Read: true, Write: true}},
			{"rwx", RolePermissions{Read: true, Write: true, Execute: true}},
		}

		for _, tc := range tests {
			perms, err := ParseRoleSymbolic(tc.input, false)
			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.want, perms, "input %q", tc.input)
		}
	})

	t.Run("DecodesStickyCharacters", func(t *testing.T) {
		// 't' carries execute, 'T' does not; stickiness itself is read out
		// of band by the path-level parser.
		perms, err := ParseRoleSymbolic("rwt", true)
		require.NoError(t, err)
		assert.True(t, perms.Execute)

		perms, err = ParseRoleSymbolic("rwT", true)
		require.NoError(t, err)
		assert.False(t, perms.Execute)
	})

	t.Run("RejectsStickyWhenDisallowed", func(t *testing.T) {
		_, err := ParseRoleSymbolic("rwt", false)
		requireParseError(t, err, ErrFormat)

		_, err = ParseRoleSymbolic("rwT", false)
		requireParseError(t, err, ErrFormat)
	})

	t.Run("RejectsWrongLength", func(t *testing.T) {
		_, err := ParseRoleSymbolic("rw", false)
		requireParseError(t, err, ErrOutOfRange)

		_, err = ParseRoleSymbolic("rwxr", false)
		requireParseError(t, err, ErrOutOfRange)
	})

	t.Run("RejectsInvalidCharacters", func(t *testing.T) {
		for _, input := range []string{"xwx", "rrx", "rwr", "Rwx", "rWx", "rw+"} {
			_, err := ParseRoleSymbolic(input, true)
			requireParseError(t, err, ErrFormat)
		}
	})
}

// ============================================================================
// Round-Trip Tests
// ============================================================================

func TestRolePermissions_RoundTrip(t *testing.T) {
	t.Run("Symbolic", func(t *testing.T) {
		for _, perms := range allRolePermissions() {
			parsed, err := ParseRoleSymbolic(perms.String(), true)
			require.NoError(t, err, "permissions %v", perms)
			assert.Equal(t, perms, parsed)
		}
	})

	t.Run("Octal", func(t *testing.T) {
		for digit := byte('0'); digit <= '7'; digit++ {
			perms, err := ParseRoleOctal(digit)
			require.NoError(t, err)
			assert.Equal(t, digit, perms.OctalChar())
		}
	})

	t.Run("OctalValueMatchesBits", func(t *testing.T) {
		for _, perms := range allRolePermissions() {
			want := 0
			if perms.Read {
				want += 4
			}
			if perms.Write {
				want += 2
			}
			if perms.Execute {
				want++
			}
			assert.Equal(t, want, perms.Octal(), fmt.Sprintf("permissions %v", perms))
		}
	})
}
