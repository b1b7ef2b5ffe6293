package domain

import "errors"

// Role identifies the kind of account a profile belongs to.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// roleTags maps each role to the single-character tag that prefixes every
// login id. The mapping is a user-facing contract: S1234 is a student,
// F5678 a faculty member, A0001 an admin.
var roleTags = map[Role]byte{
	RoleStudent: 'S',
	RoleFaculty: 'F',
	RoleAdmin:   'A',
}

var ErrInvalidPhone = errors.New("phone number must be exactly 10 digits")
var ErrUnknownRole = errors.New("unknown role")

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleTags[r]
	return ok
}

// ValidPhone reports whether s is exactly 10 ASCII digits.
func ValidPhone(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DeriveLoginID builds the login id for a role from a 10-digit phone
// number: the role tag followed by the last four digits of the phone.
// The phone must already have passed ValidPhone.
func DeriveLoginID(role Role, phone string) (string, error) {
	tag, ok := roleTags[role]
	if !ok {
		return "", ErrUnknownRole
	}
	if !ValidPhone(phone) {
		return "", ErrInvalidPhone
	}
	return string(tag) + phone[len(phone)-4:], nil
}

// ResolveRole maps a login id to its role via the first character,
// case-insensitively. The second return value is false when the id is
// empty or carries an unknown tag.
func ResolveRole(loginID string) (Role, bool) {
	if loginID == "" {
		return "", false
	}
	tag := loginID[0]
	if tag >= 'a' && tag <= 'z' {
		tag -= 'a' - 'A'
	}
	switch tag {
	case 'S':
		return RoleStudent, true
	case 'F':
		return RoleFaculty, true
	case 'A':
		return RoleAdmin, true
	default:
		return "", false
	}
}
