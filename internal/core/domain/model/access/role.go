package access

import (
	"fmt"
	"strings"

	"forwarding/internal/pkg/errs"
)

// Role is the privilege level of the caller. Roles are ordered: every
// capability of a lower role is also granted to the higher ones.
type Role int

const (
	UnknownRole Role = iota
	User
	Admin
	Super
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		User:        "user",
		Admin:       "admin",
		Super:       "super",
	}
}

// ParseRole maps the collaborator's role name onto a Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for r, str := range getRoleStrings() {
		if r != UnknownRole && str == name {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r < User || r > Super {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(minRole Role) bool {
	return r.Validate() == nil && r >= minRole
}
