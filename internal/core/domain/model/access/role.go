package access

import (
	"fmt"
	"strings"

	"cafe/internal/pkg/errs"
)

// Role determines which order operations a caller may invoke.
//
//	Customer  places orders, adds items to own open orders, comments own items
//	Employee  everything a customer can do on any order, plus item status and payment
//	Manager   same order rights as Employee
type Role int

const (
	// UnknownRole is the zero value and is never valid.
	UnknownRole Role = iota
	Customer
	Employee
	Manager
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Customer:    "Customer",
		Employee:    "Employee",
		Manager:     "Manager",
	}
}

// ParseRole converts the user directory's role name to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != UnknownRole && strings.EqualFold(strings.TrimSpace(s), name) {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if r != Customer && r != Employee && r != Manager {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// IsStaff reports whether the role works behind the counter.
func (r Role) IsStaff() bool {
	return r == Employee || r == Manager
}
