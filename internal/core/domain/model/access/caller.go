// Package access models who is invoking an order operation.
//
// A Caller is an explicit value built by the front end (CLI, HTTP handler, job)
// once per request and passed into every command and query. There is no
// process-wide "current user".
package access

import (
	"errors"
	"strings"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var (
	ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller constructor")
	ErrLoginIsRequired        = errs.NewValueIsRequiredError("login")
)

// Caller is the authenticated login together with the role the user directory reports for it.
type Caller struct { //nolint:recvcheck //using for validation
	login string
	role  Role
	guard guard.ConstructorGuard
}

// NewCaller validates login and role.
func NewCaller(login string, role Role) (Caller, error) {
	caller := Caller{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		caller.setLogin(login),
		caller.setRole(role),
	); err != nil {
		return Caller{}, err
	}

	return caller, nil
}

// Validate ensures the caller was created through NewCaller.
func (c Caller) Validate() error {
	return c.guard.Validate(ErrCallerIsNotConstructed)
}

func (c Caller) Login() string {
	return c.login
}

func (c Caller) Role() Role {
	return c.role
}

// IsStaff reports whether the caller is an Employee or a Manager.
func (c Caller) IsStaff() bool {
	return c.role.IsStaff()
}

// Owns reports whether ownerLogin is the caller's own login.
func (c Caller) Owns(ownerLogin string) bool {
	return c.login == ownerLogin
}

func (c *Caller) setLogin(login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return ErrLoginIsRequired
	}
	c.login = login
	return nil
}

func (c *Caller) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
