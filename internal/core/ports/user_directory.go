package ports

import (
	"context"

	"cafe/internal/core/domain/model/access"
)

// UserDirectory resolves logins to roles. Authentication itself happens elsewhere.
type UserDirectory interface {
	// RoleOf returns the role of login or errs.ObjectNotFoundError for an unknown login.
	RoleOf(ctx context.Context, login string) (access.Role, error)

	Exists(ctx context.Context, login string) (bool, error)
}
