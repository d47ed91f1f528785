// Package userrepo resolves logins to roles from the users table.
package userrepo

import (
	"context"
	"errors"

	"cafe/internal/adapters/out/postgres/pgerr"
	"cafe/internal/core/domain/model/access"
	"cafe/internal/pkg/errs"

	"gorm.io/gorm"
)

type UserDTO struct {
	Login string `gorm:"type:varchar(50);primaryKey"`
	Role  string `gorm:"type:varchar(16);not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserDirectory implements ports.UserDirectory.
type GormUserDirectory struct {
	db *gorm.DB
}

func NewGormUserDirectory(db *gorm.DB) *GormUserDirectory {
	return &GormUserDirectory{db: db}
}

func (d *GormUserDirectory) RoleOf(ctx context.Context, login string) (access.Role, error) {
	var dto UserDTO
	err := d.db.WithContext(ctx).First(&dto, "login = ?", login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return access.UnknownRole, errs.NewObjectNotFoundError("user", login)
	}
	if err != nil {
		return access.UnknownRole, pgerr.Classify("look up user", err)
	}
	return access.ParseRole(dto.Role)
}

func (d *GormUserDirectory) Exists(ctx context.Context, login string) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&UserDTO{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return false, pgerr.Classify("check user", err)
	}
	return count > 0, nil
}
