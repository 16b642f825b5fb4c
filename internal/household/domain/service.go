package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertUser(ctx context.Context, db *gorm.DB, user *User) error
	ListUsers(ctx context.Context, db *gorm.DB, pattern string) ([]User, error)

	TagUser(ctx context.Context, db *gorm.DB, role UserRole, name string) error
	Tagged(ctx context.Context, db *gorm.DB, role UserRole, name string) (bool, error)
	ListTagged(ctx context.Context, db *gorm.DB, role UserRole, pattern string) ([]User, error)

	ItemsUsedBy(ctx context.Context, db *gorm.DB, userPattern string) ([]ItemUsage, error)
}

// Service manages household members. AddUser with a role also creates the
// user row when missing.
type Service interface {
	AddUser(ctx context.Context, name string, role UserRole) (User, error)
	ListUsers(ctx context.Context, pattern string) ([]User, error)
	ListByRole(ctx context.Context, role UserRole, pattern string) ([]User, error)
	ItemsUsedBy(ctx context.Context, userPattern string) ([]ItemUsage, error)
}
