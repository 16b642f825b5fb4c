package repository

import (
	"context"
	"errors"

	"github.com/larderhq/larder/internal/household/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertUser(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) ListUsers(ctx context.Context, db *gorm.DB, pattern string) ([]domain.User, error) {
	if pattern == "" {
		pattern = "%"
	}
	var users []domain.User
	err := db.WithContext(ctx).
		Where("name LIKE ?", pattern).
		Order("name").
		Find(&users).Error
	return users, err
}

func (r *repo) TagUser(ctx context.Context, db *gorm.DB, role domain.UserRole, name string) error {
	switch role {
	case domain.RoleParent:
		return db.WithContext(ctx).Create(&domain.Parent{Name: name}).Error
	case domain.RoleDependent:
		return db.WithContext(ctx).Create(&domain.Dependent{Name: name}).Error
	}
	return errors.New("unknown user role")
}

func (r *repo) Tagged(ctx context.Context, db *gorm.DB, role domain.UserRole, name string) (bool, error) {
	var count int64
	err := roleModel(db.WithContext(ctx), role).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *repo) ListTagged(ctx context.Context, db *gorm.DB, role domain.UserRole, pattern string) ([]domain.User, error) {
	if pattern == "" {
		pattern = "%"
	}
	var users []domain.User
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("name IN (?)", roleModel(db, role).Select("name")).
		Where("name LIKE ?", pattern).
		Order("name").
		Find(&users).Error
	return users, err
}

func (r *repo) ItemsUsedBy(ctx context.Context, db *gorm.DB, userPattern string) ([]domain.ItemUsage, error) {
	if userPattern == "" {
		userPattern = "%"
	}
	var usages []domain.ItemUsage
	err := db.WithContext(ctx).Raw(
		`SELECT u.user_name AS user_name, h.item_name AS item_name, SUM(h.quantity) AS quantity
		 FROM used u
		 JOIN history h ON h.item_name = u.item_name AND h.date_used = u.date_used
		 WHERE u.user_name LIKE ?
		 GROUP BY u.user_name, h.item_name
		 ORDER BY u.user_name, h.item_name`,
		userPattern,
	).Scan(&usages).Error
	return usages, err
}

func roleModel(db *gorm.DB, role domain.UserRole) *gorm.DB {
	switch role {
	case domain.RoleParent:
		return db.Model(&domain.Parent{})
	case domain.RoleDependent:
		return db.Model(&domain.Dependent{})
	}
	return db
}
