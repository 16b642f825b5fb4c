package service

import (
	"context"
	"strings"

	"github.com/larderhq/larder/internal/household/domain"
	"github.com/larderhq/larder/pkg/apperr"
	"github.com/larderhq/larder/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("household.service"),
		repo: p.Repo,
	}
}

func (s *Service) AddUser(ctx context.Context, name string, role domain.UserRole) (domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, apperr.Validation("user name is required")
	}
	if role != "" && role != domain.RoleParent && role != domain.RoleDependent {
		return domain.User{}, apperr.Validation("unknown user role")
	}

	user := domain.User{Name: name}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertUser(ctx, tx, &user); err != nil {
			if !db.IsDuplicateKeyErr(err) {
				return err
			}
			if role == "" {
				return apperr.Duplicate("user already exists", err)
			}
		}
		if role == "" {
			return nil
		}
		tagged, err := s.repo.Tagged(ctx, tx, role, name)
		if err != nil {
			return err
		}
		if tagged {
			return apperr.Duplicate("user already has this role", nil)
		}
		return s.repo.TagUser(ctx, tx, role, name)
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.Info("user added", zap.String("name", name), zap.String("role", string(role)))
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, pattern string) ([]domain.User, error) {
	return s.repo.ListUsers(ctx, s.db, pattern)
}

func (s *Service) ListByRole(ctx context.Context, role domain.UserRole, pattern string) ([]domain.User, error) {
	if role != domain.RoleParent && role != domain.RoleDependent {
		return nil, apperr.Validation("unknown user role")
	}
	return s.repo.ListTagged(ctx, s.db, role, pattern)
}

func (s *Service) ItemsUsedBy(ctx context.Context, userPattern string) ([]domain.ItemUsage, error) {
	return s.repo.ItemsUsedBy(ctx, s.db, userPattern)
}
