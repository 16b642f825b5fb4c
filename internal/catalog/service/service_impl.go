package service

import (
	"context"
	"strings"

	"github.com/larderhq/larder/internal/catalog/domain"
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
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

func (s *Service) AddItemType(ctx context.Context, req domain.AddItemTypeRequest) (domain.ItemType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ItemType{}, apperr.Validation("item type name is required")
	}

	itemType := domain.ItemType{Name: name, Unit: strings.TrimSpace(req.Unit)}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.Find(ctx, tx, name)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := s.repo.Insert(ctx, tx, &itemType); err != nil {
				if db.IsDuplicateKeyErr(err) {
					return apperr.Duplicate("item type already exists", err)
				}
				return err
			}
		} else if req.Kind == "" {
			return apperr.Duplicate("item type already exists", nil)
		} else {
			itemType = *existing
		}
		return s.tagChain(ctx, tx, req.Kind, name)
	})
	if err != nil {
		return domain.ItemType{}, err
	}

	s.log.Info("item type added", zap.String("name", name), zap.String("kind", string(req.Kind)))
	return itemType, nil
}

// tagChain creates the parent tags a subtype requires before tagging the
// subtype itself. Existing tags are left alone.
func (s *Service) tagChain(ctx context.Context, tx *gorm.DB, kind domain.ItemKind, name string) error {
	var chain []domain.ItemKind
	switch kind {
	case "":
		return nil
	case domain.KindConsumable, domain.KindDurable:
		chain = []domain.ItemKind{kind}
	case domain.KindFood, domain.KindNotFood:
		chain = []domain.ItemKind{domain.KindConsumable, kind}
	default:
		return apperr.Validation("unknown item kind")
	}

	for _, k := range chain {
		tagged, err := s.repo.Tagged(ctx, tx, k, name)
		if err != nil {
			return err
		}
		if tagged {
			continue
		}
		if err := s.repo.Tag(ctx, tx, k, name); err != nil {
			if db.IsDuplicateKeyErr(err) {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *Service) ListItemTypes(ctx context.Context, namePattern, unitPattern string) ([]domain.ItemType, error) {
	return s.repo.List(ctx, s.db, namePattern, unitPattern)
}

func (s *Service) ListByKind(ctx context.Context, kind domain.ItemKind, namePattern, unitPattern string) ([]domain.ItemType, error) {
	switch kind {
	case domain.KindConsumable, domain.KindDurable, domain.KindFood, domain.KindNotFood:
	default:
		return nil, apperr.Validation("unknown item kind")
	}
	return s.repo.ListTagged(ctx, s.db, kind, namePattern, unitPattern)
}
