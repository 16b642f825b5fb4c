package service

import (
	"context"
	"strings"

	"github.com/larderhq/larder/internal/storage/domain"
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
		log:  p.Log.Named("storage.service"),
		repo: p.Repo,
	}
}

func (s *Service) AddLocation(ctx context.Context, name string) (domain.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Location{}, apperr.Validation("location name is required")
	}

	location := domain.Location{Name: name}
	if err := s.repo.InsertLocation(ctx, s.db, &location); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Location{}, apperr.Duplicate("location already exists", err)
		}
		return domain.Location{}, err
	}
	return location, nil
}

func (s *Service) DeleteLocation(ctx context.Context, name string) error {
	affected, err := s.repo.DeleteLocation(ctx, s.db, name)
	if err != nil {
		if db.IsForeignKeyErr(err) {
			return apperr.Conflict("location is still referenced by a storage", err)
		}
		return err
	}
	if affected == 0 {
		return apperr.NotFound("location does not exist")
	}
	return nil
}

func (s *Service) ListLocations(ctx context.Context, pattern string) ([]domain.Location, error) {
	return s.repo.ListLocations(ctx, s.db, pattern)
}

func (s *Service) AddStorage(ctx context.Context, req domain.AddStorageRequest) (domain.Storage, error) {
	name := strings.TrimSpace(req.StorageName)
	if name == "" {
		return domain.Storage{}, apperr.Validation("storage name is required")
	}
	if req.LocationName == "" {
		return domain.Storage{}, apperr.Validation("location name is required")
	}
	// The schema admits capacities up to 2; kept as documented.
	if req.Capacity < 0 || req.Capacity > 2 {
		return domain.Storage{}, apperr.Validation("capacity must be within [0, 2]")
	}

	storage := domain.Storage{
		StorageName:  name,
		LocationName: req.LocationName,
		Capacity:     req.Capacity,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertStorage(ctx, tx, &storage); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return apperr.Duplicate("storage already exists", err)
			}
			if db.IsForeignKeyErr(err) {
				return apperr.Conflict("location does not exist", err)
			}
			return err
		}
		return s.tagChain(ctx, tx, req.Kind, name)
	})
	if err != nil {
		return domain.Storage{}, err
	}

	s.log.Info("storage added",
		zap.String("storage", name),
		zap.String("location", req.LocationName),
		zap.String("kind", string(req.Kind)),
	)
	return storage, nil
}

// tagChain inserts the subtype tags implied by kind. Fridge and freezer are
// appliances, so their parent tag is created first.
func (s *Service) tagChain(ctx context.Context, tx *gorm.DB, kind domain.StorageKind, name string) error {
	switch kind {
	case "":
		return nil
	case domain.KindDry, domain.KindAppliance:
		return s.repo.TagStorage(ctx, tx, kind, name)
	case domain.KindFridge, domain.KindFreezer:
		if err := s.repo.TagStorage(ctx, tx, domain.KindAppliance, name); err != nil {
			return err
		}
		return s.repo.TagStorage(ctx, tx, kind, name)
	default:
		return apperr.Validation("unknown storage kind")
	}
}

func (s *Service) DeleteStorage(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Subtype tags reference the storage row; drop them first.
		for _, kind := range []domain.StorageKind{domain.KindFridge, domain.KindFreezer, domain.KindAppliance, domain.KindDry} {
			if _, err := s.repo.UntagStorage(ctx, tx, kind, name); err != nil {
				return err
			}
		}
		affected, err := s.repo.DeleteStorage(ctx, tx, name)
		if err != nil {
			if db.IsForeignKeyErr(err) {
				return apperr.Conflict("storage still holds inventory", err)
			}
			return err
		}
		if affected == 0 {
			return apperr.NotFound("storage does not exist")
		}
		return nil
	})
}

func (s *Service) ListStorages(ctx context.Context, filter domain.StorageFilter) ([]domain.Storage, error) {
	return s.repo.ListStorages(ctx, s.db, filter)
}
