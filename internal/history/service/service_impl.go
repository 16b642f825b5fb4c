package service

import (
	"context"
	"time"

	"github.com/larderhq/larder/internal/history/domain"
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
		log:  p.Log.Named("history.service"),
		repo: p.Repo,
	}
}

func (s *Service) ListRecords(ctx context.Context, itemPattern string, from, to *time.Time) ([]domain.Record, error) {
	return s.repo.List(ctx, s.db, itemPattern, from, to)
}

func (s *Service) UsageStats(ctx context.Context) ([]domain.UsageStat, error) {
	return s.repo.UsageStats(ctx, s.db)
}
