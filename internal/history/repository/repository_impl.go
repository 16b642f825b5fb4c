package repository

import (
	"context"
	"time"

	"github.com/larderhq/larder/internal/history/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertUsed(ctx context.Context, db *gorm.DB, itemName string, dateUsed time.Time, quantity float64, user string) error {
	err := db.WithContext(ctx).Create(&domain.History{
		ItemName: itemName,
		DateUsed: dateUsed,
		Quantity: quantity,
	}).Error
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(&domain.Used{
		ItemName: itemName,
		DateUsed: dateUsed,
		UserName: user,
	}).Error
}

func (r *repo) InsertWasted(ctx context.Context, db *gorm.DB, itemName string, dateUsed time.Time, quantity float64) error {
	err := db.WithContext(ctx).Create(&domain.History{
		ItemName: itemName,
		DateUsed: dateUsed,
		Quantity: quantity,
	}).Error
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(&domain.Wasted{
		ItemName: itemName,
		DateUsed: dateUsed,
	}).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, itemPattern string, from, to *time.Time) ([]domain.Record, error) {
	if itemPattern == "" {
		itemPattern = "%"
	}

	stmt := db.WithContext(ctx).Table("history AS h").
		Select(`h.item_name AS item_name, h.date_used AS date_used, h.quantity AS quantity,
			CASE WHEN w.item_name IS NOT NULL THEN 'wasted' ELSE 'used' END AS kind,
			COALESCE(u.user_name, '') AS user`).
		Joins("LEFT JOIN used u ON u.item_name = h.item_name AND u.date_used = h.date_used").
		Joins("LEFT JOIN wasted w ON w.item_name = h.item_name AND w.date_used = h.date_used").
		Where("h.item_name LIKE ?", itemPattern)
	if from != nil {
		stmt = stmt.Where("h.date_used >= ?", *from)
	}
	if to != nil {
		stmt = stmt.Where("h.date_used <= ?", *to)
	}

	var records []domain.Record
	err := stmt.Order("h.date_used DESC, h.item_name").Scan(&records).Error
	return records, err
}

func (r *repo) UsageStats(ctx context.Context, db *gorm.DB) ([]domain.UsageStat, error) {
	var stats []domain.UsageStat
	err := db.WithContext(ctx).Raw(
		`SELECT it.name AS item_name,
			it.unit AS unit,
			COALESCE((SELECT SUM(h.quantity) FROM history h
				JOIN used u ON u.item_name = h.item_name AND u.date_used = h.date_used
				WHERE h.item_name = it.name), 0) AS amt_used,
			COALESCE((SELECT SUM(h.quantity) FROM history h
				JOIN wasted w ON w.item_name = h.item_name AND w.date_used = h.date_used
				WHERE h.item_name = it.name), 0) AS amt_wasted,
			COALESCE((SELECT SUM(p.price) FROM purchases p
				WHERE p.item_name = it.name), 0) AS money_spent
		 FROM item_types it
		 ORDER BY it.name`,
	).Scan(&stats).Error
	return stats, err
}
