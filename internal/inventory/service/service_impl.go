package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
	"github.com/larderhq/larder/internal/clock"
	historydomain "github.com/larderhq/larder/internal/history/domain"
	"github.com/larderhq/larder/internal/inventory/domain"
	purchasedomain "github.com/larderhq/larder/internal/purchase/domain"
	"github.com/larderhq/larder/pkg/apperr"
	"github.com/larderhq/larder/pkg/db"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ledgerOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "larder_ledger_operations_total",
	Help: "Ledger operations by name and outcome.",
}, []string{"op", "outcome"})

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	GenID       *snowflake.Node
	Repo        domain.Repository
	CatalogRepo catalogdomain.Repository
	Purchases   purchasedomain.Repository
	History     historydomain.Repository
}

// Service is the inventory ledger. Each operation runs inside one gorm
// transaction; any failure past the transaction boundary rolls the whole
// operation back, so a quantity change is never observable without its log
// entry and vice versa.
type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     *snowflake.Node
	repo      domain.Repository
	catalog   catalogdomain.Repository
	purchases purchasedomain.Repository
	history   historydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("inventory.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		repo:      p.Repo,
		catalog:   p.CatalogRepo,
		purchases: p.Purchases,
		history:   p.History,
	}
}

func (s *Service) AddItemToInventory(ctx context.Context, req domain.AddRequest) (domain.InventoryRecord, error) {
	if req.Quantity == 0 {
		req.Quantity = 1.0
	}

	var record domain.InventoryRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		record, err = s.addToInventory(ctx, tx, req)
		return err
	})
	s.observe("add_item_to_inventory", err,
		zap.String("item", req.ItemName),
		zap.String("storage", req.StorageName),
		zap.Float64("quantity", req.Quantity),
	)
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	return record, nil
}

// addToInventory is the shared insert used by AddItemToInventory and
// PurchaseItem; it runs on the caller's session.
func (s *Service) addToInventory(ctx context.Context, tx *gorm.DB, req domain.AddRequest) (domain.InventoryRecord, error) {
	itemType, err := s.catalog.Find(ctx, tx, req.ItemName)
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	if itemType == nil {
		return domain.InventoryRecord{}, apperr.NotFound("item type does not exist")
	}

	record := domain.InventoryRecord{
		ItemName:    req.ItemName,
		StorageName: req.StorageName,
		Timestamp:   domain.TruncateTimestamp(s.clock.Now()),
		Quantity:    req.Quantity,
		Expiry:      req.Expiry,
	}
	if err := s.repo.Insert(ctx, tx, &record); err != nil {
		// The item type was verified above, so a foreign-key failure here
		// can only be the storage reference.
		if db.IsForeignKeyErr(err) || db.ViolatesConstraint(err, "fk_inventory_storage") {
			return domain.InventoryRecord{}, apperr.Conflict("storage location does not exist", err)
		}
		if db.IsDuplicateKeyErr(err) {
			return domain.InventoryRecord{}, apperr.Duplicate("item already exists in inventory", err)
		}
		return domain.InventoryRecord{}, apperr.Transaction("failed to add item to inventory", err)
	}
	return record, nil
}

func (s *Service) PurchaseItem(ctx context.Context, req domain.PurchaseRequest) (domain.InventoryRecord, error) {
	// Rejected before any database interaction.
	if req.Quantity <= 0 {
		return domain.InventoryRecord{}, apperr.Validation("quantity for a purchase must be greater than 0")
	}

	var record domain.InventoryRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchase := purchasedomain.Purchase{
			ItemName:   req.ItemName,
			Timestamp:  domain.TruncateTimestamp(s.clock.Now()),
			Quantity:   req.Quantity,
			Price:      req.Price,
			Store:      req.Store,
			ParentName: req.ParentName,
		}
		if err := s.purchases.Insert(ctx, tx, &purchase); err != nil {
			if db.IsForeignKeyErr(err) {
				return apperr.Conflict("parent does not have purchasing privilege", err)
			}
			if db.IsDuplicateKeyErr(err) {
				return apperr.Duplicate("purchase already recorded at this timestamp", err)
			}
			return apperr.Transaction("failed to add purchase record", err)
		}

		var err error
		record, err = s.addToInventory(ctx, tx, domain.AddRequest{
			ItemName:    req.ItemName,
			StorageName: req.StorageLocation,
			Expiry:      req.Expiry,
			Quantity:    req.Quantity,
		})
		return err
	})
	s.observe("purchase_item", err,
		zap.String("item", req.ItemName),
		zap.String("parent", req.ParentName),
		zap.Float64("quantity", req.Quantity),
		zap.Float64("price", req.Price),
	)
	if err != nil {
		return domain.InventoryRecord{}, err
	}
	return record, nil
}

func (s *Service) ConsumeInventory(ctx context.Context, key domain.Key, quantity float64, user string) error {
	err := s.removeAndLog(ctx, key, quantity, &user)
	s.observe("consume_inventory", err,
		zap.String("item", key.ItemName),
		zap.String("user", user),
		zap.Float64("quantity", quantity),
	)
	return err
}

func (s *Service) ThrowOutInventory(ctx context.Context, key domain.Key, quantity float64) error {
	err := s.removeAndLog(ctx, key, quantity, nil)
	s.observe("throw_out_inventory", err,
		zap.String("item", key.ItemName),
		zap.Float64("quantity", quantity),
	)
	return err
}

// removeAndLog is the shared protocol behind consumption and waste. It reads
// the batch under lock, persists the decrement or deletes the exhausted row,
// then appends exactly one history record: used when user is set, wasted
// otherwise. The history row logs the requested quantity, not the held one;
// over-removal deletes the batch and the log keeps the caller's figure.
func (s *Service) removeAndLog(ctx context.Context, key domain.Key, quantityRemoved float64, user *string) error {
	key.Timestamp = domain.TruncateTimestamp(key.Timestamp)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.repo.FindForUpdate(ctx, tx, key)
		if err != nil {
			return apperr.Transaction("failed to get inventory quantity", err)
		}
		if record == nil {
			return apperr.NotFound("item not in inventory")
		}

		newQuantity := record.Quantity - quantityRemoved
		if newQuantity > 0 {
			if _, err := s.repo.UpdateQuantity(ctx, tx, key, newQuantity); err != nil {
				return apperr.Transaction("failed to update item quantity", err)
			}
		} else {
			if _, err := s.repo.Delete(ctx, tx, key); err != nil {
				return apperr.Transaction("failed to delete item", err)
			}
		}

		return s.logRemoval(ctx, tx, key.ItemName, quantityRemoved, user)
	})
}

// logRemoval writes the history row and its used/wasted tag. History is
// keyed on (item_name, date_used) at second precision, so two removals of
// the same item within one second collide on the log insert and roll the
// whole removal back as a Transaction error.
func (s *Service) logRemoval(ctx context.Context, tx *gorm.DB, itemName string, quantity float64, user *string) error {
	dateUsed := domain.TruncateTimestamp(s.clock.Now())
	var err error
	if user == nil {
		err = s.history.InsertWasted(ctx, tx, itemName, dateUsed, quantity)
	} else {
		err = s.history.InsertUsed(ctx, tx, itemName, dateUsed, quantity, *user)
	}
	if err != nil {
		return apperr.Transaction("failed to log usage of item", err)
	}
	return nil
}

func (s *Service) MoveItemStorageLocation(ctx context.Context, key domain.Key, newStorageName string) error {
	key.Timestamp = domain.TruncateTimestamp(key.Timestamp)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.Move(ctx, tx, key, newStorageName)
		if err != nil {
			if db.IsForeignKeyErr(err) {
				return apperr.Conflict("storage location does not exist", err)
			}
			if db.IsDuplicateKeyErr(err) {
				return apperr.Duplicate("item already exists at the new storage", err)
			}
			return apperr.Transaction("failed to move item", err)
		}
		if affected == 0 {
			return apperr.NotFound("item not in inventory")
		}
		return nil
	})
	s.observe("move_item_storage_location", err,
		zap.String("item", key.ItemName),
		zap.String("from", key.StorageName),
		zap.String("to", newStorageName),
	)
	return err
}

func (s *Service) ChangeItemQuantity(ctx context.Context, key domain.Key, newQuantity float64) error {
	key.Timestamp = domain.TruncateTimestamp(key.Timestamp)

	affected, err := s.repo.UpdateQuantity(ctx, s.db, key, newQuantity)
	s.observe("change_item_quantity", err,
		zap.String("item", key.ItemName),
		zap.Float64("quantity", newQuantity),
	)
	if err != nil {
		return apperr.Transaction("failed to update item quantity", err)
	}
	if affected == 0 {
		return apperr.NotFound("item not in inventory")
	}
	return nil
}

func (s *Service) GetQuantity(ctx context.Context, key domain.Key) (float64, error) {
	key.Timestamp = domain.TruncateTimestamp(key.Timestamp)

	record, err := s.repo.Find(ctx, s.db, key)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, apperr.NotFound("item not in inventory")
	}
	return record.Quantity, nil
}

func (s *Service) ViewInventory(ctx context.Context, filter domain.Filter) ([]domain.InventoryRecord, error) {
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) observe(op string, err error, fields ...zap.Field) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ledgerOps.WithLabelValues(op, outcome).Inc()

	fields = append(fields, zap.Int64("op_id", s.genID.Generate().Int64()))
	if err != nil {
		fields = append(fields, zap.Error(err))
		s.log.Warn(op, fields...)
		return
	}
	s.log.Info(op, fields...)
}
