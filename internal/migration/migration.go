package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
	historydomain "github.com/larderhq/larder/internal/history/domain"
	householddomain "github.com/larderhq/larder/internal/household/domain"
	inventorydomain "github.com/larderhq/larder/internal/inventory/domain"
	mealplandomain "github.com/larderhq/larder/internal/mealplan/domain"
	purchasedomain "github.com/larderhq/larder/internal/purchase/domain"
	recipedomain "github.com/larderhq/larder/internal/recipe/domain"
	storagedomain "github.com/larderhq/larder/internal/storage/domain"
)

// This migration package ensures larder is fully usable out of the
// box for local and self-hosted environments. All core tables are
// created automatically on startup.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// AutoMigrate builds the schema through gorm for dialects where the
// embedded SQL migrations do not apply (sqlite, mysql). Table order
// matters because of foreign keys.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&catalogdomain.ItemType{},
		&catalogdomain.Consumable{},
		&catalogdomain.Durable{},
		&catalogdomain.Food{},
		&catalogdomain.NotFood{},
		&storagedomain.Location{},
		&storagedomain.Storage{},
		&storagedomain.DryStorage{},
		&storagedomain.Appliance{},
		&storagedomain.Fridge{},
		&storagedomain.Freezer{},
		&householddomain.User{},
		&householddomain.Parent{},
		&householddomain.Dependent{},
		&inventorydomain.InventoryRecord{},
		&purchasedomain.Purchase{},
		&historydomain.History{},
		&historydomain.Used{},
		&historydomain.Wasted{},
		&recipedomain.Template{},
		&recipedomain.Recipe{},
		&recipedomain.Ingredient{},
		&mealplandomain.Meal{},
	)
}
