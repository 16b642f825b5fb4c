package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/larderhq/larder/internal/catalog"
	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
	"github.com/larderhq/larder/internal/config"
	"github.com/larderhq/larder/internal/history"
	historydomain "github.com/larderhq/larder/internal/history/domain"
	"github.com/larderhq/larder/internal/household"
	householddomain "github.com/larderhq/larder/internal/household/domain"
	"github.com/larderhq/larder/internal/inventory"
	inventorydomain "github.com/larderhq/larder/internal/inventory/domain"
	"github.com/larderhq/larder/internal/mealplan"
	mealplandomain "github.com/larderhq/larder/internal/mealplan/domain"
	"github.com/larderhq/larder/internal/purchase"
	purchasedomain "github.com/larderhq/larder/internal/purchase/domain"
	"github.com/larderhq/larder/internal/recipe"
	recipedomain "github.com/larderhq/larder/internal/recipe/domain"
	"github.com/larderhq/larder/internal/sqlcatalog"
	"github.com/larderhq/larder/internal/storage"
	storagedomain "github.com/larderhq/larder/internal/storage/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	storage.Module,
	household.Module,
	inventory.Module,
	purchase.Module,
	history.Module,
	recipe.Module,
	mealplan.Module,
	sqlcatalog.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	inventorySvc inventorydomain.Service
	catalogSvc   catalogdomain.Service
	storageSvc   storagedomain.Service
	householdSvc householddomain.Service
	purchaseSvc  purchasedomain.Service
	historySvc   historydomain.Service
	recipeSvc    recipedomain.Service
	mealplanSvc  mealplandomain.Service
	queries      *sqlcatalog.Catalog
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	InventorySvc inventorydomain.Service
	CatalogSvc   catalogdomain.Service
	StorageSvc   storagedomain.Service
	HouseholdSvc householddomain.Service
	PurchaseSvc  purchasedomain.Service
	HistorySvc   historydomain.Service
	RecipeSvc    recipedomain.Service
	MealplanSvc  mealplandomain.Service
	Queries      *sqlcatalog.Catalog
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		inventorySvc: p.InventorySvc,
		catalogSvc:   p.CatalogSvc,
		storageSvc:   p.StorageSvc,
		householdSvc: p.HouseholdSvc,
		purchaseSvc:  p.PurchaseSvc,
		historySvc:   p.HistorySvc,
		recipeSvc:    p.RecipeSvc,
		mealplanSvc:  p.MealplanSvc,
		queries:      p.Queries,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.RequestID())

	// -------- Item types --------
	api.GET("/item-types", s.ListItemTypes)
	api.POST("/item-types", s.AddItemType)

	// -------- Locations and storages --------
	api.GET("/locations", s.ListLocations)
	api.POST("/locations", s.AddLocation)
	api.DELETE("/locations/:name", s.DeleteLocation)
	api.GET("/storages", s.ListStorages)
	api.POST("/storages", s.AddStorage)
	api.DELETE("/storages/:name", s.DeleteStorage)

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.AddUser)
	api.GET("/users/usage", s.ItemsUsedBy)

	// -------- Inventory ledger --------
	api.GET("/inventory", s.ViewInventory)
	api.POST("/inventory", s.AddItemToInventory)
	api.POST("/inventory/purchase", s.PurchaseItem)
	api.POST("/inventory/consume", s.ConsumeInventory)
	api.POST("/inventory/waste", s.ThrowOutInventory)
	api.POST("/inventory/move", s.MoveItemStorageLocation)
	api.POST("/inventory/quantity", s.ChangeItemQuantity)
	api.GET("/inventory/quantity", s.GetQuantity)

	// -------- Purchases and history --------
	api.GET("/purchases", s.ListPurchases)
	api.GET("/history", s.ListHistory)
	api.GET("/history/stats", s.UsageStats)

	// -------- Recipes and meal plan --------
	api.GET("/recipes", s.ListRecipes)
	api.POST("/recipes", s.AddRecipe)
	api.DELETE("/recipes/:name", s.DeleteRecipe)
	api.GET("/recipes/shopping-list", s.ShoppingList)
	api.GET("/meals", s.ListMeals)
	api.POST("/meals", s.ScheduleMeal)
	api.POST("/meals/consume", s.ConsumeMeal)
	api.DELETE("/meals", s.RemoveMeal)

	// -------- Stored query catalog --------
	api.GET("/queries", s.ListQueries)
	api.POST("/queries/:group/:name", s.ExecuteQuery)
}
