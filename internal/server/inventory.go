package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	inventorydomain "github.com/larderhq/larder/internal/inventory/domain"
	"github.com/larderhq/larder/pkg/apperr"
)

type inventoryKeyRequest struct {
	ItemName    string    `json:"item_name"`
	StorageName string    `json:"storage_name"`
	Timestamp   time.Time `json:"timestamp"`
}

func (r inventoryKeyRequest) key() inventorydomain.Key {
	return inventorydomain.Key{
		ItemName:    strings.TrimSpace(r.ItemName),
		StorageName: strings.TrimSpace(r.StorageName),
		Timestamp:   r.Timestamp,
	}
}

type addInventoryRequest struct {
	ItemName    string     `json:"item_name"`
	StorageName string     `json:"storage_name"`
	Quantity    float64    `json:"quantity"`
	Expiry      *time.Time `json:"expiry,omitempty"`
}

type purchaseItemRequest struct {
	ItemName        string     `json:"item_name"`
	Quantity        float64    `json:"quantity"`
	Price           float64    `json:"price"`
	Store           string     `json:"store"`
	ParentName      string     `json:"parent_name"`
	StorageLocation string     `json:"storage_location"`
	Expiry          *time.Time `json:"expiry,omitempty"`
}

type removeInventoryRequest struct {
	inventoryKeyRequest
	Quantity float64 `json:"quantity"`
	User     string  `json:"user,omitempty"`
}

type moveInventoryRequest struct {
	inventoryKeyRequest
	NewStorageName string `json:"new_storage_name"`
}

type changeQuantityRequest struct {
	inventoryKeyRequest
	Quantity float64 `json:"quantity"`
}

func (s *Server) AddItemToInventory(c *gin.Context) {
	var req addInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.inventorySvc.AddItemToInventory(c.Request.Context(), inventorydomain.AddRequest{
		ItemName:    strings.TrimSpace(req.ItemName),
		StorageName: strings.TrimSpace(req.StorageName),
		Quantity:    req.Quantity,
		Expiry:      req.Expiry,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, record)
}

func (s *Server) PurchaseItem(c *gin.Context) {
	var req purchaseItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	record, err := s.inventorySvc.PurchaseItem(c.Request.Context(), inventorydomain.PurchaseRequest{
		ItemName:        strings.TrimSpace(req.ItemName),
		Quantity:        req.Quantity,
		Price:           req.Price,
		Store:           strings.TrimSpace(req.Store),
		ParentName:      strings.TrimSpace(req.ParentName),
		StorageLocation: strings.TrimSpace(req.StorageLocation),
		Expiry:          req.Expiry,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, record)
}

func (s *Server) ConsumeInventory(c *gin.Context) {
	var req removeInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.User) == "" {
		AbortWithError(c, apperr.Validation("user is required to consume inventory"))
		return
	}

	if err := s.inventorySvc.ConsumeInventory(c.Request.Context(), req.key(), req.Quantity, strings.TrimSpace(req.User)); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}

func (s *Server) ThrowOutInventory(c *gin.Context) {
	var req removeInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.inventorySvc.ThrowOutInventory(c.Request.Context(), req.key(), req.Quantity); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}

func (s *Server) MoveItemStorageLocation(c *gin.Context) {
	var req moveInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.inventorySvc.MoveItemStorageLocation(c.Request.Context(), req.key(), strings.TrimSpace(req.NewStorageName)); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}

func (s *Server) ChangeItemQuantity(c *gin.Context) {
	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.inventorySvc.ChangeItemQuantity(c.Request.Context(), req.key(), req.Quantity); err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, nil)
}

func (s *Server) GetQuantity(c *gin.Context) {
	timestamp, err := parseRequiredTime(c.Query("timestamp"))
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid timestamp"))
		return
	}

	key := inventorydomain.Key{
		ItemName:    strings.TrimSpace(c.Query("item_name")),
		StorageName: strings.TrimSpace(c.Query("storage_name")),
		Timestamp:   timestamp,
	}

	quantity, err := s.inventorySvc.GetQuantity(c.Request.Context(), key)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, gin.H{"quantity": quantity})
}

func (s *Server) ViewInventory(c *gin.Context) {
	expiryFrom, err := parseOptionalTime(c.Query("expiry_from"), false)
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid expiry_from"))
		return
	}
	expiryTo, err := parseOptionalTime(c.Query("expiry_to"), true)
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid expiry_to"))
		return
	}
	includeNonPerishable, err := parseOptionalBool(c.Query("include_non_perishable"))
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid include_non_perishable"))
		return
	}

	records, err := s.inventorySvc.ViewInventory(c.Request.Context(), inventorydomain.Filter{
		ItemName:             strings.TrimSpace(c.Query("item_name")),
		StorageName:          strings.TrimSpace(c.Query("storage_name")),
		ExpiryFrom:           expiryFrom,
		ExpiryTo:             expiryTo,
		IncludeNonPerishable: includeNonPerishable,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, records)
}
