package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	storagedomain "github.com/larderhq/larder/internal/storage/domain"
	"github.com/larderhq/larder/pkg/apperr"
)

type addLocationRequest struct {
	Name string `json:"name"`
}

type addStorageRequest struct {
	StorageName  string  `json:"storage_name"`
	LocationName string  `json:"location_name"`
	Capacity     float64 `json:"capacity"`
	Kind         string  `json:"kind,omitempty"`
}

func (s *Server) AddLocation(c *gin.Context) {
	var req addLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	loc, err := s.storageSvc.AddLocation(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, loc)
}

func (s *Server) DeleteLocation(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if err := s.storageSvc.DeleteLocation(c.Request.Context(), name); err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) ListLocations(c *gin.Context) {
	locations, err := s.storageSvc.ListLocations(c.Request.Context(), strings.TrimSpace(c.Query("name")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, locations)
}

func (s *Server) AddStorage(c *gin.Context) {
	var req addStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	st, err := s.storageSvc.AddStorage(c.Request.Context(), storagedomain.AddStorageRequest{
		StorageName:  strings.TrimSpace(req.StorageName),
		LocationName: strings.TrimSpace(req.LocationName),
		Capacity:     req.Capacity,
		Kind:         storagedomain.StorageKind(strings.TrimSpace(req.Kind)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, st)
}

func (s *Server) DeleteStorage(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if err := s.storageSvc.DeleteStorage(c.Request.Context(), name); err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) ListStorages(c *gin.Context) {
	capacityLow, err := parseOptionalFloat(c.Query("capacity_low"))
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid capacity_low"))
		return
	}
	capacityHigh, err := parseOptionalFloat(c.Query("capacity_high"))
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid capacity_high"))
		return
	}

	storages, err := s.storageSvc.ListStorages(c.Request.Context(), storagedomain.StorageFilter{
		StorageName:  strings.TrimSpace(c.Query("storage_name")),
		LocationName: strings.TrimSpace(c.Query("location_name")),
		CapacityLow:  capacityLow,
		CapacityHigh: capacityHigh,
		Kind:         storagedomain.StorageKind(strings.TrimSpace(c.Query("kind"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, storages)
}
