package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/larderhq/larder/internal/catalog/domain"
)

type addItemTypeRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
	Kind string `json:"kind,omitempty"`
}

func (s *Server) AddItemType(c *gin.Context) {
	var req addItemTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.catalogSvc.AddItemType(c.Request.Context(), catalogdomain.AddItemTypeRequest{
		Name: strings.TrimSpace(req.Name),
		Unit: strings.TrimSpace(req.Unit),
		Kind: catalogdomain.ItemKind(strings.TrimSpace(req.Kind)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, item)
}

func (s *Server) ListItemTypes(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	unit := strings.TrimSpace(c.Query("unit"))
	kind := strings.TrimSpace(c.Query("kind"))

	if kind != "" {
		items, err := s.catalogSvc.ListByKind(c.Request.Context(), catalogdomain.ItemKind(kind), name, unit)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondOK(c, items)
		return
	}

	items, err := s.catalogSvc.ListItemTypes(c.Request.Context(), name, unit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, items)
}
