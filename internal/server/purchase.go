package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	purchasedomain "github.com/larderhq/larder/internal/purchase/domain"
	"github.com/larderhq/larder/pkg/apperr"
)

func (s *Server) ListPurchases(c *gin.Context) {
	from, err := parseOptionalTime(c.Query("from"), false)
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid from"))
		return
	}
	to, err := parseOptionalTime(c.Query("to"), true)
	if err != nil {
		AbortWithError(c, apperr.Validation("invalid to"))
		return
	}

	purchases, err := s.purchaseSvc.ListPurchases(c.Request.Context(), purchasedomain.PurchaseFilter{
		ItemName: strings.TrimSpace(c.Query("item_name")),
		Store:    strings.TrimSpace(c.Query("store")),
		From:     from,
		To:       to,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, purchases)
}
