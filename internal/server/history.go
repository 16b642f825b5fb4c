package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/larderhq/larder/pkg/apperr"
)

func (s *Server) ListHistory(c *gin.Context) {
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

	records, err := s.historySvc.ListRecords(c.Request.Context(), strings.TrimSpace(c.Query("item_name")), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, records)
}

func (s *Server) UsageStats(c *gin.Context) {
	stats, err := s.historySvc.UsageStats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, stats)
}
