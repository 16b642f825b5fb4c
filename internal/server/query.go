package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ListQueries exposes the stored query catalog so clients can discover
// the available reports, their inputs and their output columns.
func (s *Server) ListQueries(c *gin.Context) {
	respondOK(c, s.queries.Groups())
}

func (s *Server) ExecuteQuery(c *gin.Context) {
	group := strings.TrimSpace(c.Param("group"))
	name := strings.TrimSpace(c.Param("name"))

	params := map[string]any{}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	rows, err := s.queries.Execute(c.Request.Context(), s.db, group, name, params)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, rows)
}
