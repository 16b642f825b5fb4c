package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	householddomain "github.com/larderhq/larder/internal/household/domain"
)

type addUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (s *Server) AddUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	user, err := s.householdSvc.AddUser(c.Request.Context(), strings.TrimSpace(req.Name), householddomain.UserRole(strings.TrimSpace(req.Role)))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, user)
}

func (s *Server) ListUsers(c *gin.Context) {
	pattern := strings.TrimSpace(c.Query("name"))
	role := strings.TrimSpace(c.Query("role"))

	if role != "" {
		users, err := s.householdSvc.ListByRole(c.Request.Context(), householddomain.UserRole(role), pattern)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		respondOK(c, users)
		return
	}

	users, err := s.householdSvc.ListUsers(c.Request.Context(), pattern)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, users)
}

func (s *Server) ItemsUsedBy(c *gin.Context) {
	usage, err := s.householdSvc.ItemsUsedBy(c.Request.Context(), strings.TrimSpace(c.Query("user")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, usage)
}
