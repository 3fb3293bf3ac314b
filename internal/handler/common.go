package handler

import (
	"strconv"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/pkg/e"

	"github.com/gin-gonic/gin"
)

// identity helpers shared by every handler
func getUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		e.ErrorResponse(c, e.ErrToken)
		return 0, false
	}
	uid, ok := userID.(uint)
	if !ok {
		e.ErrorResponse(c, e.ErrServer)
		return 0, false
	}
	return uid, true
}

func getRole(c *gin.Context) model.Role {
	roleValue, exists := c.Get("role")
	if !exists {
		return model.RoleUser
	}
	role, ok := roleValue.(string)
	if !ok {
		return model.RoleUser
	}
	return model.Role(role)
}

func parseIDParam(c *gin.Context, paramKey string) (uint, error) {
	paramID := c.Param(paramKey)
	id, err := strconv.ParseUint(paramID, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parsePaging(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
