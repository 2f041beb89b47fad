package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// RoleHeader carries the caller's role, set by the authenticating gateway.
const RoleHeader = "X-User-Role"

const roleKey = "role"

// RoleMiddleware reads RoleHeader into the request context. Unknown roles
// become the empty role, which every service refuses.
func RoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(roleKey, models.ParseRole(c.GetHeader(RoleHeader)))
		c.Next()
	}
}

func roleFrom(c *gin.Context) models.Role {
	if v, ok := c.Get(roleKey); ok {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return models.ParseRole(c.GetHeader(RoleHeader))
}
