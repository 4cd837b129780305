package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserPhone extracts the user phone from the Gin context
func GetUserPhone(c *gin.Context) string {
	phone, exists := c.Get("user_phone")
	if !exists {
		return ""
	}
	return phone.(string)
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// IsStaff checks if the user carries the admin or staff role
func IsStaff(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "admin" || role == "staff" {
			return true
		}
	}
	return false
}
