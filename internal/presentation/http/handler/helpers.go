package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetCashierID extracts the cashier ID from the Gin context
func GetCashierID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	cashierID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &cashierID
}

// GetShopID extracts the shop ID from the Gin context
func GetShopID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("shop_id")
	if !exists {
		return nil
	}
	shopID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &shopID
}

// GetCashierRoles extracts the cashier roles from the Gin context
func GetCashierRoles(c *gin.Context) []string {
	roles, exists := c.Get("cashier_roles")
	if !exists {
		return nil
	}
	list, ok := roles.([]string)
	if !ok {
		return nil
	}
	return list
}
