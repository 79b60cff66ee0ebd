package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/application/service"
	"github.com/medetbek/servicepos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// CatalogHandler handles service type catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create handles adding a service type to the shop's price list
func (h *CatalogHandler) Create(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	var req struct {
		Name  string          `json:"name" binding:"required"`
		Price decimal.Decimal `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	serviceType, err := h.catalogService.Create(c.Request.Context(), shopID, req.Name, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service type created successfully", serviceType)
}

// List handles listing the shop's price list
func (h *CatalogHandler) List(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	serviceTypes, err := h.catalogService.List(c.Request.Context(), shopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service types retrieved successfully", serviceTypes)
}
