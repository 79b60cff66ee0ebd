package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/application/service"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/presentation/http/dto/response"
)

// RegisterHandler handles cash register HTTP requests
type RegisterHandler struct {
	registerService *service.RegisterService
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(registerService *service.RegisterService) *RegisterHandler {
	return &RegisterHandler{registerService: registerService}
}

// Create handles creating a register in a shop
func (h *RegisterHandler) Create(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
		Type int    `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	register, err := h.registerService.Create(c.Request.Context(), shopID, req.Name, enum.RegisterType(req.Type))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Register created successfully", register)
}

// List handles listing a shop's registers
func (h *RegisterHandler) List(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("shop_id"))
	if err != nil {
		response.BadRequest(c, "Invalid shop ID")
		return
	}

	registers, err := h.registerService.List(c.Request.Context(), shopID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Registers retrieved successfully", registers)
}

// Get handles getting a single register
func (h *RegisterHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	register, err := h.registerService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register retrieved successfully", register)
}

// UpdateStatus handles register status transitions
func (h *RegisterHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid register ID")
		return
	}

	var req struct {
		Status int `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	register, err := h.registerService.SetStatus(c.Request.Context(), id, enum.RegisterStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Register status updated successfully", register)
}
