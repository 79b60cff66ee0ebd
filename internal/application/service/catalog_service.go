package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CatalogService exposes the service type price list orders are created from.
type CatalogService struct {
	serviceTypeRepo repository.ServiceTypeRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceTypeRepo repository.ServiceTypeRepository) *CatalogService {
	return &CatalogService{serviceTypeRepo: serviceTypeRepo}
}

// Create adds a service type to the shop's price list.
func (s *CatalogService) Create(ctx context.Context, shopID uuid.UUID, name string, price decimal.Decimal) (*entity.ServiceType, error) {
	if name == "" {
		return nil, apperror.NewInvalidInputError("Service type name is required")
	}
	if !price.IsPositive() {
		return nil, apperror.NewInvalidInputError("Service type price must be positive")
	}
	serviceType := &entity.ServiceType{
		ShopID: shopID,
		Name:   name,
		Price:  price.Round(2),
		Active: true,
	}
	if err := s.serviceTypeRepo.Create(ctx, serviceType); err != nil {
		return nil, err
	}
	return serviceType, nil
}

// List returns the shop's price list.
func (s *CatalogService) List(ctx context.Context, shopID uuid.UUID) ([]entity.ServiceType, error) {
	return s.serviceTypeRepo.ListByShop(ctx, shopID)
}
