package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/pkg/apperror"
)

// PaymentMethodService handles the payment method registry
type PaymentMethodService struct {
	methodRepo   repository.PaymentMethodRepository
	registerRepo repository.RegisterRepository
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(
	methodRepo repository.PaymentMethodRepository,
	registerRepo repository.RegisterRepository,
) *PaymentMethodService {
	return &PaymentMethodService{
		methodRepo:   methodRepo,
		registerRepo: registerRepo,
	}
}

// BindInput represents a payment method binding request
type BindInput struct {
	Source enum.PaymentSource
	Name   string
	Code   string
	Scope  enum.PaymentScope
}

var systemMethodNames = map[enum.PaymentSource]struct {
	name string
	code string
}{
	enum.PaymentSourceCash: {"Cash", "cash"},
	enum.PaymentSourceCard: {"Card", "card"},
	enum.PaymentSourceQR:   {"QR", "qr"},
}

// Bind registers a payment method on a register. For SHARED scope the method
// resolves to a single warehouse-level record reused across registers; for
// DEDICATED scope a register-scoped record with its own balance is created.
func (s *PaymentMethodService) Bind(ctx context.Context, registerID uuid.UUID, input *BindInput) (*entity.PaymentMethod, error) {
	register, err := s.registerRepo.GetByID(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}

	name, code := input.Name, input.Code
	if input.Source.IsSystem() {
		def := systemMethodNames[input.Source]
		name, code = def.name, def.code
	} else if name == "" || code == "" {
		return nil, apperror.NewInvalidInputError("Custom payment methods require a name and a code")
	}

	// Resolve an existing record for both scopes before creating one, so a
	// repeated bind surfaces as a binding conflict instead of minting an
	// orphan method row.
	var method *entity.PaymentMethod
	switch input.Scope {
	case enum.PaymentScopeShared:
		method, err = s.methodRepo.FindShared(ctx, register.ShopID, input.Source, code)
	case enum.PaymentScopeDedicated:
		method, err = s.methodRepo.FindDedicated(ctx, registerID, input.Source, code)
	}
	if err != nil {
		return nil, err
	}

	if method == nil {
		method = &entity.PaymentMethod{
			ShopID: register.ShopID,
			Source: input.Source,
			Name:   name,
			Code:   code,
			Scope:  input.Scope,
			Status: enum.MethodStatusActive,
		}
		if input.Scope == enum.PaymentScopeDedicated {
			method.RegisterID = &register.ID
		}
		if err := s.methodRepo.Create(ctx, method); err != nil {
			return nil, err
		}
	}

	existing, err := s.methodRepo.GetBinding(ctx, registerID, method.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Payment method already bound to this register")
	}

	binding := &entity.RegisterPaymentMethod{
		RegisterID:      registerID,
		PaymentMethodID: method.ID,
		IsActive:        true,
	}
	if err := s.methodRepo.Bind(ctx, binding); err != nil {
		return nil, err
	}

	return method, nil
}

// ListMethods returns the register's methods. With activeOnly, inactive and
// disabled methods are hidden from sale-time selection but remain available
// for historical transaction display.
func (s *PaymentMethodService) ListMethods(ctx context.Context, registerID uuid.UUID, activeOnly bool) ([]entity.PaymentMethod, error) {
	register, err := s.registerRepo.GetByID(ctx, registerID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewNotFoundError("Register")
	}
	return s.methodRepo.ListByRegister(ctx, registerID, activeOnly)
}

// ActiveSetItem toggles one binding of the register's active set.
type ActiveSetItem struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id"`
	IsActive        bool      `json:"is_active"`
}

// UpdateActiveSet enables or disables bindings on a register.
func (s *PaymentMethodService) UpdateActiveSet(ctx context.Context, registerID uuid.UUID, items []ActiveSetItem) error {
	register, err := s.registerRepo.GetByID(ctx, registerID)
	if err != nil {
		return err
	}
	if register == nil {
		return apperror.NewNotFoundError("Register")
	}

	for _, item := range items {
		binding, err := s.methodRepo.GetBinding(ctx, registerID, item.PaymentMethodID)
		if err != nil {
			return err
		}
		if binding == nil {
			return apperror.NewNotFoundError("Payment method binding")
		}
		if err := s.methodRepo.SetBindingActive(ctx, registerID, item.PaymentMethodID, item.IsActive); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus activates or deactivates a payment method shop-wide.
func (s *PaymentMethodService) SetStatus(ctx context.Context, methodID uuid.UUID, status enum.MethodStatus) error {
	method, err := s.methodRepo.GetByID(ctx, methodID)
	if err != nil {
		return err
	}
	if method == nil {
		return apperror.NewNotFoundError("Payment method")
	}
	return s.methodRepo.UpdateStatus(ctx, methodID, status)
}
