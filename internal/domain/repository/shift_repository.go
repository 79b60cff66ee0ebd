package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
)

// ShiftRepository defines the interface for shift data operations
type ShiftRepository interface {
	// Open runs the three eligibility checks (register not in maintenance,
	// no open shift on the register, no open shift for the cashier anywhere)
	// and the insert as one serialized unit, so two concurrent opens for the
	// same register or cashier cannot both succeed. Returns the sentinel
	// errors from this package on conflict.
	Open(ctx context.Context, shift *entity.Shift) error

	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	GetOpenByRegister(ctx context.Context, registerID uuid.UUID) (*entity.Shift, error)
	GetOpenByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.Shift, error)

	// FindUnclosed looks for an open or paused shift of the cashier on any
	// register of the shop. Diagnostic read, no locks.
	FindUnclosed(ctx context.Context, shopID, cashierID uuid.UUID) (*entity.Shift, error)

	// UpdateStatus moves the shift from one status to another as a single
	// conditional write. Returns ErrShiftStateChanged when the shift is no
	// longer in the expected state, so a stale read cannot revive a closed
	// shift.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.ShiftStatus) error

	// Close freezes the shift: aggregates are computed and persisted in the
	// same transaction that holds the shift row lock, so a sale committing
	// concurrently lands either fully inside or fully outside the snapshot.
	// Closing an already closed shift returns the frozen record unchanged.
	Close(ctx context.Context, shiftID uuid.UUID, comment string) (*entity.Shift, error)
}
