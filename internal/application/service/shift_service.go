package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/pkg/apperror"
	"github.com/rs/zerolog/log"
)

// ShiftService handles shift lifecycle business logic
type ShiftService struct {
	shiftRepo       repository.ShiftRepository
	transactionRepo repository.TransactionRepository
}

// NewShiftService creates a new shift service
func NewShiftService(
	shiftRepo repository.ShiftRepository,
	transactionRepo repository.TransactionRepository,
) *ShiftService {
	return &ShiftService{
		shiftRepo:       shiftRepo,
		transactionRepo: transactionRepo,
	}
}

// Open starts a shift for the cashier on the given register. The repository
// serializes the eligibility checks against concurrent opens.
func (s *ShiftService) Open(ctx context.Context, registerID, cashierID uuid.UUID) (*entity.Shift, error) {
	shift := &entity.Shift{
		RegisterID: registerID,
		CashierID:  cashierID,
		Status:     enum.ShiftStatusOpen,
		OpenedAt:   time.Now().UTC(),
	}

	if err := s.shiftRepo.Open(ctx, shift); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NewNotFoundError("Register")
		case errors.Is(err, repository.ErrRegisterUnavailable):
			return nil, apperror.NewStateError("Register is not available for shifts")
		case errors.Is(err, repository.ErrOpenShiftOnRegister):
			return nil, apperror.NewConflictError("Register already has an open shift")
		case errors.Is(err, repository.ErrCashierHasOpenShift):
			return nil, apperror.NewConflictError("Cashier already has an open shift")
		default:
			return nil, err
		}
	}

	log.Info().
		Str("shift_id", shift.ID.String()).
		Str("register_id", registerID.String()).
		Str("cashier_id", cashierID.String()).
		Msg("Shift opened")

	return shift, nil
}

// Close ends the shift. The repository recomputes the aggregate totals and
// freezes them on the shift row inside one transaction, so no sale can land
// between the aggregation and the snapshot. Closing an already closed shift
// returns the frozen snapshot, so a retried close never fails.
func (s *ShiftService) Close(ctx context.Context, shiftID uuid.UUID, comment string) (*entity.Shift, error) {
	shift, err := s.shiftRepo.Close(ctx, shiftID, comment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Shift")
		}
		return nil, err
	}

	log.Info().
		Str("shift_id", shift.ID.String()).
		Str("total_sales", shift.TotalSales.String()).
		Msg("Shift closed")

	return shift, nil
}

// Pause suspends an open shift without ending it.
func (s *ShiftService) Pause(ctx context.Context, shiftID uuid.UUID) (*entity.Shift, error) {
	return s.transition(ctx, shiftID, enum.ShiftStatusOpen, enum.ShiftStatusPaused, "Only an open shift can be paused")
}

// Resume reopens a paused shift.
func (s *ShiftService) Resume(ctx context.Context, shiftID uuid.UUID) (*entity.Shift, error) {
	return s.transition(ctx, shiftID, enum.ShiftStatusPaused, enum.ShiftStatusOpen, "Only a paused shift can be resumed")
}

func (s *ShiftService) transition(ctx context.Context, shiftID uuid.UUID, from, to enum.ShiftStatus, msg string) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	if shift.Status != from {
		return nil, apperror.NewStateError(msg)
	}
	// The repository guards the write on the expected status, closing the
	// window between this read and the update.
	if err := s.shiftRepo.UpdateStatus(ctx, shiftID, from, to); err != nil {
		if errors.Is(err, repository.ErrShiftStateChanged) {
			return nil, apperror.NewStateError(msg)
		}
		return nil, err
	}
	shift.Status = to
	return shift, nil
}

// CheckUnclosed reports whether the cashier left a shift open or paused on
// any register of the shop. Used by clients at login to prompt for cleanup.
func (s *ShiftService) CheckUnclosed(ctx context.Context, shopID, cashierID uuid.UUID) (*entity.UnclosedShift, error) {
	shift, err := s.shiftRepo.FindUnclosed(ctx, shopID, cashierID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return &entity.UnclosedShift{HasUnclosed: false}, nil
	}
	return &entity.UnclosedShift{
		HasUnclosed: true,
		ShiftID:     &shift.ID,
		RegisterID:  &shift.RegisterID,
		OpenedAt:    &shift.OpenedAt,
	}, nil
}

// ShiftDetail pairs a shift with its totals. For a working shift the totals
// are live aggregates; for a closed shift they are the frozen snapshot.
type ShiftDetail struct {
	Shift  *entity.Shift       `json:"shift"`
	Totals *entity.ShiftTotals `json:"totals"`
}

// Get returns the shift with its totals.
func (s *ShiftService) Get(ctx context.Context, shiftID uuid.UUID) (*ShiftDetail, error) {
	shift, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}

	if shift.Status == enum.ShiftStatusClosed {
		return &ShiftDetail{
			Shift: shift,
			Totals: &entity.ShiftTotals{
				TotalSales:   shift.TotalSales,
				TotalCash:    shift.TotalCash,
				TotalNonCash: shift.TotalNonCash,
				Returns:      shift.Returns,
			},
		}, nil
	}

	totals, err := s.transactionRepo.SumShiftTotals(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	return &ShiftDetail{Shift: shift, Totals: totals}, nil
}

// GetOpenByRegister returns the current working shift on a register, if any.
func (s *ShiftService) GetOpenByRegister(ctx context.Context, registerID uuid.UUID) (*entity.Shift, error) {
	return s.shiftRepo.GetOpenByRegister(ctx, registerID)
}
