package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/internal/infrastructure/cache"
	"github.com/medetbek/servicepos-api/pkg/apperror"
	"github.com/medetbek/servicepos-api/pkg/pagination"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// balanceCacheTTL bounds staleness of the read-path cache.
const balanceCacheTTL = 30 * time.Second

// LedgerService handles the append-only payment method ledger
type LedgerService struct {
	transactionRepo repository.TransactionRepository
	methodRepo      repository.PaymentMethodRepository
	balanceCache    cache.BalanceCache
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	transactionRepo repository.TransactionRepository,
	methodRepo repository.PaymentMethodRepository,
	balanceCache cache.BalanceCache,
) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		methodRepo:      methodRepo,
		balanceCache:    balanceCache,
	}
}

// ManualPostInput represents a cashier-initiated ledger operation. Amount is
// the user-supplied magnitude; the sign is applied internally per type.
type ManualPostInput struct {
	PaymentMethodID uuid.UUID
	Amount          decimal.Decimal
	Note            string
	Actor           uuid.UUID
	ShiftID         *uuid.UUID
}

// Deposit posts a positive DEPOSIT entry.
func (s *LedgerService) Deposit(ctx context.Context, input *ManualPostInput) (*entity.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidInputError("Deposit amount must be greater than zero")
	}
	return s.post(ctx, &repository.PostInput{
		PaymentMethodID: input.PaymentMethodID,
		Type:            enum.TransactionTypeDeposit,
		Amount:          input.Amount,
		Note:            input.Note,
		CreatedBy:       input.Actor,
		ShiftID:         input.ShiftID,
	})
}

// Withdraw posts a negative WITHDRAWAL entry. Cash methods never overdraft;
// the sufficiency check runs inside the posting transaction under the row
// lock, not against any cached value.
func (s *LedgerService) Withdraw(ctx context.Context, input *ManualPostInput) (*entity.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidInputError("Withdrawal amount must be greater than zero")
	}

	method, err := s.methodRepo.GetByID(ctx, input.PaymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}

	return s.post(ctx, &repository.PostInput{
		PaymentMethodID:  input.PaymentMethodID,
		Type:             enum.TransactionTypeWithdrawal,
		Amount:           input.Amount.Neg(),
		Note:             input.Note,
		CreatedBy:        input.Actor,
		ShiftID:          input.ShiftID,
		DisallowNegative: method.IsCash(),
	})
}

// PostPurchase records supplies bought from the till (negative entry).
func (s *LedgerService) PostPurchase(ctx context.Context, input *ManualPostInput) (*entity.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidInputError("Purchase amount must be greater than zero")
	}
	return s.post(ctx, &repository.PostInput{
		PaymentMethodID: input.PaymentMethodID,
		Type:            enum.TransactionTypePurchase,
		Amount:          input.Amount.Neg(),
		Note:            input.Note,
		CreatedBy:       input.Actor,
		ShiftID:         input.ShiftID,
	})
}

// PostAdjustment records a signed correction entry. Corrections never edit
// existing rows.
func (s *LedgerService) PostAdjustment(ctx context.Context, input *ManualPostInput) (*entity.Transaction, error) {
	if input.Amount.IsZero() {
		return nil, apperror.NewInvalidInputError("Adjustment amount must be non-zero")
	}
	return s.post(ctx, &repository.PostInput{
		PaymentMethodID: input.PaymentMethodID,
		Type:            enum.TransactionTypeAdjustment,
		Amount:          input.Amount,
		Note:            input.Note,
		CreatedBy:       input.Actor,
		ShiftID:         input.ShiftID,
	})
}

func (s *LedgerService) post(ctx context.Context, input *repository.PostInput) (*entity.Transaction, error) {
	entry, err := s.transactionRepo.Post(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, apperror.NewInsufficientFundsError("Withdrawal exceeds current balance")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Payment method")
		}
		return nil, err
	}

	if err := s.balanceCache.Set(ctx, input.PaymentMethodID, entry.BalanceAfter, balanceCacheTTL); err != nil {
		log.Warn().Err(err).Str("method_id", input.PaymentMethodID.String()).Msg("balance cache update failed")
	}

	return entry, nil
}

// GetBalance returns the reconciled balance: the transaction log is replayed
// and compared against the cached projection; on drift the cache is repaired
// and the derived value wins.
func (s *LedgerService) GetBalance(ctx context.Context, methodID uuid.UUID) (decimal.Decimal, error) {
	method, err := s.methodRepo.GetByID(ctx, methodID)
	if err != nil {
		return decimal.Zero, err
	}
	if method == nil {
		return decimal.Zero, apperror.NewNotFoundError("Payment method")
	}

	derived, err := s.transactionRepo.SumAmounts(ctx, methodID)
	if err != nil {
		return decimal.Zero, err
	}

	if !derived.Equal(method.CurrentBalance) {
		log.Warn().
			Str("method_id", methodID.String()).
			Str("cached", method.CurrentBalance.String()).
			Str("derived", derived.String()).
			Msg("balance drift detected, reconciling from transaction log")
		// The repository re-derives under the method row lock, so an entry
		// posted since the sum above is included instead of clobbered.
		derived, err = s.methodRepo.ReconcileBalance(ctx, methodID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return decimal.Zero, apperror.NewNotFoundError("Payment method")
			}
			return decimal.Zero, err
		}
	}

	if err := s.balanceCache.Set(ctx, methodID, derived, balanceCacheTTL); err != nil {
		log.Warn().Err(err).Str("method_id", methodID.String()).Msg("balance cache update failed")
	}

	return derived, nil
}

// CachedBalance serves the read path: cache hit if fresh, otherwise the
// reconciled value. Never used for mutating decisions.
func (s *LedgerService) CachedBalance(ctx context.Context, methodID uuid.UUID) (decimal.Decimal, error) {
	if balance, ok, err := s.balanceCache.Get(ctx, methodID); err == nil && ok {
		return balance, nil
	}
	return s.GetBalance(ctx, methodID)
}

// ListTransactions returns the method's history newest first, keyset-paginated.
func (s *LedgerService) ListTransactions(ctx context.Context, methodID uuid.UUID, params *repository.TransactionFilterParams) (*pagination.CursorPaginatedResult[entity.Transaction], error) {
	method, err := s.methodRepo.GetByID(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}

	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()

	transactions, err := s.transactionRepo.List(ctx, methodID, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""
	cursorPag, items := pagination.NewCursorPagination(transactions, params.Cursor.Limit,
		func(t entity.Transaction) string { return t.ID.String() },
		func(t entity.Transaction) time.Time { return t.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}
