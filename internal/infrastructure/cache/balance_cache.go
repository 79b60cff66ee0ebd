package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCache serves payment method balances on the read path. It is an
// optimization only: every mutating decision re-reads the authoritative row
// under lock, and reads reconcile against the transaction log.
type BalanceCache interface {
	Get(ctx context.Context, methodID uuid.UUID) (decimal.Decimal, bool, error)
	Set(ctx context.Context, methodID uuid.UUID, balance decimal.Decimal, ttl time.Duration) error
	Invalidate(ctx context.Context, methodID uuid.UUID) error
}

// NoopBalanceCache is used when Redis is not configured.
type NoopBalanceCache struct{}

func (NoopBalanceCache) Get(_ context.Context, _ uuid.UUID) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (NoopBalanceCache) Set(_ context.Context, _ uuid.UUID, _ decimal.Decimal, _ time.Duration) error {
	return nil
}

func (NoopBalanceCache) Invalidate(_ context.Context, _ uuid.UUID) error {
	return nil
}
