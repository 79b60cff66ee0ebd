package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func TestOpenShift(t *testing.T) {
	env := newTestEnv()

	shift := env.openShift(t)
	if shift.Status != enum.ShiftStatusOpen {
		t.Errorf("status = %v, want open", shift.Status)
	}
	if shift.RegisterID != env.registerID {
		t.Errorf("register = %s, want %s", shift.RegisterID, env.registerID)
	}
	if shift.OpenedAt.IsZero() {
		t.Error("opened at not set")
	}
}

func TestOpenShiftUnknownRegister(t *testing.T) {
	env := newTestEnv()

	_, err := env.shifts.Open(context.Background(), uuid.New(), env.cashierID)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestOpenShiftRegisterAlreadyBusy(t *testing.T) {
	env := newTestEnv()
	env.openShift(t)

	_, err := env.shifts.Open(context.Background(), env.registerID, uuid.New())
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestOpenShiftCashierAlreadyBusy(t *testing.T) {
	env := newTestEnv()
	env.openShift(t)

	other := &entity.CashRegister{
		ID:     uuid.New(),
		ShopID: env.shopID,
		Name:   "Register 2",
		Status: enum.RegisterStatusActive,
	}
	env.store.mu.Lock()
	env.store.registers[other.ID] = other
	env.store.mu.Unlock()

	_, err := env.shifts.Open(context.Background(), other.ID, env.cashierID)
	if !apperror.IsKind(err, apperror.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestOpenShiftOnMaintenanceRegister(t *testing.T) {
	env := newTestEnv()

	env.store.mu.Lock()
	env.store.registers[env.registerID].Status = enum.RegisterStatusMaintenance
	env.store.mu.Unlock()

	_, err := env.shifts.Open(context.Background(), env.registerID, env.cashierID)
	if !apperror.IsKind(err, apperror.KindState) {
		t.Fatalf("err = %v, want state error", err)
	}
}

func TestCloseShiftFreezesTotals(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	shift := env.openShift(t)

	order := env.createOrder(t, shift.ID, []uuid.UUID{uuid.New()})
	if _, _, err := env.orders.Complete(ctx, &CompleteOrderInput{
		OrderID:         order.ID,
		PaymentMethodID: env.cashID,
		FinalPrice:      order.FinalPrice,
		Actor:           env.cashierID,
	}); err != nil {
		t.Fatalf("complete order failed: %v", err)
	}

	closed, err := env.shifts.Close(ctx, shift.ID, "end of day")
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Status != enum.ShiftStatusClosed {
		t.Errorf("status = %v, want closed", closed.Status)
	}
	if closed.ClosedAt == nil {
		t.Error("closed at not set")
	}
	if closed.Comment != "end of day" {
		t.Errorf("comment = %q", closed.Comment)
	}
	if !closed.TotalSales.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total sales = %s, want 1000", closed.TotalSales)
	}
	if !closed.TotalCash.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total cash = %s, want 1000", closed.TotalCash)
	}
	if !closed.TotalNonCash.IsZero() {
		t.Errorf("total non-cash = %s, want 0", closed.TotalNonCash)
	}
}

func TestCloseShiftIsIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	shift := env.openShift(t)

	first, err := env.shifts.Close(ctx, shift.ID, "done")
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second, err := env.shifts.Close(ctx, shift.ID, "retry comment must not stick")
	if err != nil {
		t.Fatalf("repeated close failed: %v", err)
	}
	if second.Status != enum.ShiftStatusClosed {
		t.Errorf("status = %v, want closed", second.Status)
	}
	if second.Comment != first.Comment {
		t.Errorf("comment = %q, want frozen %q", second.Comment, first.Comment)
	}
	if !second.ClosedAt.Equal(*first.ClosedAt) {
		t.Error("repeated close moved the closing timestamp")
	}
}

func TestPauseAndResume(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	shift := env.openShift(t)

	paused, err := env.shifts.Pause(ctx, shift.ID)
	if err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if paused.Status != enum.ShiftStatusPaused {
		t.Errorf("status = %v, want paused", paused.Status)
	}

	// Pausing twice is a state error.
	if _, err := env.shifts.Pause(ctx, shift.ID); !apperror.IsKind(err, apperror.KindState) {
		t.Fatalf("second pause err = %v, want state error", err)
	}

	resumed, err := env.shifts.Resume(ctx, shift.ID)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if resumed.Status != enum.ShiftStatusOpen {
		t.Errorf("status = %v, want open", resumed.Status)
	}
}

func TestResumeRequiresPausedShift(t *testing.T) {
	env := newTestEnv()
	shift := env.openShift(t)

	_, err := env.shifts.Resume(context.Background(), shift.ID)
	if !apperror.IsKind(err, apperror.KindState) {
		t.Fatalf("err = %v, want state error", err)
	}
}

func TestCheckUnclosed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	report, err := env.shifts.CheckUnclosed(ctx, env.shopID, env.cashierID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if report.HasUnclosed {
		t.Fatal("no shift yet, report should be clean")
	}

	shift := env.openShift(t)

	report, err = env.shifts.CheckUnclosed(ctx, env.shopID, env.cashierID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !report.HasUnclosed {
		t.Fatal("open shift not reported")
	}
	if report.ShiftID == nil || *report.ShiftID != shift.ID {
		t.Errorf("shift id = %v, want %s", report.ShiftID, shift.ID)
	}

	// A paused shift still counts as unclosed.
	if _, err := env.shifts.Pause(ctx, shift.ID); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	report, err = env.shifts.CheckUnclosed(ctx, env.shopID, env.cashierID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !report.HasUnclosed {
		t.Fatal("paused shift not reported")
	}

	if _, err := env.shifts.Close(ctx, shift.ID, ""); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	report, err = env.shifts.CheckUnclosed(ctx, env.shopID, env.cashierID)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if report.HasUnclosed {
		t.Fatal("closed shift still reported as unclosed")
	}
}

func TestGetClosedShiftReturnsFrozenTotals(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	shift := env.openShift(t)

	order := env.createOrder(t, shift.ID, []uuid.UUID{uuid.New()})
	if _, _, err := env.orders.Complete(ctx, &CompleteOrderInput{
		OrderID:         order.ID,
		PaymentMethodID: env.cardID,
		FinalPrice:      order.FinalPrice,
		Actor:           env.cashierID,
	}); err != nil {
		t.Fatalf("complete order failed: %v", err)
	}
	if _, err := env.shifts.Close(ctx, shift.ID, ""); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	detail, err := env.shifts.Get(ctx, shift.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !detail.Totals.TotalSales.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total sales = %s, want 1000", detail.Totals.TotalSales)
	}
	if !detail.Totals.TotalNonCash.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total non-cash = %s, want 1000", detail.Totals.TotalNonCash)
	}
	if !detail.Totals.TotalCash.IsZero() {
		t.Errorf("total cash = %s, want 0", detail.Totals.TotalCash)
	}
}

// staleShiftReads serves a fixed snapshot from point reads while every write
// still goes to the backing store. It reproduces a transition whose read
// happened just before a concurrent close committed.
type staleShiftReads struct {
	repository.ShiftRepository
	snapshot entity.Shift
}

func (r *staleShiftReads) GetByID(context.Context, uuid.UUID) (*entity.Shift, error) {
	copied := r.snapshot
	return &copied, nil
}

func TestPauseRejectedWhenShiftClosesUnderneath(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	shift := env.openShift(t)

	if _, err := env.shifts.Close(ctx, shift.ID, "done"); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// The stale repo still reports the shift as open, so the pause passes the
	// read-side check and must be stopped by the guarded status write.
	stale := &staleShiftReads{
		ShiftRepository: &fakeShiftRepo{s: env.store},
		snapshot:        *shift,
	}
	shifts := NewShiftService(stale, &fakeTransactionRepo{s: env.store})

	if _, err := shifts.Pause(ctx, shift.ID); !apperror.IsKind(err, apperror.KindState) {
		t.Fatalf("pause err = %v, want state error", err)
	}

	env.store.mu.Lock()
	status := env.store.shifts[shift.ID].Status
	env.store.mu.Unlock()
	if status != enum.ShiftStatusClosed {
		t.Errorf("status = %v, closed shift was revived", status)
	}
}
