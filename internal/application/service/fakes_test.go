package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/medetbek/servicepos-api/internal/domain/entity"
	"github.com/medetbek/servicepos-api/internal/domain/enum"
	"github.com/medetbek/servicepos-api/internal/domain/repository"
	"github.com/medetbek/servicepos-api/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
)

// memStore is a serialized in-memory backend shared by the fake repositories.
// The single mutex stands in for the row locks the real repositories take, so
// the concurrency tests exercise the same serialization contract.
type memStore struct {
	mu    sync.Mutex
	clock time.Time

	registers    map[uuid.UUID]*entity.CashRegister
	cashiers     map[uuid.UUID]*entity.Cashier
	methods      map[uuid.UUID]*entity.PaymentMethod
	bindings     []*entity.RegisterPaymentMethod
	entries      []entity.Transaction
	shifts       map[uuid.UUID]*entity.Shift
	orders       map[uuid.UUID]*entity.ServiceOrder
	orderStaff   map[uuid.UUID][]uuid.UUID
	serviceTypes map[uuid.UUID]*entity.ServiceType
}

func newMemStore() *memStore {
	return &memStore{
		clock:        time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		registers:    make(map[uuid.UUID]*entity.CashRegister),
		cashiers:     make(map[uuid.UUID]*entity.Cashier),
		methods:      make(map[uuid.UUID]*entity.PaymentMethod),
		shifts:       make(map[uuid.UUID]*entity.Shift),
		orders:       make(map[uuid.UUID]*entity.ServiceOrder),
		orderStaff:   make(map[uuid.UUID][]uuid.UUID),
		serviceTypes: make(map[uuid.UUID]*entity.ServiceType),
	}
}

// tick advances the store clock so entry timestamps are strictly increasing.
// Caller must hold s.mu.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// postLocked appends one ledger entry. Caller must hold s.mu.
func (s *memStore) postLocked(input *repository.PostInput) (*entity.Transaction, error) {
	method, ok := s.methods[input.PaymentMethodID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	before := method.CurrentBalance
	after := before.Add(input.Amount)
	if input.DisallowNegative && after.IsNegative() {
		return nil, repository.ErrInsufficientBalance
	}

	entry := entity.Transaction{
		ID:              uuid.New(),
		PaymentMethodID: method.ID,
		Type:            input.Type,
		Amount:          input.Amount,
		BalanceBefore:   before,
		BalanceAfter:    after,
		Note:            input.Note,
		ShiftID:         input.ShiftID,
		OrderID:         input.OrderID,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       s.tick(),
	}
	s.entries = append(s.entries, entry)
	method.CurrentBalance = after
	return &entry, nil
}

type fakeTransactionRepo struct{ s *memStore }

func (r *fakeTransactionRepo) Post(_ context.Context, input *repository.PostInput) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.postLocked(input)
}

func (r *fakeTransactionRepo) SumAmounts(_ context.Context, paymentMethodID uuid.UUID) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, e := range r.s.entries {
		if e.PaymentMethodID == paymentMethodID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, paymentMethodID uuid.UUID, params *repository.TransactionFilterParams) ([]entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []entity.Transaction
	for _, e := range r.s.entries {
		if e.PaymentMethodID != paymentMethodID {
			continue
		}
		if params.StartDate != nil && e.CreatedAt.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && e.CreatedAt.After(*params.EndDate) {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID.String() > matched[j].ID.String()
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	params.Cursor.Validate()
	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		for i, e := range matched {
			if e.ID.String() == cursor.ID {
				matched = matched[i+1:]
				break
			}
		}
	}

	if len(matched) > params.Cursor.Limit+1 {
		matched = matched[:params.Cursor.Limit+1]
	}
	return matched, nil
}

func (r *fakeTransactionRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []entity.Transaction
	for _, e := range r.s.entries {
		if e.OrderID != nil && *e.OrderID == orderID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

func (r *fakeTransactionRepo) SumShiftTotals(_ context.Context, shiftID uuid.UUID) (*entity.ShiftTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sumShiftTotalsLocked(shiftID), nil
}

// sumShiftTotalsLocked aggregates a shift's sale and refund entries. Caller
// must hold s.mu, mirroring how the real aggregation runs inside the closing
// transaction.
func (s *memStore) sumShiftTotalsLocked(shiftID uuid.UUID) *entity.ShiftTotals {
	totals := &entity.ShiftTotals{
		TotalSales:   decimal.Zero,
		TotalCash:    decimal.Zero,
		TotalNonCash: decimal.Zero,
		Returns:      decimal.Zero,
	}
	for _, e := range s.entries {
		if e.ShiftID == nil || *e.ShiftID != shiftID {
			continue
		}
		switch e.Type {
		case enum.TransactionTypeSale:
			totals.TotalSales = totals.TotalSales.Add(e.Amount)
		case enum.TransactionTypeRefund:
			totals.Returns = totals.Returns.Sub(e.Amount)
		default:
			continue
		}
		method := s.methods[e.PaymentMethodID]
		if method != nil && method.Source == enum.PaymentSourceCash {
			totals.TotalCash = totals.TotalCash.Add(e.Amount)
		} else {
			totals.TotalNonCash = totals.TotalNonCash.Add(e.Amount)
		}
	}
	return totals
}

type fakeMethodRepo struct{ s *memStore }

func (r *fakeMethodRepo) Create(_ context.Context, method *entity.PaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if method.ID == uuid.Nil {
		method.ID = uuid.New()
	}
	r.s.methods[method.ID] = method
	return nil
}

func (r *fakeMethodRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	method, ok := r.s.methods[id]
	if !ok {
		return nil, nil
	}
	copied := *method
	return &copied, nil
}

func (r *fakeMethodRepo) FindShared(_ context.Context, shopID uuid.UUID, source enum.PaymentSource, code string) (*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.methods {
		if m.ShopID != shopID || m.Scope != enum.PaymentScopeShared || m.Source != source {
			continue
		}
		if source == enum.PaymentSourceCustom && m.Code != code {
			continue
		}
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeMethodRepo) FindDedicated(_ context.Context, registerID uuid.UUID, source enum.PaymentSource, code string) (*entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.methods {
		if m.RegisterID == nil || *m.RegisterID != registerID || m.Scope != enum.PaymentScopeDedicated || m.Source != source {
			continue
		}
		if source == enum.PaymentSourceCustom && m.Code != code {
			continue
		}
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeMethodRepo) ListByRegister(_ context.Context, registerID uuid.UUID, activeOnly bool) ([]entity.PaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var methods []entity.PaymentMethod
	for _, b := range r.s.bindings {
		if b.RegisterID != registerID {
			continue
		}
		method := r.s.methods[b.PaymentMethodID]
		if method == nil {
			continue
		}
		if activeOnly && (!b.IsActive || method.Status != enum.MethodStatusActive) {
			continue
		}
		methods = append(methods, *method)
	}
	return methods, nil
}

func (r *fakeMethodRepo) CountActiveByRegister(_ context.Context, registerID uuid.UUID) (int64, error) {
	methods, _ := r.ListByRegister(context.Background(), registerID, true)
	return int64(len(methods)), nil
}

func (r *fakeMethodRepo) Bind(_ context.Context, binding *entity.RegisterPaymentMethod) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if binding.ID == uuid.Nil {
		binding.ID = uuid.New()
	}
	r.s.bindings = append(r.s.bindings, binding)
	return nil
}

func (r *fakeMethodRepo) GetBinding(_ context.Context, registerID, methodID uuid.UUID) (*entity.RegisterPaymentMethod, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bindings {
		if b.RegisterID == registerID && b.PaymentMethodID == methodID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMethodRepo) SetBindingActive(_ context.Context, registerID, methodID uuid.UUID, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bindings {
		if b.RegisterID == registerID && b.PaymentMethodID == methodID {
			b.IsActive = active
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeMethodRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.MethodStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	method, ok := r.s.methods[id]
	if !ok {
		return repository.ErrNotFound
	}
	method.Status = status
	return nil
}

func (r *fakeMethodRepo) ReconcileBalance(_ context.Context, id uuid.UUID) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	method, ok := r.s.methods[id]
	if !ok {
		return decimal.Zero, repository.ErrNotFound
	}
	derived := decimal.Zero
	for _, e := range r.s.entries {
		if e.PaymentMethodID == id {
			derived = derived.Add(e.Amount)
		}
	}
	method.CurrentBalance = derived
	return derived, nil
}

type fakeShiftRepo struct{ s *memStore }

func (r *fakeShiftRepo) Open(_ context.Context, shift *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	register, ok := r.s.registers[shift.RegisterID]
	if !ok {
		return repository.ErrNotFound
	}
	if !register.CanOpenShift() {
		return repository.ErrRegisterUnavailable
	}
	for _, existing := range r.s.shifts {
		if existing.Status.IsTerminal() {
			continue
		}
		if existing.RegisterID == shift.RegisterID {
			return repository.ErrOpenShiftOnRegister
		}
		if existing.CashierID == shift.CashierID {
			return repository.ErrCashierHasOpenShift
		}
	}

	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	copied := *shift
	r.s.shifts[shift.ID] = &copied
	return nil
}

func (r *fakeShiftRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shift, ok := r.s.shifts[id]
	if !ok {
		return nil, nil
	}
	copied := *shift
	return &copied, nil
}

func (r *fakeShiftRepo) GetOpenByRegister(_ context.Context, registerID uuid.UUID) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, shift := range r.s.shifts {
		if shift.RegisterID == registerID && !shift.Status.IsTerminal() {
			copied := *shift
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) GetOpenByCashier(_ context.Context, cashierID uuid.UUID) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, shift := range r.s.shifts {
		if shift.CashierID == cashierID && !shift.Status.IsTerminal() {
			copied := *shift
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) FindUnclosed(_ context.Context, shopID, cashierID uuid.UUID) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, shift := range r.s.shifts {
		if shift.Status.IsTerminal() || shift.CashierID != cashierID {
			continue
		}
		register := r.s.registers[shift.RegisterID]
		if register != nil && register.ShopID == shopID {
			copied := *shift
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to enum.ShiftStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shift, ok := r.s.shifts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if shift.Status != from {
		return repository.ErrShiftStateChanged
	}
	shift.Status = to
	return nil
}

func (r *fakeShiftRepo) Close(_ context.Context, shiftID uuid.UUID, comment string) (*entity.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	shift, ok := r.s.shifts[shiftID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if shift.Status == enum.ShiftStatusClosed {
		copied := *shift
		return &copied, nil
	}

	totals := r.s.sumShiftTotalsLocked(shiftID)
	closedAt := r.s.tick()
	shift.Status = enum.ShiftStatusClosed
	shift.ClosedAt = &closedAt
	shift.TotalSales = totals.TotalSales
	shift.TotalCash = totals.TotalCash
	shift.TotalNonCash = totals.TotalNonCash
	shift.Returns = totals.Returns
	if comment != "" {
		shift.Comment = comment
	}
	copied := *shift
	return &copied, nil
}

type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.ServiceOrder, staffIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	copied := *order
	r.s.orders[order.ID] = &copied
	r.s.orderStaff[order.ID] = append([]uuid.UUID(nil), staffIDs...)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ServiceOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.ServiceOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	*stored = *order
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, shopID uuid.UUID, params *repository.OrderFilterParams) ([]entity.ServiceOrder, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []entity.ServiceOrder
	for _, o := range r.s.orders {
		if o.ShopID != shopID {
			continue
		}
		if params.ShiftID != nil && o.ShiftID != *params.ShiftID {
			continue
		}
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		matched = append(matched, *o)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	offset := params.Pagination.Offset()
	if offset >= len(matched) {
		return []entity.ServiceOrder{}, total, nil
	}
	end := offset + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeOrderRepo) AttachStaff(_ context.Context, orderID uuid.UUID, staffIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[orderID]; !ok {
		return repository.ErrNotFound
	}
	r.s.orderStaff[orderID] = append(r.s.orderStaff[orderID], staffIDs...)
	return nil
}

func (r *fakeOrderRepo) CompleteWithSale(_ context.Context, order *entity.ServiceOrder, sale *repository.PostInput) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[order.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	shift, ok := r.s.shifts[order.ShiftID]
	if !ok || !shift.Status.IsWorking() {
		return nil, repository.ErrShiftNotOpen
	}
	entry, err := r.s.postLocked(sale)
	if err != nil {
		return nil, err
	}
	*stored = *order
	return entry, nil
}

func (r *fakeOrderRepo) Cancel(_ context.Context, order *entity.ServiceOrder, actor uuid.UUID) ([]entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[order.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	var refunds []entity.Transaction
	for _, e := range r.s.entries {
		if e.OrderID == nil || *e.OrderID != order.ID || e.Type != enum.TransactionTypeSale {
			continue
		}
		refund, err := r.s.postLocked(&repository.PostInput{
			PaymentMethodID: e.PaymentMethodID,
			Type:            enum.TransactionTypeRefund,
			Amount:          e.Amount.Neg(),
			Note:            "Reversal of cancelled order " + order.ID.String(),
			CreatedBy:       actor,
			ShiftID:         e.ShiftID,
			OrderID:         e.OrderID,
		})
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, *refund)
	}
	*stored = *order
	return refunds, nil
}

type fakeRegisterRepo struct{ s *memStore }

func (r *fakeRegisterRepo) Create(_ context.Context, register *entity.CashRegister) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if register.ID == uuid.Nil {
		register.ID = uuid.New()
	}
	copied := *register
	r.s.registers[register.ID] = &copied
	return nil
}

func (r *fakeRegisterRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CashRegister, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	register, ok := r.s.registers[id]
	if !ok {
		return nil, nil
	}
	copied := *register
	return &copied, nil
}

func (r *fakeRegisterRepo) ListByShop(_ context.Context, shopID uuid.UUID) ([]entity.CashRegister, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var registers []entity.CashRegister
	for _, reg := range r.s.registers {
		if reg.ShopID == shopID {
			registers = append(registers, *reg)
		}
	}
	return registers, nil
}

func (r *fakeRegisterRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.RegisterStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	register, ok := r.s.registers[id]
	if !ok {
		return repository.ErrNotFound
	}
	register.Status = status
	return nil
}

type fakeCashierRepo struct{ s *memStore }

func (r *fakeCashierRepo) Create(_ context.Context, cashier *entity.Cashier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cashier.ID == uuid.Nil {
		cashier.ID = uuid.New()
	}
	copied := *cashier
	r.s.cashiers[cashier.ID] = &copied
	return nil
}

func (r *fakeCashierRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Cashier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cashier, ok := r.s.cashiers[id]
	if !ok {
		return nil, nil
	}
	copied := *cashier
	return &copied, nil
}

func (r *fakeCashierRepo) GetByEmail(_ context.Context, email string) (*entity.Cashier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cashier := range r.s.cashiers {
		if cashier.Email == email {
			copied := *cashier
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeServiceTypeRepo struct{ s *memStore }

func (r *fakeServiceTypeRepo) Create(_ context.Context, serviceType *entity.ServiceType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if serviceType.ID == uuid.Nil {
		serviceType.ID = uuid.New()
	}
	copied := *serviceType
	r.s.serviceTypes[serviceType.ID] = &copied
	return nil
}

func (r *fakeServiceTypeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ServiceType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	serviceType, ok := r.s.serviceTypes[id]
	if !ok {
		return nil, nil
	}
	copied := *serviceType
	return &copied, nil
}

func (r *fakeServiceTypeRepo) ListByShop(_ context.Context, shopID uuid.UUID) ([]entity.ServiceType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var serviceTypes []entity.ServiceType
	for _, st := range r.s.serviceTypes {
		if st.ShopID == shopID {
			serviceTypes = append(serviceTypes, *st)
		}
	}
	return serviceTypes, nil
}

// testEnv wires the services over the in-memory fakes with one shop, one
// active register, a bound cash and card method and a priced service type.
type testEnv struct {
	store *memStore

	ledger    *LedgerService
	shifts    *ShiftService
	orders    *OrderService
	methods   *PaymentMethodService
	registers *RegisterService
	catalog   *CatalogService

	shopID     uuid.UUID
	registerID uuid.UUID
	cashierID  uuid.UUID
	cashID     uuid.UUID
	cardID     uuid.UUID
	washTypeID uuid.UUID
}

func newTestEnv() *testEnv {
	store := newMemStore()

	txRepo := &fakeTransactionRepo{s: store}
	methodRepo := &fakeMethodRepo{s: store}
	shiftRepo := &fakeShiftRepo{s: store}
	orderRepo := &fakeOrderRepo{s: store}
	registerRepo := &fakeRegisterRepo{s: store}
	serviceTypeRepo := &fakeServiceTypeRepo{s: store}

	env := &testEnv{
		store:     store,
		ledger:    NewLedgerService(txRepo, methodRepo, cache.NoopBalanceCache{}),
		shifts:    NewShiftService(shiftRepo, txRepo),
		orders:    NewOrderService(orderRepo, shiftRepo, serviceTypeRepo, methodRepo),
		methods:   NewPaymentMethodService(methodRepo, registerRepo),
		registers: NewRegisterService(registerRepo, shiftRepo),
		catalog:   NewCatalogService(serviceTypeRepo),

		shopID:    uuid.New(),
		cashierID: uuid.New(),
	}

	register := &entity.CashRegister{
		ID:     uuid.New(),
		ShopID: env.shopID,
		Name:   "Register 1",
		Status: enum.RegisterStatusActive,
	}
	store.registers[register.ID] = register
	env.registerID = register.ID

	cash := &entity.PaymentMethod{
		ID:     uuid.New(),
		ShopID: env.shopID,
		Source: enum.PaymentSourceCash,
		Name:   "Cash",
		Code:   "cash",
		Scope:  enum.PaymentScopeShared,
		Status: enum.MethodStatusActive,
	}
	card := &entity.PaymentMethod{
		ID:     uuid.New(),
		ShopID: env.shopID,
		Source: enum.PaymentSourceCard,
		Name:   "Card",
		Code:   "card",
		Scope:  enum.PaymentScopeShared,
		Status: enum.MethodStatusActive,
	}
	store.methods[cash.ID] = cash
	store.methods[card.ID] = card
	env.cashID = cash.ID
	env.cardID = card.ID

	store.bindings = append(store.bindings,
		&entity.RegisterPaymentMethod{ID: uuid.New(), RegisterID: register.ID, PaymentMethodID: cash.ID, IsActive: true},
		&entity.RegisterPaymentMethod{ID: uuid.New(), RegisterID: register.ID, PaymentMethodID: card.ID, IsActive: true},
	)

	wash := &entity.ServiceType{
		ID:     uuid.New(),
		ShopID: env.shopID,
		Name:   "Exterior wash",
		Price:  decimal.NewFromInt(1000),
		Active: true,
	}
	store.serviceTypes[wash.ID] = wash
	env.washTypeID = wash.ID

	return env
}

func (e *testEnv) openShift(t *testing.T) *entity.Shift {
	t.Helper()
	shift, err := e.shifts.Open(context.Background(), e.registerID, e.cashierID)
	if err != nil {
		t.Fatalf("open shift failed: %v", err)
	}
	return shift
}

func (e *testEnv) createOrder(t *testing.T, shiftID uuid.UUID, staff []uuid.UUID) *entity.ServiceOrder {
	t.Helper()
	order, err := e.orders.Create(context.Background(), &CreateOrderInput{
		ShiftID:       shiftID,
		ServiceTypeID: e.washTypeID,
		VehicleID:     uuid.New(),
		StaffIDs:      staff,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}
