package repository

import "errors"

// Sentinel errors returned by atomic repository operations. The service layer
// maps them onto the API error taxonomy.
var (
	// ErrNotFound is returned by atomic operations when a referenced row
	// does not exist. Plain lookups return a nil record instead.
	ErrNotFound = errors.New("record not found")

	// ErrInsufficientBalance is returned when a posting would take a
	// no-overdraft method below zero. The check runs under the row lock,
	// never against a cached balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrOpenShiftOnRegister is returned when the register already has an
	// open or paused shift.
	ErrOpenShiftOnRegister = errors.New("register already has an open shift")

	// ErrCashierHasOpenShift is returned when the cashier owns an open or
	// paused shift on any register.
	ErrCashierHasOpenShift = errors.New("cashier already has an open shift")

	// ErrRegisterUnavailable is returned when the register is in maintenance.
	ErrRegisterUnavailable = errors.New("register unavailable")

	// ErrShiftStateChanged is returned by guarded status writes when the
	// shift left the expected state between the caller's read and the write.
	ErrShiftStateChanged = errors.New("shift state changed")

	// ErrShiftNotOpen is returned by posting composites when the linked
	// shift is not accepting transactions at commit time.
	ErrShiftNotOpen = errors.New("shift not open")
)
