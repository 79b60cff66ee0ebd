package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionType classifies a ledger entry. Sale, Deposit and Adjustment-up
// carry positive amounts; Refund, Withdrawal and Purchase carry negative ones.
type TransactionType int

const (
	TransactionTypeSale       TransactionType = 0
	TransactionTypeRefund     TransactionType = 1
	TransactionTypeDeposit    TransactionType = 2
	TransactionTypeWithdrawal TransactionType = 3
	TransactionTypePurchase   TransactionType = 4
	TransactionTypeAdjustment TransactionType = 5
)

func (t TransactionType) String() string {
	return [...]string{"Sale", "Refund", "Deposit", "Withdrawal", "Purchase", "Adjustment"}[t]
}

// IsOutflow reports whether the type removes funds from the method.
func (t TransactionType) IsOutflow() bool {
	switch t {
	case TransactionTypeRefund, TransactionTypeWithdrawal, TransactionTypePurchase:
		return true
	}
	return false
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TransactionType(i)
		return nil
	}
	switch str {
	case "Sale":
		*t = TransactionTypeSale
	case "Refund":
		*t = TransactionTypeRefund
	case "Deposit":
		*t = TransactionTypeDeposit
	case "Withdrawal":
		*t = TransactionTypeWithdrawal
	case "Purchase":
		*t = TransactionTypePurchase
	case "Adjustment":
		*t = TransactionTypeAdjustment
	}
	return nil
}

func (t TransactionType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TransactionType) Scan(value interface{}) error {
	if value == nil {
		*t = TransactionTypeSale
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TransactionType(v)
	case int:
		*t = TransactionType(v)
	}
	return nil
}
