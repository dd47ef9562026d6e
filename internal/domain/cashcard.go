// Package domain provides defenitions of all entities.
package domain

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrCashCardNotFound indicates that the cash card does not exist or is owned by someone else.
var ErrCashCardNotFound = errors.New("cash card not found")

// CashCard is a monetary instrument holding a balance-like amount for its owner.
type CashCard struct {
	ID     int64           `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Owner  string          `json:"owner"`
}

// MarshalJSON encodes the amount as a JSON number rather than a string.
func (c CashCard) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID     int64       `json:"id"`
		Amount json.Number `json:"amount"`
		Owner  string      `json:"owner"`
	}{
		ID:     c.ID,
		Amount: json.Number(c.Amount.String()),
		Owner:  c.Owner,
	})
}
