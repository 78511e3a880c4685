package service

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateTransactionCommand carries the payer identity the client page may supply.
// Empty fields fall back to the merchant defaults.
type CreateTransactionCommand struct {
	PayerName     string
	PayerDocument string
}

type CreateTransactionResult struct {
	TransactionID string
	Amount        decimal.Decimal
	Body          json.RawMessage
}
