package misticpay

import "github.com/shopspring/decimal"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type TransactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	TransactionID string          `json:"transactionId"`
	PayerName     string          `json:"payerName"`
	PayerDocument string          `json:"payerDocument"`
}
