package v1

// CreateTransactionRequest fields are forwarded as sent when non-empty.
type CreateTransactionRequest struct {
	PayerName     string `json:"payerName"`
	PayerDocument string `json:"payerDocument"`
}
