package service

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const TransactionIDPrefix = "txn_"

type IDGenerator func() string

// NewTransactionID returns txn_ followed by a UUIDv7, which is time-ordered and
// unique across requests landing in the same millisecond.
func NewTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return TransactionIDPrefix + strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	return TransactionIDPrefix + id.String()
}
