package mocks

import (
	"context"

	"github.com/Behyna/pix-checkout/internal/service"
	"github.com/stretchr/testify/mock"
)

type TransactionService struct {
	mock.Mock
}

func (s *TransactionService) CreateTransaction(ctx context.Context, cmd service.CreateTransactionCommand) (service.CreateTransactionResult, error) {
	args := s.Called(ctx, cmd)
	return args.Get(0).(service.CreateTransactionResult), args.Error(1)
}
