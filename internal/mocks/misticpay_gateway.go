package mocks

import (
	"context"

	"github.com/Behyna/pix-checkout/pkg/misticpay"
	"github.com/stretchr/testify/mock"
)

type MisticPayGateway struct {
	mock.Mock
}

func (g *MisticPayGateway) CreateTransaction(ctx context.Context, request misticpay.TransactionRequest) (misticpay.Response, error) {
	args := g.Called(ctx, request)
	return args.Get(0).(misticpay.Response), args.Error(1)
}
