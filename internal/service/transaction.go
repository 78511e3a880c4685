package service

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/pix-checkout/internal/config"
	"github.com/Behyna/pix-checkout/internal/constants"
	"github.com/Behyna/pix-checkout/internal/metrics"
	"github.com/Behyna/pix-checkout/pkg/misticpay"
	"go.uber.org/zap"
)

const DefaultGatewayTimeout = 15 * time.Second

type TransactionService interface {
	CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (CreateTransactionResult, error)
}

type Transaction struct {
	gateway misticpay.Gateway
	config  *config.Config
	timeout time.Duration
	newID   IDGenerator
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewTransactionService(gateway misticpay.Gateway, cfg *config.Config, opts config.Options, logger *zap.Logger, metrics *metrics.Metrics) TransactionService {
	timeout := opts.GatewayTimeout
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}

	return &Transaction{
		gateway: gateway,
		config:  cfg,
		timeout: timeout,
		newID:   NewTransactionID,
		logger:  logger,
		metrics: metrics,
	}
}

// CreateTransaction sends one transaction to the gateway. Gateway rejections are
// returned as *misticpay.APIError untouched; every other failure is a service Error.
func (t *Transaction) CreateTransaction(ctx context.Context, cmd CreateTransactionCommand) (CreateTransactionResult, error) {
	request := t.buildRequest(cmd)

	if !t.config.MisticPay.HasCredentials() {
		t.logger.Error("Gateway credentials missing, transaction not sent",
			zap.String("transactionID", request.TransactionID),
			zap.String("configSource", string(t.config.Source())))
		t.metrics.RecordGatewayCall(metrics.OutcomeConfigError, 0)

		return CreateTransactionResult{}, NewServiceError(constants.ErrCodeGatewayCredentialsMissing, misticpay.ErrMissingCredentials)
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	resp, err := t.gateway.CreateTransaction(gatewayCtx, request)
	duration := time.Since(start)

	if err != nil {
		return CreateTransactionResult{}, t.handleGatewayError(err, request, duration)
	}

	t.metrics.RecordGatewayCall(metrics.OutcomeSuccess, duration)
	t.metrics.RecordTransactionCreated()

	t.logger.Info("Transaction created",
		zap.String("transactionID", request.TransactionID),
		zap.String("amount", request.Amount.String()),
		zap.Int("gatewayStatus", resp.StatusCode),
		zap.Duration("duration", duration))

	return CreateTransactionResult{
		TransactionID: request.TransactionID,
		Amount:        request.Amount,
		Body:          resp.Body,
	}, nil
}

func (t *Transaction) buildRequest(cmd CreateTransactionCommand) misticpay.TransactionRequest {
	payment := t.config.Payment

	amount := payment.Amount
	if amount.IsZero() {
		amount = config.DefaultAmount
	}

	return misticpay.TransactionRequest{
		Amount:        amount,
		Description:   firstNonEmpty(payment.Description, config.DefaultDescription),
		TransactionID: t.newID(),
		PayerName:     firstNonEmpty(cmd.PayerName, payment.PayerName, config.DefaultPayerName),
		PayerDocument: firstNonEmpty(cmd.PayerDocument, payment.PayerDocument, config.DefaultPayerDocument),
	}
}

func (t *Transaction) handleGatewayError(err error, request misticpay.TransactionRequest, duration time.Duration) error {
	var apiErr *misticpay.APIError
	if errors.As(err, &apiErr) {
		t.logger.Warn("Gateway rejected transaction",
			zap.String("transactionID", request.TransactionID),
			zap.Int("status", apiErr.StatusCode),
			zap.ByteString("body", apiErr.Body),
			zap.Duration("duration", duration))
		t.metrics.RecordGatewayCall(metrics.OutcomeRejected, duration)

		return apiErr
	}

	var transportErr *misticpay.TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Timeout {
			t.logger.Error("Gateway call timed out",
				zap.Error(err),
				zap.String("transactionID", request.TransactionID),
				zap.Duration("timeout", t.timeout))
			t.metrics.RecordGatewayCall(metrics.OutcomeTimeout, duration)

			return NewServiceError(constants.ErrCodeGatewayTimeout, err)
		}

		t.logger.Error("Gateway unreachable",
			zap.Error(err),
			zap.String("transactionID", request.TransactionID),
			zap.Duration("duration", duration))
		t.metrics.RecordGatewayCall(metrics.OutcomeTransportError, duration)

		return NewServiceError(constants.ErrCodeGatewayUnavailable, err)
	}

	if errors.Is(err, misticpay.ErrMissingCredentials) {
		t.metrics.RecordGatewayCall(metrics.OutcomeConfigError, 0)
		return NewServiceError(constants.ErrCodeGatewayCredentialsMissing, err)
	}

	t.logger.Error("Transaction failed", zap.Error(err), zap.String("transactionID", request.TransactionID))
	t.metrics.RecordGatewayCall(metrics.OutcomeTransportError, duration)

	return NewServiceError(constants.ErrCodeInternalError, err)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
