package misticpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Behyna/pix-checkout/pkg/httpclient"
)

const CreateTransactionEndpoint = "/transactions/create"

const (
	HeaderClientID     = "ci"
	HeaderClientSecret = "cs"
)

type Gateway interface {
	CreateTransaction(ctx context.Context, request TransactionRequest) (Response, error)
}

type gateway struct {
	client httpclient.HTTPClient
	config Config
}

func NewGateway(cfg Config, client httpclient.HTTPClient) Gateway {
	return &gateway{config: cfg, client: client}
}

// CreateTransaction posts the payload once. It returns *APIError when the gateway
// rejected the request and *TransportError when no response came back.
func (g *gateway) CreateTransaction(ctx context.Context, request TransactionRequest) (Response, error) {
	if !g.config.HasCredentials() {
		return Response{}, ErrMissingCredentials
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return Response{}, fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Content-Type":     "application/json",
		HeaderClientID:     g.config.ClientID,
		HeaderClientSecret: g.config.ClientSecret,
	}

	resp, err := g.client.Post(ctx, g.endpoint(), &buf, headers)
	if err != nil {
		return Response{}, newTransportError(err)
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, newTransportError(fmt.Errorf("reading response body: %w", err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Response{}, &APIError{StatusCode: resp.StatusCode, Body: relayBody(raw)}
	}

	return Response{StatusCode: resp.StatusCode, Body: relayBody(raw)}, nil
}

func (g *gateway) endpoint() string {
	return strings.TrimRight(g.config.BaseURL, "/") + CreateTransactionEndpoint
}
