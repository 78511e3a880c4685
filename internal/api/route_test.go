package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Behyna/pix-checkout/internal/api"
	v1 "github.com/Behyna/pix-checkout/internal/api/v1"
	"github.com/Behyna/pix-checkout/internal/config"
	"github.com/Behyna/pix-checkout/internal/constants"
	"github.com/Behyna/pix-checkout/internal/metrics"
	"github.com/Behyna/pix-checkout/internal/service"
	"github.com/Behyna/pix-checkout/pkg/httpclient"
	"github.com/Behyna/pix-checkout/pkg/misticpay"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	server *httptest.Server
	calls  atomic.Int32
}

func newFakeGateway(t *testing.T, handler http.HandlerFunc) *fakeGateway {
	t.Helper()

	gw := &fakeGateway{}
	gw.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gw.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(gw.server.Close)

	return gw
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		MisticPay: misticpay.Config{
			BaseURL:      baseURL,
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
		Payment: config.Payment{
			Amount:        decimal.RequireFromString("21.67"),
			Description:   "X",
			PayerName:     "Cliente",
			PayerDocument: "00000000000",
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config, timeout time.Duration) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	gateway := misticpay.NewGateway(cfg.MisticPay, httpclient.NewHTTPClient(timeout))
	svc := service.NewTransactionService(gateway, cfg, config.Options{GatewayTimeout: timeout}, logger, m)
	handler := v1.NewHandler(logger, svc)

	app := api.NewFiberApp(logger, m)
	api.SetupRoutes(app, handler, registry, "")

	return app
}

func postTransaction(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/create-transaction", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw)
}

func TestCreateTransaction_DefaultsAndSuccess(t *testing.T) {
	var payload map[string]any
	gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pixCode":"abc"}`))
	})

	app := newTestApp(t, testConfig(gw.server.URL), time.Second)

	status, body := postTransaction(t, app, `{}`)

	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"pixCode":"abc"}`, body)
	assert.Equal(t, int32(1), gw.calls.Load())
	assert.Equal(t, 21.67, payload["amount"])
	assert.Equal(t, "X", payload["description"])
	assert.Equal(t, "Cliente", payload["payerName"])
	assert.Equal(t, "00000000000", payload["payerDocument"])
	assert.True(t, strings.HasPrefix(payload["transactionId"].(string), service.TransactionIDPrefix))
}

func TestCreateTransaction_RequestPayerOverridesDefaults(t *testing.T) {
	gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.Copy(w, r.Body)
	})

	app := newTestApp(t, testConfig(gw.server.URL), time.Second)

	status, body := postTransaction(t, app,
		`{"payerName":"Ana","payerDocument":"11122233344","amount":1,"description":"client"}`)

	require.Equal(t, http.StatusOK, status)

	var echoed map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &echoed))
	assert.Equal(t, "Ana", echoed["payerName"])
	assert.Equal(t, "11122233344", echoed["payerDocument"])
	assert.Equal(t, 21.67, echoed["amount"])
	assert.Equal(t, "X", echoed["description"])
}

func TestCreateTransaction_PayerFieldsReachGatewayUnchanged(t *testing.T) {
	longName := strings.Repeat("a", 121)

	testCases := []struct {
		name     string
		body     string
		document string
		payer    string
	}{
		{
			name:     "formatted cpf",
			body:     `{"payerName":"Ana","payerDocument":"111.222.333-44"}`,
			payer:    "Ana",
			document: "111.222.333-44",
		},
		{
			name:     "long name",
			body:     `{"payerName":"` + longName + `"}`,
			payer:    longName,
			document: "00000000000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var payload map[string]any
			gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewDecoder(r.Body).Decode(&payload)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"pixCode":"abc"}`))
			})

			app := newTestApp(t, testConfig(gw.server.URL), time.Second)

			status, body := postTransaction(t, app, tc.body)

			assert.Equal(t, http.StatusOK, status)
			assert.JSONEq(t, `{"pixCode":"abc"}`, body)
			assert.Equal(t, int32(1), gw.calls.Load())
			assert.Equal(t, tc.payer, payload["payerName"])
			assert.Equal(t, tc.document, payload["payerDocument"])
		})
	}
}

func TestCreateTransaction_MissingCredentials(t *testing.T) {
	gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	cfg := testConfig(gw.server.URL)
	cfg.MisticPay.ClientSecret = ""
	app := newTestApp(t, cfg, time.Second)

	status, body := postTransaction(t, app, `{}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, int32(0), gw.calls.Load())

	var response map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	assert.Equal(t, constants.ErrCodeGatewayCredentialsMissing, response["code"])
	assert.Equal(t, constants.ErrMsgGatewayCredentialsMissing, response["message"])
}

func TestCreateTransaction_GatewayRejectionPassthrough(t *testing.T) {
	gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"insufficient_funds"}`))
	})

	app := newTestApp(t, testConfig(gw.server.URL), time.Second)

	status, body := postTransaction(t, app, `{}`)

	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.JSONEq(t, `{"error":"insufficient_funds"}`, body)
	assert.Equal(t, int32(1), gw.calls.Load())
}

func TestCreateTransaction_GatewayUnreachable(t *testing.T) {
	gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {})
	baseURL := gw.server.URL
	gw.server.Close()

	app := newTestApp(t, testConfig(baseURL), time.Second)

	status, body := postTransaction(t, app, `{}`)

	assert.Equal(t, http.StatusInternalServerError, status)

	var response map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	assert.Equal(t, constants.ErrCodeGatewayUnavailable, response["code"])
	assert.NotEmpty(t, response["message"])
	assert.NotEmpty(t, response["details"])
}

func TestCreateTransaction_GatewayTimeout(t *testing.T) {
	gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})

	app := newTestApp(t, testConfig(gw.server.URL), 50*time.Millisecond)

	status, body := postTransaction(t, app, `{}`)

	assert.Equal(t, http.StatusInternalServerError, status)

	var response map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	assert.Equal(t, constants.ErrCodeGatewayTimeout, response["code"])
}

func TestCreateTransaction_RequestBody(t *testing.T) {
	gw := newFakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	})

	app := newTestApp(t, testConfig(gw.server.URL), time.Second)

	t.Run("malformed json", func(t *testing.T) {
		status, body := postTransaction(t, app, `{"payerName":`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body, constants.ErrCodeInvalidRequestBody)
	})

	t.Run("empty body without content type uses defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/create-transaction", nil)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(t, testConfig("http://127.0.0.1:1"), time.Second)

	testCases := []struct {
		name     string
		path     string
		contains string
	}{
		{name: "ping", path: "/ping", contains: "pong"},
		{name: "health", path: "/health", contains: `"status":"healthy"`},
		{name: "metrics", path: "/metrics", contains: "checkout_http_requests_in_flight"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(raw), tc.contains)
		})
	}
}
