package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lucopay/config"
	"lucopay/internal/middleware"
	"lucopay/pkg/reference"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// provider stubs both upstream APIs on one server and counts calls.
type provider struct {
	srv   *httptest.Server
	calls atomic.Int64
}

func newProvider(t *testing.T, routes map[string]http.HandlerFunc) *provider {
	t.Helper()
	p := &provider{}
	mux := http.NewServeMux()
	for path, h := range routes {
		h := h
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			p.calls.Add(1)
			h(w, r)
		})
	}
	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)
	return p
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "8000", Env: "test"},
		Identity:  config.IdentityConfig{BaseURL: baseURL, APIKey: "key", Timeout: 2 * time.Second},
		Payment:   config.PaymentConfig{BaseURL: baseURL, Username: "user", Password: "pass", Timeout: 2 * time.Second},
		Reference: config.ReferenceConfig{Length: 6, Secret: "secret"},
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	}
	return w, out
}

func deadURL() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestRoot(t *testing.T) {
	h := Setup(testConfig(deadURL()), nil)

	w, body := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"Welcome To Luco Pay": "True"}, body)

	w, body = do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestIdentity_EmptyMSISDNRejectedBeforeUpstream(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/api/mobile-money/validate": respond(http.StatusOK, `{}`),
	})
	h := Setup(testConfig(p.srv.URL), nil)

	for _, body := range []string{`{"msisdn":""}`, `{}`, `not json`} {
		w, out := do(t, h, http.MethodPost, "/identity/msisdn", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "msisdn is required", out["detail"])
	}
	assert.Zero(t, p.calls.Load())
}

func TestIdentity_Success(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/api/mobile-money/validate": respond(http.StatusOK, `{"customer_name":"Jane","message":"ok","success":true}`),
	})
	h := Setup(testConfig(p.srv.URL), nil)

	w, out := do(t, h, http.MethodPost, "/identity/msisdn", `{"msisdn":"+256700000000"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"identityname": "Jane", "message": "ok", "success": true}, out)
}

func TestIdentity_ProviderFailure(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/api/mobile-money/validate": respond(http.StatusBadGateway, `oops`),
	})

	for _, base := range []string{p.srv.URL, deadURL()} {
		h := Setup(testConfig(base), nil)
		w, out := do(t, h, http.MethodPost, "/identity/msisdn", `{"msisdn":"+256700000000"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to validate mobile number", out["detail"])
	}
}

func TestRequestPayment_Success(t *testing.T) {
	var sent map[string]string
	p := newProvider(t, map[string]http.HandlerFunc{
		"/process_payment": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			_, _ = w.Write([]byte(`{"success":true,"internal_reference":"INT1"}`))
		},
	})
	h := Setup(testConfig(p.srv.URL), nil)

	w, out := do(t, h, http.MethodPost, "/api/v1/request_payment", `{"amount":"500","number":"256708215305"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Payment requested successfully", out["message"])
	assert.Equal(t, map[string]any{"success": true, "internal_reference": "INT1"}, out["data"])

	ref, _ := out["reference"].(string)
	assert.True(t, strings.HasPrefix(ref, reference.Prefix))
	assert.Equal(t, ref, sent["refer"])
	assert.Equal(t, "user", sent["username"])
	assert.True(t, reference.Verify(ref, out["signature"].(string), "secret"))
}

func TestRequestPayment_UpstreamStatusPropagated(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/process_payment": respond(http.StatusPaymentRequired, `insufficient funds`),
	})
	h := Setup(testConfig(p.srv.URL), nil)

	w, out := do(t, h, http.MethodPost, "/api/v1/request_payment", `{"amount":"500","number":"256708215305"}`)
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, out["detail"], "insufficient funds")
}

func TestRequestPayment_NetworkFailure(t *testing.T) {
	h := Setup(testConfig(deadURL()), nil)

	w, out := do(t, h, http.MethodPost, "/api/v1/request_payment", `{"amount":"500","number":"256708215305"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", out["detail"])
}

func TestRequestPayment_MissingFields(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{"/process_payment": respond(http.StatusOK, `{}`)})
	h := Setup(testConfig(p.srv.URL), nil)

	w, _ := do(t, h, http.MethodPost, "/api/v1/request_payment", `{"amount":"500"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, p.calls.Load())
}

func TestWebhook_AmountOmitted(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/check_transaction_status": respond(http.StatusOK, `{"status":"pending","number":"256708215305"}`),
	})
	h := Setup(testConfig(p.srv.URL), nil)

	before := time.Now().UTC().Add(-time.Second)
	w, out := do(t, h, http.MethodPost, "/api/v1/payment_webhook", `{"reference":"LXNABC123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	amount, present := out["amount"]
	assert.True(t, present)
	assert.Nil(t, amount)
	assert.Equal(t, "Transaction found", out["message"])
	assert.Equal(t, "pending", out["status"])
	assert.Equal(t, "256708215305", out["number"])
	assert.Equal(t, "LXNABC123", out["transid"])
	assert.Equal(t, "LXNABC123", out["reference"])

	created, err := time.Parse(time.RFC3339, out["created"].(string))
	require.NoError(t, err)
	assert.False(t, created.Before(before.Truncate(time.Second)))
	assert.WithinDuration(t, time.Now().UTC(), created, 5*time.Second)
}

func TestWebhook_Errors(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/check_transaction_status": respond(http.StatusNotFound, `transaction not found`),
	})

	w, out := do(t, Setup(testConfig(p.srv.URL), nil), http.MethodPost, "/api/v1/payment_webhook", `{"reference":"LXN1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Failed to fetch transaction: transaction not found", out["detail"])

	w, out = do(t, Setup(testConfig(deadURL()), nil), http.MethodPost, "/api/v1/payment_webhook", `{"reference":"LXN1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, out["detail"], "Error fetching transaction")

	w, _ = do(t, Setup(testConfig(deadURL()), nil), http.MethodPost, "/api/v1/payment_webhook", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhook_MalformedProviderBody(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/check_transaction_status": respond(http.StatusOK, `{"amount":"a lot"}`),
	})
	w, out := do(t, Setup(testConfig(p.srv.URL), nil), http.MethodPost, "/api/v1/payment_webhook", `{"reference":"LXN1"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, out["detail"], "Error fetching transaction")
}

func TestCORS_Permissive(t *testing.T) {
	h := Setup(testConfig(deadURL()), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/request_payment", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestRateLimit_AppliesToUpstreamRoutesOnly(t *testing.T) {
	p := newProvider(t, map[string]http.HandlerFunc{
		"/api/mobile-money/validate": respond(http.StatusOK, `{"customer_name":"Jane","message":"ok","success":true}`),
	})
	h := Setup(testConfig(p.srv.URL), middleware.NewInMemoryRateLimiter(1, time.Minute))

	w, _ := do(t, h, http.MethodPost, "/identity/msisdn", `{"msisdn":"+256700000000"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, h, http.MethodPost, "/identity/msisdn", `{"msisdn":"+256700000000"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	for i := 0; i < 3; i++ {
		w, _ = do(t, h, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := Setup(testConfig(deadURL()), nil)
	do(t, h, http.MethodGet, "/", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lucopay_http_requests_total")
}
