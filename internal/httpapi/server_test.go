package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/checkout"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
)

var myr = currency.MustParseISO("MYR")

const (
	testSecret      = "http-test-secret"
	testAdminSecret = "http-admin-secret"
)

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) CreateIntent(ctx context.Context, amount decimal.Decimal) (string, error) {
	args := m.Called(ctx, amount)
	return args.String(0), args.Error(1)
}

func (m *mockPayments) IntentStatus(ctx context.Context, intentID string) (domain.PaymentStatus, error) {
	args := m.Called(ctx, intentID)
	return args.Get(0).(domain.PaymentStatus), args.Error(1)
}

type serverSuite struct {
	suite.Suite

	store    *memory.Store
	payments *mockPayments
	srv      *httptest.Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(serverSuite))
}

// before each test
func (suite *serverSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.payments = new(mockPayments)
	suite.srv = suite.newServer(httpapi.Options{RateRPS: 1000, RateBurst: 1000})
}

// after each test
func (suite *serverSuite) TearDownTest() {
	suite.srv.Close()
	suite.payments.AssertExpectations(suite.T())
}

func (suite *serverSuite) newServer(opts httpapi.Options) *httptest.Server {
	t := suite.T()

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)

	service, err := auth.NewService(suite.store, tokens, auth.NewHasher(bcrypt.MinCost), testAdminSecret)
	require.NoError(t, err)

	guard, err := auth.NewGuard(tokens, suite.store)
	require.NoError(t, err)

	recorder, err := checkout.NewRecorder(suite.store, myr)
	require.NoError(t, err)

	server, err := httpapi.NewServer(httpapi.Deps{
		Auth:     service,
		Guard:    guard,
		Recorder: recorder,
		Payments: suite.payments,
	}, opts)
	require.NoError(t, err)

	return httptest.NewServer(server.Routes())
}

func (suite *serverSuite) TestRegisterAndLogin() {
	email := gofakeit.Email()

	status, body := suite.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     gofakeit.Name(),
		"email":    email,
		"password": "secret-password",
	})
	suite.Require().Equal(http.StatusCreated, status, body)

	var session struct {
		Token string `json:"token"`
		User  struct {
			Email   string `json:"email"`
			IsAdmin bool   `json:"isAdmin"`
		} `json:"user"`
	}
	suite.Require().NoError(json.Unmarshal(body, &session))
	suite.NotEmpty(session.Token)
	suite.Equal(domain.NormalizeEmail(email), session.User.Email)
	suite.False(session.User.IsAdmin)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
		wantBody   string
	}{
		{
			name:       "duplicate email: 400",
			path:       "/api/auth/register",
			body:       map[string]any{"name": "x", "email": email, "password": "y"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Email already exists",
		},
		{
			name:       "admin without secret: 400",
			path:       "/api/auth/register",
			body:       map[string]any{"name": "x", "email": gofakeit.Email(), "password": "y", "role": "admin"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid or missing admin secret key",
		},
		{
			name:       "admin with secret: 201",
			path:       "/api/auth/register",
			body:       map[string]any{"name": "x", "email": gofakeit.Email(), "password": "y", "role": "admin", "secretKey": testAdminSecret},
			wantStatus: http.StatusCreated,
			wantBody:   `"isAdmin":true`,
		},
		{
			name:       "missing fields: 400",
			path:       "/api/auth/register",
			body:       map[string]any{"email": gofakeit.Email()},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"fields":["name","password"]`,
		},
		{
			name:       "wrong type: 400",
			path:       "/api/auth/register",
			body:       map[string]any{"name": 42, "email": gofakeit.Email(), "password": "y"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"fields":["name"]`,
		},
		{
			name:       "login: 200",
			path:       "/api/auth/login",
			body:       map[string]any{"email": email, "password": "secret-password"},
			wantStatus: http.StatusOK,
			wantBody:   `"token":`,
		},
		{
			name:       "login with wrong password: 401",
			path:       "/api/auth/login",
			body:       map[string]any{"email": email, "password": "nope"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid credentials",
		},
		{
			name:       "login without password: 400",
			path:       "/api/auth/login",
			body:       map[string]any{"email": email},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			status, body := suite.do(http.MethodPost, tt.path, "", tt.body)
			assert.Equal(t, tt.wantStatus, status, string(body))
			assert.Contains(t, string(body), tt.wantBody)
		})
	}
}

func (suite *serverSuite) TestOrdersRequireToken() {
	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "my orders without token", method: http.MethodGet, path: "/api/orders/my-orders", wantStatus: http.StatusUnauthorized},
		{name: "admin orders without token", method: http.MethodGet, path: "/api/orders/admin-orders", wantStatus: http.StatusUnauthorized},
		{name: "place order without token", method: http.MethodPost, path: "/api/orders", wantStatus: http.StatusUnauthorized},
		{name: "save order payment without token", method: http.MethodPost, path: "/api/payments/save-order-payment", wantStatus: http.StatusUnauthorized},
		{name: "my orders with garbage token", method: http.MethodGet, path: "/api/orders/my-orders", token: "garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			status, body := suite.do(tt.method, tt.path, tt.token, nil)
			suite.Equal(tt.wantStatus, status, string(body))
		})
	}

	// nothing was written
	suite.Empty(suite.store.PendingEvents())
}

func (suite *serverSuite) TestPlaceOrderAndList() {
	aliceToken, alice := suite.register(false)
	bobToken, _ := suite.register(false)
	adminToken, _ := suite.register(true)

	// missing phone is rejected and nothing is stored
	body := randomCheckoutBody()
	body["shippingInfo"].(map[string]any)["phone"] = ""
	status, resp := suite.do(http.MethodPost, "/api/orders", aliceToken, body)
	suite.Require().Equal(http.StatusBadRequest, status, string(resp))
	suite.Contains(string(resp), "shippingInfo.phone")
	suite.Empty(suite.store.PendingEvents())

	// ownerId in the body is ignored
	body = randomCheckoutBody()
	body["ownerId"] = uuid.NewString()
	body["cartItems"].([]map[string]any)[0]["_id"] = "fallback-id"
	delete(body["cartItems"].([]map[string]any)[0], "productId")
	status, resp = suite.do(http.MethodPost, "/api/orders", aliceToken, body)
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	var placed struct {
		Message string `json:"message"`
		Order   struct {
			ID      uuid.UUID `json:"id"`
			OwnerID uuid.UUID `json:"ownerId"`
			Items   []struct {
				ProductID string `json:"productId"`
			} `json:"items"`
			Currency string `json:"currency"`
		} `json:"order"`
	}
	suite.Require().NoError(json.Unmarshal(resp, &placed))
	suite.Equal("Order placed successfully", placed.Message)
	suite.Equal(alice.ID, placed.Order.OwnerID)
	suite.Equal("fallback-id", placed.Order.Items[0].ProductID)
	suite.Equal("MYR", placed.Order.Currency)

	status, resp = suite.do(http.MethodPost, "/api/orders", bobToken, randomCheckoutBody())
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
		wantCount  int
	}{
		{name: "alice sees her order", path: "/api/orders/my-orders", token: aliceToken, wantStatus: http.StatusOK, wantCount: 1},
		{name: "admin sees own orders only on my-orders", path: "/api/orders/my-orders", token: adminToken, wantStatus: http.StatusOK, wantCount: 0},
		{name: "admin sees everything", path: "/api/orders/admin-orders", token: adminToken, wantStatus: http.StatusOK, wantCount: 2},
		{name: "admin filters by unknown email", path: "/api/orders/admin-orders?email=nobody@example.com", token: adminToken, wantStatus: http.StatusOK, wantCount: 0},
		{name: "user on admin listing", path: "/api/orders/admin-orders", token: aliceToken, wantStatus: http.StatusForbidden},
		{name: "user on admin listing with filter", path: "/api/orders/admin-orders?email=x@example.com", token: aliceToken, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			status, resp := suite.do(http.MethodGet, tt.path, tt.token, nil)
			require.Equal(t, tt.wantStatus, status, string(resp))
			if tt.wantStatus != http.StatusOK {
				return
			}

			var orders []map[string]any
			require.NoError(t, json.Unmarshal(resp, &orders))
			assert.Len(t, orders, tt.wantCount)
		})
	}
}

func (suite *serverSuite) TestPlaceOrderStoresSubmittedAmounts() {
	token, _ := suite.register(false)

	body := randomCheckoutBody()
	line := body["cartItems"].([]map[string]any)[0]
	line["quantity"] = 2
	line["price"] = 10
	body["total"] = 20

	status, resp := suite.do(http.MethodPost, "/api/orders", token, body)
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	var placed struct {
		Order struct {
			ID    uuid.UUID   `json:"id"`
			Total json.Number `json:"total"`
			Items []struct {
				Quantity int         `json:"quantity"`
				Price    json.Number `json:"price"`
			} `json:"items"`
		} `json:"order"`
	}
	suite.Require().NoError(json.Unmarshal(resp, &placed))
	suite.Equal("20.00", placed.Order.Total.String())
	suite.Require().Len(placed.Order.Items, 1)
	suite.Equal(2, placed.Order.Items[0].Quantity)
	suite.Equal("10.00", placed.Order.Items[0].Price.String())

	stored, err := suite.store.GetOrder(suite.T().Context(), placed.Order.ID)
	suite.Require().NoError(err)
	suite.Require().Len(stored.Items, 1)
	suite.Equal(2, stored.Items[0].Quantity)
	suite.True(stored.Items[0].Price.Equal(decimal.NewFromInt(10)))
	suite.True(stored.Total.Amount.Equal(decimal.NewFromInt(20)))
}

func (suite *serverSuite) TestPlaceOrderRejectsUnstorableAmounts() {
	token, _ := suite.register(false)

	tests := []struct {
		name       string
		mutate     func(body map[string]any)
		wantFields []string
	}{
		{
			name: "quantity beyond int32: 400",
			mutate: func(body map[string]any) {
				body["cartItems"].([]map[string]any)[0]["quantity"] = 4294967297
			},
			wantFields: []string{"cartItems[0].quantity"},
		},
		{
			name: "total beyond the storage limit: 400",
			mutate: func(body map[string]any) {
				body["total"] = 1e10
			},
			wantFields: []string{"total"},
		},
		{
			name: "price in fractions of a cent: 400",
			mutate: func(body map[string]any) {
				body["cartItems"].([]map[string]any)[0]["price"] = json.Number("10.005")
			},
			wantFields: []string{"cartItems[0].price"},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			before := len(suite.store.PendingEvents())

			body := randomCheckoutBody()
			tt.mutate(body)

			status, resp := suite.do(http.MethodPost, "/api/orders", token, body)
			require.Equal(t, http.StatusBadRequest, status, string(resp))

			var errResp struct {
				Fields []string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(resp, &errResp))
			assert.Equal(t, tt.wantFields, errResp.Fields)
			assert.Len(t, suite.store.PendingEvents(), before)
		})
	}
}

func (suite *serverSuite) TestOrderPayment() {
	aliceToken, _ := suite.register(false)
	bobToken, _ := suite.register(false)
	adminToken, _ := suite.register(true)

	body := randomCheckoutBody()
	body["paymentId"] = "pi_" + gofakeit.LetterN(24)

	status, resp := suite.do(http.MethodPost, "/api/payments/save-order-payment", aliceToken, body)
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	var saved struct {
		OrderID uuid.UUID `json:"orderId"`
	}
	suite.Require().NoError(json.Unmarshal(resp, &saved))

	path := fmt.Sprintf("/api/orders/%s/payments", saved.OrderID)

	tests := []struct {
		name       string
		path       string
		token      string
		wantStatus int
	}{
		{name: "owner: 200", path: path, token: aliceToken, wantStatus: http.StatusOK},
		{name: "admin: 200", path: path, token: adminToken, wantStatus: http.StatusOK},
		{name: "another user: 404", path: path, token: bobToken, wantStatus: http.StatusNotFound},
		{name: "no token: 401", path: path, wantStatus: http.StatusUnauthorized},
		{name: "malformed order id: 400", path: "/api/orders/42/payments", token: aliceToken, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			status, resp := suite.do(http.MethodGet, tt.path, tt.token, nil)
			require.Equal(t, tt.wantStatus, status, string(resp))
			if tt.wantStatus != http.StatusOK {
				return
			}

			var payment struct {
				OrderID       uuid.UUID   `json:"orderId"`
				Amount        json.Number `json:"amount"`
				TransactionID string      `json:"transactionId"`
			}
			require.NoError(t, json.Unmarshal(resp, &payment))
			assert.Equal(t, saved.OrderID, payment.OrderID)
			assert.Equal(t, "20.50", payment.Amount.String())
			assert.Equal(t, body["paymentId"], payment.TransactionID)
		})
	}
}

func (suite *serverSuite) TestSaveOrderPayment() {
	token, alice := suite.register(false)

	body := randomCheckoutBody()
	body["paymentId"] = "pi_" + gofakeit.LetterN(24)

	status, resp := suite.do(http.MethodPost, "/api/payments/save-order-payment", token, body)
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	var saved struct {
		Message string    `json:"message"`
		OrderID uuid.UUID `json:"orderId"`
	}
	suite.Require().NoError(json.Unmarshal(resp, &saved))
	suite.Equal("Order and payment saved!", saved.Message)

	order, err := suite.store.GetOrder(suite.T().Context(), saved.OrderID)
	suite.Require().NoError(err)
	suite.Equal(alice.ID, order.OwnerID)

	payment, err := suite.store.GetPaymentByOrder(suite.T().Context(), saved.OrderID)
	suite.Require().NoError(err)
	suite.Equal(body["paymentId"], payment.TransactionID)
	suite.Equal(alice.ID, payment.OwnerID)

	// no payment id, nothing stored
	before := len(suite.store.PendingEvents())
	status, resp = suite.do(http.MethodPost, "/api/payments/save-order-payment", token, randomCheckoutBody())
	suite.Require().Equal(http.StatusBadRequest, status, string(resp))
	suite.Contains(string(resp), "paymentId")
	suite.Len(suite.store.PendingEvents(), before)
}

func (suite *serverSuite) TestSaveOrderPaymentVerifiesIntent() {
	suite.srv.Close()
	suite.srv = suite.newServer(httpapi.Options{RateRPS: 1000, RateBurst: 1000, VerifyIntents: true})

	token, _ := suite.register(false)

	suite.payments.On("IntentStatus", mock.Anything, "pi_failed").Return(domain.PaymentStatusFailed, nil).Once()

	body := randomCheckoutBody()
	body["paymentId"] = "pi_failed"
	body["paymentStatus"] = "succeeded"

	status, resp := suite.do(http.MethodPost, "/api/payments/save-order-payment", token, body)
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	var saved struct {
		OrderID uuid.UUID `json:"orderId"`
	}
	suite.Require().NoError(json.Unmarshal(resp, &saved))

	payment, err := suite.store.GetPaymentByOrder(suite.T().Context(), saved.OrderID)
	suite.Require().NoError(err)
	suite.Equal(domain.PaymentStatusFailed, payment.Status)
}

func (suite *serverSuite) TestRecordPayment() {
	aliceToken, _ := suite.register(false)
	bobToken, _ := suite.register(false)

	status, resp := suite.do(http.MethodPost, "/api/orders", aliceToken, randomCheckoutBody())
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	var placed struct {
		Order struct {
			ID uuid.UUID `json:"id"`
		} `json:"order"`
	}
	suite.Require().NoError(json.Unmarshal(resp, &placed))

	paymentBody := map[string]any{"amount": 12.5, "paymentStatus": "paid", "paymentId": "pi_1"}
	orderPath := fmt.Sprintf("/api/orders/%s/payments", placed.Order.ID)

	tests := []struct {
		name       string
		path       string
		token      string
		body       any
		wantStatus int
	}{
		{name: "someone else's order: 409", path: orderPath, token: bobToken, body: paymentBody, wantStatus: http.StatusConflict},
		{name: "unknown order: 409", path: fmt.Sprintf("/api/orders/%s/payments", uuid.New()), token: aliceToken, body: paymentBody, wantStatus: http.StatusConflict},
		{name: "malformed order id: 400", path: "/api/orders/42/payments", token: aliceToken, body: paymentBody, wantStatus: http.StatusBadRequest},
		{name: "missing amount: 400", path: orderPath, token: aliceToken, body: map[string]any{"paymentStatus": "paid"}, wantStatus: http.StatusBadRequest},
		{name: "own order: 201", path: orderPath, token: aliceToken, body: paymentBody, wantStatus: http.StatusCreated},
		{name: "second payment: 409", path: orderPath, token: aliceToken, body: paymentBody, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			status, resp := suite.do(http.MethodPost, tt.path, tt.token, tt.body)
			suite.Equal(tt.wantStatus, status, string(resp))
		})
	}
}

func (suite *serverSuite) TestCreatePaymentIntent() {
	suite.payments.On("CreateIntent", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("20.5"))
	})).Return("pi_1_secret_abc", nil).Once()
	suite.payments.On("CreateIntent", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(99))
	})).Return("", fmt.Errorf("PaymentIntents.New: %w", domain.ErrUpstream)).Once()

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantBody   string
	}{
		{name: "valid amount: 200", body: map[string]any{"amount": 20.5}, wantStatus: http.StatusOK, wantBody: `"clientSecret":"pi_1_secret_abc"`},
		{name: "zero amount: 400", body: map[string]any{"amount": 0}, wantStatus: http.StatusBadRequest, wantBody: "amount"},
		{name: "missing amount: 400", body: map[string]any{}, wantStatus: http.StatusBadRequest, wantBody: "amount"},
		{name: "string amount: 400", body: map[string]any{"amount": "20"}, wantStatus: http.StatusBadRequest, wantBody: "amount"},
		{name: "processor fails: 500", body: map[string]any{"amount": 99}, wantStatus: http.StatusInternalServerError, wantBody: "Internal server error"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			status, resp := suite.do(http.MethodPost, "/api/payments/create-payment-intent", "", tt.body)
			suite.Equal(tt.wantStatus, status, string(resp))
			suite.Contains(string(resp), tt.wantBody)
		})
	}
}

func (suite *serverSuite) TestDeletedAccount() {
	token, identity := suite.register(false)
	suite.Require().NoError(suite.store.DeleteUser(suite.T().Context(), identity.ID))

	status, resp := suite.do(http.MethodGet, "/api/orders/my-orders", token, nil)
	suite.Equal(http.StatusNotFound, status, string(resp))
	suite.Contains(string(resp), "User not found")
}

func (suite *serverSuite) TestBodyLimits() {
	token, _ := suite.register(false)

	tests := []struct {
		name       string
		body       io.Reader
		wantStatus int
	}{
		{name: "too large: 413", body: strings.NewReader(`{"name":"` + strings.Repeat("a", 1<<20) + `"}`), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "not json: 400", body: strings.NewReader(`{"cartItems":`), wantStatus: http.StatusBadRequest},
		{name: "empty: 400", body: strings.NewReader(``), wantStatus: http.StatusBadRequest},
		{name: "array instead of object: 400", body: strings.NewReader(`[]`), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			status, resp := suite.doRaw(http.MethodPost, "/api/orders", token, tt.body)
			suite.Equal(tt.wantStatus, status, string(resp))
		})
	}
}

func (suite *serverSuite) TestRateLimit() {
	suite.srv.Close()
	suite.srv = suite.newServer(httpapi.Options{RateRPS: 0.001, RateBurst: 2})

	body := map[string]any{"email": gofakeit.Email(), "password": "x"}

	var statuses []int
	for range 3 {
		status, _ := suite.do(http.MethodPost, "/api/auth/login", "", body)
		statuses = append(statuses, status)
	}

	suite.Equal([]int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, statuses)

	// other routes are not limited
	status, _ := suite.do(http.MethodGet, "/healthz", "", nil)
	suite.Equal(http.StatusOK, status)
}

func TestHealthz(t *testing.T) {
	store := memory.NewStore()

	tokens, err := auth.NewTokenService(testSecret)
	require.NoError(t, err)
	service, err := auth.NewService(store, tokens, auth.NewHasher(bcrypt.MinCost), "")
	require.NoError(t, err)
	guard, err := auth.NewGuard(tokens, store)
	require.NoError(t, err)
	recorder, err := checkout.NewRecorder(store, myr)
	require.NoError(t, err)

	tests := []struct {
		name       string
		ping       func(context.Context) error
		wantStatus int
	}{
		{name: "storage up", ping: func(context.Context) error { return nil }, wantStatus: http.StatusOK},
		{name: "storage down", ping: func(context.Context) error { return errors.New("connection refused") }, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := httpapi.NewServer(httpapi.Deps{
				Auth:     service,
				Guard:    guard,
				Recorder: recorder,
				Ping:     tt.ping,
			}, httpapi.Options{RateRPS: 1, RateBurst: 1})
			require.NoError(t, err)

			rec := httptest.NewRecorder()
			server.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func (suite *serverSuite) register(admin bool) (string, domain.Identity) {
	body := map[string]any{
		"name":     gofakeit.Name(),
		"email":    gofakeit.Email(),
		"password": "secret-password",
	}
	if admin {
		body["role"] = "admin"
		body["secretKey"] = testAdminSecret
	}

	status, resp := suite.do(http.MethodPost, "/api/auth/register", "", body)
	suite.Require().Equal(http.StatusCreated, status, string(resp))

	var session struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	suite.Require().NoError(json.Unmarshal(resp, &session))

	identity, err := suite.store.GetUser(suite.T().Context(), session.User.ID)
	suite.Require().NoError(err)

	return session.Token, identity
}

func (suite *serverSuite) do(method, path, token string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	}
	return suite.doRaw(method, path, token, reader)
}

func (suite *serverSuite) doRaw(method, path, token string, body io.Reader) (int, []byte) {
	req, err := http.NewRequestWithContext(suite.T().Context(), method, suite.srv.URL+path, body)
	suite.Require().NoError(err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := suite.srv.Client().Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	return resp.StatusCode, b
}

func randomCheckoutBody() map[string]any {
	return map[string]any{
		"cartItems": []map[string]any{
			{
				"productId": gofakeit.UUID(),
				"name":      gofakeit.ProductName(),
				"quantity":  2,
				"price":     10.25,
			},
		},
		"shippingInfo": map[string]any{
			"name":    gofakeit.Name(),
			"email":   gofakeit.Email(),
			"phone":   gofakeit.Phone(),
			"address": gofakeit.Street(),
		},
		"paymentMethod": "card",
		"paymentStatus": "paid",
		"total":         20.5,
	}
}
