package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/cryptship/internal/app/handlers"
	"github.com/linemk/cryptship/internal/domain/models"
	"github.com/linemk/cryptship/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/cryptship/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testCookie = handlers.SessionCookie{Name: "auth_token", TTL: time.Hour}

// fakeAuthService - фиктивная реализация для тестирования.
type fakeAuthService struct {
	user   *models.User
	token  string
	err    error
	called bool
	optIn  bool
}

func (f *fakeAuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	f.called = true
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	f.called = true
	return f.user, f.token, f.err
}

func (f *fakeAuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	f.called = true
	return f.user, f.err
}

func (f *fakeAuthService) SetReminder(ctx context.Context, userID int64, optIn bool) error {
	f.called = true
	f.optIn = optIn
	return f.err
}

type fakeResetService struct {
	code string
	err  error
}

func (f *fakeResetService) RequestReset(ctx context.Context, email string) (string, error) {
	return f.code, f.err
}

func (f *fakeResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return f.err
}

type fakeProgressService struct {
	view      *service.ProgressView
	err       error
	lastChain string
}

func (f *fakeProgressService) GetProgress(ctx context.Context, userID int64) (*service.ProgressView, error) {
	return f.view, f.err
}

func (f *fakeProgressService) SetProgress(ctx context.Context, userID int64, chain string, waypoint int, completed bool) error {
	f.lastChain = chain
	return f.err
}

func (f *fakeProgressService) ResetChain(ctx context.Context, userID int64, chain string) error {
	f.lastChain = chain
	return f.err
}

type fakeMarketService struct {
	snapshot *models.MarketSnapshot
	err      error
}

func (f *fakeMarketService) GetSnapshot(ctx context.Context) (*models.MarketSnapshot, error) {
	return f.snapshot, f.err
}

type fakeChartService struct {
	coin   string
	period service.Period
	err    error
}

func (f *fakeChartService) GetChart(ctx context.Context, coin string, period service.Period) (*models.ChartSeries, error) {
	f.coin = coin
	f.period = period
	if f.err != nil {
		return nil, f.err
	}
	return &models.ChartSeries{Coin: coin, Period: period.Key, Source: service.ChartSourceUpstream}, nil
}

type fakeNewsService struct {
	scope string
	err   error
}

func (f *fakeNewsService) GetHeadlines(ctx context.Context, scope string) (*models.NewsResult, error) {
	f.scope = scope
	if f.err != nil {
		return nil, f.err
	}
	return &models.NewsResult{Scope: scope, Provider: service.NewsProviderRSS}, nil
}

func withUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), jwtmiddleware.UserIDKey, userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterHandler_Success(t *testing.T) {
	fakeSvc := &fakeAuthService{user: &models.User{ID: 7, Email: "a@b.com"}, token: "test-token"}
	handler := handlers.RegisterHandler(testLogger(), fakeSvc, testCookie)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, postJSON("/api/auth/register", `{"email":"a@b.com","password":"secret1"}`))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp handlers.AuthResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "a@b.com", resp.User.Email)
	assert.Equal(t, "Account created successfully", resp.Message)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Equal(t, "test-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestRegisterHandler_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "short password", body: `{"email":"a@b.com","password":"12345"}`, want: "Password must be at least 6 characters"},
		{name: "missing email", body: `{"password":"secret1"}`, want: "Email and password are required"},
		{name: "bad email", body: `{"email":"nope","password":"secret1"}`, want: "Invalid email format"},
		{name: "invalid json", body: `{"email":`, want: "Invalid request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeSvc := &fakeAuthService{}
			handler := handlers.RegisterHandler(testLogger(), fakeSvc, testCookie)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, postJSON("/api/auth/register", tt.body))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.want, errorBody(t, rr))
			assert.False(t, fakeSvc.called, "service must not be called on invalid input")
		})
	}
}

func TestRegisterHandler_Duplicate(t *testing.T) {
	fakeSvc := &fakeAuthService{err: service.ErrEmailTaken}
	handler := handlers.RegisterHandler(testLogger(), fakeSvc, testCookie)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, postJSON("/api/auth/register", `{"email":"a@b.com","password":"secret1"}`))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Email already registered", errorBody(t, rr))
	assert.Empty(t, rr.Result().Cookies())
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	fakeSvc := &fakeAuthService{err: service.ErrInvalidCredentials}
	handler := handlers.LoginHandler(testLogger(), fakeSvc, testCookie)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, postJSON("/api/auth/login", `{"email":"a@b.com","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid email or password", errorBody(t, rr))
}

func TestLoginHandler_InternalError(t *testing.T) {
	fakeSvc := &fakeAuthService{err: assert.AnError}
	handler := handlers.LoginHandler(testLogger(), fakeSvc, testCookie)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, postJSON("/api/auth/login", `{"email":"a@b.com","password":"secret1"}`))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Login failed", errorBody(t, rr))
}

func TestLoginHandler_SetsCookie(t *testing.T) {
	fakeSvc := &fakeAuthService{user: &models.User{ID: 1, Email: "a@b.com"}, token: "tok"}
	handler := handlers.LoginHandler(testLogger(), fakeSvc, handlers.SessionCookie{Name: "sid", Secure: true, TTL: time.Minute})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, postJSON("/api/auth/login", `{"email":"a@b.com","password":"secret1"}`))

	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].Secure)
}

func TestMeHandler(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	fakeSvc := &fakeAuthService{user: &models.User{ID: 3, Email: "me@x.io", CreatedAt: created, ReminderOptIn: true}}
	handler := handlers.MeHandler(testLogger(), fakeSvc)

	t.Run("unauthorized", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Not authenticated", errorBody(t, rr))
	})

	t.Run("success", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), 3))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp handlers.MeResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, int64(3), resp.User.ID)
		assert.Equal(t, "me@x.io", resp.User.Email)
		assert.True(t, resp.User.CreatedAt.Equal(created))
		assert.True(t, resp.User.ReminderOptIn)
	})

	t.Run("deleted user", func(t *testing.T) {
		handler := handlers.MeHandler(testLogger(), &fakeAuthService{err: service.ErrUnauthorized})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), 3))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	handler := handlers.LogoutHandler(testLogger(), testCookie)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestReminderHandler(t *testing.T) {
	fakeSvc := &fakeAuthService{}
	handler := handlers.ReminderHandler(testLogger(), fakeSvc)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withUser(postJSON("/api/auth/reminders", `{"optIn":true}`), 1))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, fakeSvc.optIn)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, withUser(postJSON("/api/auth/reminders", `{}`), 1))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRequestResetHandler(t *testing.T) {
	t.Run("dev code exposed", func(t *testing.T) {
		handler := handlers.RequestResetHandler(testLogger(), &fakeResetService{code: "123456"}, true)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, postJSON("/api/auth/request-reset", `{"email":"a@b.com"}`))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp handlers.RequestResetResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, service.ResetRequestMessage, resp.Message)
		assert.Equal(t, "123456", resp.DevCode)
	})

	t.Run("dev code hidden in prod", func(t *testing.T) {
		handler := handlers.RequestResetHandler(testLogger(), &fakeResetService{code: "123456"}, false)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, postJSON("/api/auth/request-reset", `{"email":"a@b.com"}`))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "devCode")
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		handler := handlers.RequestResetHandler(testLogger(), &fakeResetService{}, true)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, postJSON("/api/auth/request-reset", `{"email":"ghost@b.com"}`))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp handlers.RequestResetResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, service.ResetRequestMessage, resp.Message)
		assert.Empty(t, resp.DevCode)
	})

	t.Run("rate limited", func(t *testing.T) {
		handler := handlers.RequestResetHandler(testLogger(), &fakeResetService{err: service.ErrTooManyResetRequests}, true)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, postJSON("/api/auth/request-reset", `{"email":"a@b.com"}`))

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "Too many reset requests. Please wait 10 minutes.", errorBody(t, rr))
	})

	t.Run("missing email", func(t *testing.T) {
		handler := handlers.RequestResetHandler(testLogger(), &fakeResetService{}, true)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, postJSON("/api/auth/request-reset", `{}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email is required", errorBody(t, rr))
	})
}

func TestResetPasswordHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "success", body: `{"email":"a@b.com","code":"123456","newPassword":"newpass"}`, wantStatus: http.StatusOK},
		{name: "missing fields", body: `{"email":"a@b.com"}`, wantStatus: http.StatusBadRequest, wantMsg: "Email, code, and new password are required"},
		{name: "short password", body: `{"email":"a@b.com","code":"123456","newPassword":"123"}`, wantStatus: http.StatusBadRequest, wantMsg: "Password must be at least 6 characters"},
		{name: "malformed code", body: `{"email":"a@b.com","code":"12ab","newPassword":"newpass"}`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid or expired reset code"},
		{name: "unknown email", body: `{"email":"x@b.com","code":"123456","newPassword":"newpass"}`, err: service.ErrInvalidEmailOrCode, wantStatus: http.StatusBadRequest, wantMsg: "Invalid email or code"},
		{name: "used code", body: `{"email":"a@b.com","code":"123456","newPassword":"newpass"}`, err: service.ErrInvalidResetCode, wantStatus: http.StatusBadRequest, wantMsg: "Invalid or expired reset code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.ResetPasswordHandler(testLogger(), &fakeResetService{err: tt.err})
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, postJSON("/api/auth/reset-password", tt.body))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorBody(t, rr))
			}
		})
	}
}

func TestGetProgressHandler(t *testing.T) {
	fakeSvc := &fakeProgressService{view: &service.ProgressView{
		Chains: map[string]service.ChainProgress{
			"sol": {"1": true},
			"eth": {},
			"btc": {},
		},
		Next: map[string]int{"sol": 2, "eth": 1, "btc": 1},
	}}
	handler := handlers.GetProgressHandler(testLogger(), fakeSvc)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/progress", nil), 1))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, true, body["sol"]["1"])
	assert.Empty(t, body["eth"])
	assert.Contains(t, body, "btc")
	// в теле только цепочки
	assert.Len(t, body, 3)
	assert.NotContains(t, body, "next")
}

func TestNextWaypointsHandler(t *testing.T) {
	fakeSvc := &fakeProgressService{view: &service.ProgressView{
		Chains: map[string]service.ChainProgress{"sol": {"1": true}, "eth": {}, "btc": {}},
		Next:   map[string]int{"sol": 2, "eth": 1, "btc": 0},
	}}
	handler := handlers.NextWaypointsHandler(testLogger(), fakeSvc)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/progress/next", nil), 1))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]int
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, map[string]int{"sol": 2, "eth": 1, "btc": 0}, body)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/progress/next", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetProgressHandler_Unauthorized(t *testing.T) {
	handler := handlers.GetProgressHandler(testLogger(), &fakeProgressService{})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/progress", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSetProgressHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "success", body: `{"chain":"sol","waypoint":1,"completed":true}`, wantStatus: http.StatusOK},
		{name: "missing waypoint", body: `{"chain":"sol"}`, wantStatus: http.StatusBadRequest, wantMsg: "Chain and waypoint required"},
		{name: "invalid chain", body: `{"chain":"doge","waypoint":1}`, err: service.ErrInvalidChain, wantStatus: http.StatusBadRequest, wantMsg: "Invalid chain"},
		{name: "invalid waypoint", body: `{"chain":"sol","waypoint":7}`, err: service.ErrInvalidWaypoint, wantStatus: http.StatusBadRequest, wantMsg: "Invalid waypoint"},
		{name: "storage failure", body: `{"chain":"sol","waypoint":2}`, err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.SetProgressHandler(testLogger(), &fakeProgressService{err: tt.err})
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, withUser(postJSON("/api/progress", tt.body), 1))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errorBody(t, rr))
			}
		})
	}
}

func TestResetProgressHandler(t *testing.T) {
	fakeSvc := &fakeProgressService{}
	handler := handlers.ResetProgressHandler(testLogger(), fakeSvc)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/progress/eth", nil), "chain", "eth")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, withUser(req, 1))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "eth", fakeSvc.lastChain)
}

func TestMarketSnapshotHandler(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		handler := handlers.MarketSnapshotHandler(testLogger(), &fakeMarketService{err: service.ErrMarketUnavailable})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/market-snapshot", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		var body map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, false, body["ok"])
		assert.Equal(t, "API is temporarily down. Try again later.", body["error"])
		assert.Contains(t, body, "lastUpdated")
		assert.Nil(t, body["lastUpdated"])
	})

	t.Run("success", func(t *testing.T) {
		price := 64000.0
		snap := &models.MarketSnapshot{
			OK:           true,
			Coins:        map[string]*models.CoinQuote{"btc": {Price: &price}},
			ProviderUsed: service.ProviderCoinbase,
		}
		handler := handlers.MarketSnapshotHandler(testLogger(), &fakeMarketService{snapshot: snap})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/market-snapshot", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var body models.MarketSnapshot
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.True(t, body.OK)
		assert.Equal(t, 64000.0, *body.Coins["btc"].Price)
		assert.Nil(t, body.Coins["btc"].Change24h)
	})
}

func TestChartDataHandler(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fakeSvc := &fakeChartService{}
		handler := handlers.ChartDataHandler(testLogger(), fakeSvc)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chart-data", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "btc", fakeSvc.coin)
		assert.Equal(t, "7d", fakeSvc.period.Key)
	})

	t.Run("days parameter", func(t *testing.T) {
		fakeSvc := &fakeChartService{}
		handler := handlers.ChartDataHandler(testLogger(), fakeSvc)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chart-data?coin=sol&days=90", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "sol", fakeSvc.coin)
		assert.Equal(t, 90, fakeSvc.period.Days)
	})

	t.Run("invalid period", func(t *testing.T) {
		handler := handlers.ChartDataHandler(testLogger(), &fakeChartService{})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chart-data?period=5m", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid coin", func(t *testing.T) {
		handler := handlers.ChartDataHandler(testLogger(), &fakeChartService{err: service.ErrInvalidCoin})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chart-data?coin=doge", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestNewsHandler(t *testing.T) {
	fakeSvc := &fakeNewsService{}
	handler := handlers.NewsHandler(testLogger(), fakeSvc)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "global", fakeSvc.scope)

	handler = handlers.NewsHandler(testLogger(), &fakeNewsService{err: service.ErrInvalidScope})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/news?scope=doge", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid scope. Use: global, btc, eth, sol", errorBody(t, rr))
}

func TestCatalogHandlers(t *testing.T) {
	rr := httptest.NewRecorder()
	handlers.ChainsHandler(testLogger()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chains", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var chains handlers.ChainsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&chains))
	assert.Len(t, chains.Chains, 3)

	rr = httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/chains/eth/waypoints", nil), "chain", "eth")
	handlers.WaypointsHandler(testLogger()).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var wps handlers.WaypointsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&wps))
	assert.Len(t, wps.Waypoints, 6)

	rr = httptest.NewRecorder()
	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/chains/doge/waypoints", nil), "chain", "doge")
	handlers.WaypointsHandler(testLogger()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
