package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/domain"
	analyticsMocks "github.com/vfg2006/property-leads-api/internal/usecases/analytics/mocks"
	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	authMocks "github.com/vfg2006/property-leads-api/internal/usecases/authenticating/mocks"
	bookingMocks "github.com/vfg2006/property-leads-api/internal/usecases/booking/mocks"
	clientsMocks "github.com/vfg2006/property-leads-api/internal/usecases/clients/mocks"
	listingMocks "github.com/vfg2006/property-leads-api/internal/usecases/listing/mocks"
	trackingMocks "github.com/vfg2006/property-leads-api/internal/usecases/tracking/mocks"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	handler  http.Handler
	auth     *authMocks.MockAuthenticator
	analyzer *analyticsMocks.MockAnalyzer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	cfg := &config.Config{
		App:    config.App{Location: time.UTC},
		Server: config.Server{AllowedOrigins: []string{"https://consultancy.example"}},
	}

	f := fixture{
		auth:     authMocks.NewMockAuthenticator(ctrl),
		analyzer: analyticsMocks.NewMockAnalyzer(ctrl),
	}
	f.handler = NewHandler(cfg, Services{
		Tracker:       trackingMocks.NewMockTracker(ctrl),
		Booker:        bookingMocks.NewMockBooker(ctrl),
		Properties:    listingMocks.NewMockPropertyService(ctrl),
		Clients:       clientsMocks.NewMockClientService(ctrl),
		Analyzer:      f.analyzer,
		Authenticator: f.auth,
	})
	return f
}

func TestAdminRoutesRequireToken(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidToken)
}

func TestAdminRoutesRejectBadToken(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().ValidateToken("expired").
		Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleIsEnforcedAfterAuthentication(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().ValidateToken("agent-token").
		Return(&domain.Claims{UserID: 9, UserRoleID: domain.RoleAgent}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer agent-token")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardForManager(t *testing.T) {
	f := newFixture(t)
	f.auth.EXPECT().ValidateToken("manager-token").
		Return(&domain.Claims{UserID: 2, UserRoleID: domain.RoleManager}, nil)
	f.analyzer.EXPECT().Dashboard(gomock.Any(), gomock.Any()).Return(&domain.DashboardStats{Sessions: 120, Conversions: 6, ConversionRate: 5}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats?period=7d", nil)
	req.Header.Set("Authorization", "Bearer manager-token")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"conversion_rate":5`)
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCorsPreflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/track/pageview", nil)
	req.Header.Set("Origin", "https://consultancy.example")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://consultancy.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/track/pageview", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
