package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/property-leads-api/internal/api/handler/mocks"
	"github.com/vfg2006/property-leads-api/internal/api/handler/router"
	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/internal/scheduler"
	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	authMocks "github.com/vfg2006/property-leads-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/property-leads-api/internal/usecases/booking"
	bookingMocks "github.com/vfg2006/property-leads-api/internal/usecases/booking/mocks"
	"github.com/vfg2006/property-leads-api/internal/usecases/listing"
	listingMocks "github.com/vfg2006/property-leads-api/internal/usecases/listing/mocks"
	"github.com/vfg2006/property-leads-api/internal/usecases/tracking"
	trackingMocks "github.com/vfg2006/property-leads-api/internal/usecases/tracking/mocks"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
	"github.com/vfg2006/property-leads-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func serve(t *testing.T, routes []router.Route, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func asAdmin(req *http.Request, roleID int) *http.Request {
	return req.WithContext(middleware.WithClaims(req.Context(), &domain.Claims{UserID: 7, UserRoleID: roleID}))
}

func TestCaptureLead(t *testing.T) {
	log.SetupTestLogger()

	t.Run("invalid email answers 400 VAL_004", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := trackingMocks.NewMockTracker(ctrl)
		tracker.EXPECT().CaptureLead(gomock.Any(), gomock.Any()).
			Return(nil, tracking.NewTrackingError(tracking.ErrInvalidEmail, apiErrors.ErrInvalidEmail, "email"))

		req := httptest.NewRequest(http.MethodPost, "/v1/track/lead", bytes.NewBufferString(`{"first_name":"Sara","email":"not-an-email"}`))
		rec := serve(t, Tracking(tracker), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidEmail, decodeError(t, rec).Code)
	})

	t.Run("created lead", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := trackingMocks.NewMockTracker(ctrl)
		tracker.EXPECT().CaptureLead(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req *domain.LeadRequest) (*domain.Client, error) {
				assert.Equal(t, "sara@example.com", req.Email)
				return &domain.Client{ID: 42, Email: req.Email}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/track/lead", bytes.NewBufferString(`{"first_name":"Sara","email":"sara@example.com"}`))
		rec := serve(t, Tracking(tracker), req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"success":true,"client_id":42}`, rec.Body.String())
	})

	t.Run("malformed body answers 400 VAL_001", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := trackingMocks.NewMockTracker(ctrl)

		req := httptest.NewRequest(http.MethodPost, "/v1/track/lead", bytes.NewBufferString(`{"first_name":`))
		rec := serve(t, Tracking(tracker), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("unknown error is hidden behind 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := trackingMocks.NewMockTracker(ctrl)
		tracker.EXPECT().CaptureLead(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset by peer"))

		req := httptest.NewRequest(http.MethodPost, "/v1/track/lead", bytes.NewBufferString(`{"first_name":"Sara","email":"sara@example.com"}`))
		rec := serve(t, Tracking(tracker), req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrInternalServer, body.Code)
		assert.NotContains(t, body.Message, "connection reset")
	})
}

func TestStartSessionCapturesClientInfo(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	tracker := trackingMocks.NewMockTracker(ctrl)

	tracker.EXPECT().StartSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *domain.SessionRequest) (*domain.Session, error) {
			assert.Equal(t, "203.0.113.9", req.IPAddress)
			assert.Equal(t, "test-agent", req.UserAgent)
			return &domain.Session{SessionID: "4b0f6a4e-4a43-4b8c-9d4b-1f0c1d6f9a11"}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/v1/track/session", bytes.NewBufferString(`{"landing_page":"/offices"}`))
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	req.Header.Set("User-Agent", "test-agent")
	rec := serve(t, Tracking(tracker), req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBookConsultation(t *testing.T) {
	log.SetupTestLogger()
	body := `{"first_name":"Omar","email":"omar@example.com","phone":"+971500000000","date":"2025-03-12","time":"11:00"}`

	t.Run("taken slot answers 409 BKG_001", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booker := bookingMocks.NewMockBooker(ctrl)
		booker.EXPECT().BookConsultation(gomock.Any(), gomock.Any()).
			Return(nil, booking.NewBookingError(booking.ErrSlotTaken, apiErrors.ErrSlotTaken, "11:00"))

		req := httptest.NewRequest(http.MethodPost, "/v1/consultations", bytes.NewBufferString(body))
		rec := serve(t, Consultations(booker, time.UTC), req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrSlotTaken, decodeError(t, rec).Code)
	})

	t.Run("misaligned slot answers 400 BKG_002", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booker := bookingMocks.NewMockBooker(ctrl)
		booker.EXPECT().BookConsultation(gomock.Any(), gomock.Any()).
			Return(nil, booking.NewBookingError(booking.ErrSlotUnavailable, apiErrors.ErrSlotUnavailable, "11:30"))

		req := httptest.NewRequest(http.MethodPost, "/v1/consultations", bytes.NewBufferString(body))
		rec := serve(t, Consultations(booker, time.UTC), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrSlotUnavailable, decodeError(t, rec).Code)
	})

	t.Run("booked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booker := bookingMocks.NewMockBooker(ctrl)
		booker.EXPECT().BookConsultation(gomock.Any(), gomock.Any()).
			Return(&domain.Consultation{ID: 3, Reference: "CNS-ABCD2345"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/consultations", bytes.NewBufferString(body))
		rec := serve(t, Consultations(booker, time.UTC), req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reference":"CNS-ABCD2345"`)
	})
}

func TestGetAvailableSlots(t *testing.T) {
	log.SetupTestLogger()

	t.Run("date is required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booker := bookingMocks.NewMockBooker(ctrl)

		rec := serve(t, Consultations(booker, time.UTC), httptest.NewRequest(http.MethodGet, "/v1/consultations/slots", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
	})

	t.Run("fallback slots still answer 200", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booker := bookingMocks.NewMockBooker(ctrl)
		booker.EXPECT().GetAvailableSlots(gomock.Any(), "2025-03-12").
			Return(&domain.AvailableSlots{Date: "2025-03-12", Fallback: true, Slots: []domain.Slot{{Time: "10:00"}}}, nil)

		rec := serve(t, Consultations(booker, time.UTC), httptest.NewRequest(http.MethodGet, "/v1/consultations/slots?date=2025-03-12", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"fallback":true`)
	})
}

func TestListConsultationsFilters(t *testing.T) {
	log.SetupTestLogger()
	dubai := time.FixedZone("GST", 4*3600)

	t.Run("parses window in business timezone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booker := bookingMocks.NewMockBooker(ctrl)
		booker.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filters domain.ConsultationFilters) (*domain.Page[*domain.Consultation], error) {
				require.NotNil(t, filters.Status)
				assert.Equal(t, domain.ConsultationStatusScheduled, *filters.Status)
				assert.True(t, time.Date(2025, 3, 1, 0, 0, 0, 0, dubai).Equal(*filters.From))
				assert.Equal(t, 31, filters.To.Day())
				assert.Equal(t, 23, filters.To.Hour())
				return domain.NewPage[*domain.Consultation](nil, 0, filters.Pagination), nil
			})

		req := asAdmin(httptest.NewRequest(http.MethodGet, "/v1/admin/consultations?status=scheduled&from=2025-03-01&to=2025-03-31", nil), domain.RoleAgent)
		rec := serve(t, Consultations(booker, dubai), req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		booker := bookingMocks.NewMockBooker(ctrl)

		req := asAdmin(httptest.NewRequest(http.MethodGet, "/v1/admin/consultations?status=pending", nil), domain.RoleAgent)
		rec := serve(t, Consultations(booker, dubai), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})
}

func TestProperties(t *testing.T) {
	log.SetupTestLogger()

	t.Run("public list hides drafts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)
		svc.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filters domain.PropertyFilters) (*domain.Page[*domain.Property], error) {
				assert.True(t, filters.PublicOnly)
				require.NotNil(t, filters.MinPrice)
				assert.Equal(t, 1000000.0, *filters.MinPrice)
				return domain.NewPage[*domain.Property](nil, 0, filters.Pagination), nil
			})

		rec := serve(t, Properties(svc), httptest.NewRequest(http.MethodGet, "/v1/properties?min_price=1000000", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("public list rejects draft status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)

		rec := serve(t, Properties(svc), httptest.NewRequest(http.MethodGet, "/v1/properties?status=draft", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad number answers 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)

		rec := serve(t, Properties(svc), httptest.NewRequest(http.MethodGet, "/v1/properties?min_price=lots", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})

	t.Run("unknown slug answers 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)
		svc.EXPECT().GetPublic(gomock.Any(), "jlt-office").
			Return(nil, listing.NewListingError(listing.ErrPropertyNotFound, apiErrors.ErrNotFound, "jlt-office"))

		rec := serve(t, Properties(svc), httptest.NewRequest(http.MethodGet, "/v1/properties/jlt-office", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("nearby requires coordinates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)

		rec := serve(t, Properties(svc), httptest.NewRequest(http.MethodGet, "/v1/properties-nearby?lat=25.2", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
	})

	t.Run("nearby forwards query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)
		svc.EXPECT().Nearby(gomock.Any(), listing.NearbyQuery{Latitude: 25.2, Longitude: 55.27, RadiusKm: 3, Limit: 5}).
			Return([]domain.NearbyProperty{}, nil)

		rec := serve(t, Properties(svc), httptest.NewRequest(http.MethodGet, "/v1/properties-nearby?lat=25.2&lng=55.27&radius_km=3&limit=5", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("agents cannot delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)

		req := asAdmin(httptest.NewRequest(http.MethodDelete, "/v1/admin/properties/5", nil), domain.RoleAgent)
		rec := serve(t, Properties(svc), req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deletes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)
		svc.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

		req := asAdmin(httptest.NewRequest(http.MethodDelete, "/v1/admin/properties/5", nil), domain.RoleAdmin)
		rec := serve(t, Properties(svc), req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := listingMocks.NewMockPropertyService(ctrl)

		req := asAdmin(httptest.NewRequest(http.MethodGet, "/v1/admin/properties/abc", nil), domain.RoleAdmin)
		rec := serve(t, Properties(svc), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	log.SetupTestLogger()

	t.Run("disabled user looks like bad credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := authMocks.NewMockAuthenticator(ctrl)
		auth.EXPECT().Login(gomock.Any(), "ops@example.com", "secret").
			Return(nil, authenticating.NewUserAuthError(authenticating.ErrUserDisabled, apiErrors.ErrUserDisabled, 3, ""))

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", bytes.NewBufferString(`{"email":"ops@example.com","password":"secret"}`))
		rec := serve(t, Authentication(auth), req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidCredentials, decodeError(t, rec).Code)
	})

	t.Run("returns token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := authMocks.NewMockAuthenticator(ctrl)
		auth.EXPECT().Login(gomock.Any(), "ops@example.com", "Secret#123").
			Return(&authenticating.LoginResult{Token: "jwt-token", User: &domain.AdminUser{ID: 3}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", bytes.NewBufferString(`{"email":"ops@example.com","password":"Secret#123"}`))
		rec := serve(t, Authentication(auth), req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token":"jwt-token"`)
	})
}

func TestUsers(t *testing.T) {
	log.SetupTestLogger()

	t.Run("create validates email before the usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := authMocks.NewMockAuthenticator(ctrl)

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/v1/admin/users", bytes.NewBufferString(`{"name":"Ops","email":"nope","password":"Secret#123"}`)), domain.RoleAdmin)
		rec := serve(t, Users(auth), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidEmail, decodeError(t, rec).Code)
	})

	t.Run("admin cannot disable self", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := authMocks.NewMockAuthenticator(ctrl)

		req := asAdmin(httptest.NewRequest(http.MethodPut, "/v1/admin/users/7", bytes.NewBufferString(`{"active":false}`)), domain.RoleAdmin)
		rec := serve(t, Users(auth), req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("managers cannot list users", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := authMocks.NewMockAuthenticator(ctrl)

		req := asAdmin(httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil), domain.RoleManager)
		rec := serve(t, Users(auth), req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCronJobs(t *testing.T) {
	log.SetupTestLogger()

	t.Run("maintenance alias triggers all jobs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockMaintenanceRunner(ctrl)
		runner.EXPECT().TriggerManualSync(scheduler.JobAll).Return(true)

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/v1/admin/cron/maintenance", nil), domain.RoleAdmin)
		rec := serve(t, CronJobs(runner), req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("already running answers 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockMaintenanceRunner(ctrl)
		runner.EXPECT().TriggerManualSync(scheduler.JobPurgeAnalytics).Return(false)

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/v1/admin/cron/analytics", nil), domain.RoleAdmin)
		rec := serve(t, CronJobs(runner), req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown type answers 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockMaintenanceRunner(ctrl)

		req := asAdmin(httptest.NewRequest(http.MethodPost, "/v1/admin/cron/reindex", nil), domain.RoleAdmin)
		rec := serve(t, CronJobs(runner), req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runner := mocks.NewMockMaintenanceRunner(ctrl)
		runner.EXPECT().GetStatus().Return(map[string]any{"running": false})

		req := asAdmin(httptest.NewRequest(http.MethodGet, "/v1/admin/cron/status", nil), domain.RoleAdmin)
		rec := serve(t, CronJobs(runner), req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"maintenance":{"running":false}}`, rec.Body.String())
	})
}

func TestHealthcheck(t *testing.T) {
	log.SetupTestLogger()

	rec := serve(t, Healthcheck(nil), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = serve(t, Healthcheck(nil), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
