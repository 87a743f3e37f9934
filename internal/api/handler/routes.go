package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/property-leads-api/internal/api/handler/router"
	"github.com/vfg2006/property-leads-api/internal/usecases/analytics"
	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	"github.com/vfg2006/property-leads-api/internal/usecases/booking"
	"github.com/vfg2006/property-leads-api/internal/usecases/clients"
	"github.com/vfg2006/property-leads-api/internal/usecases/listing"
	"github.com/vfg2006/property-leads-api/internal/usecases/tracking"
	"github.com/vfg2006/property-leads-api/pkg/middleware"
)

type mw = func(http.Handler) http.Handler

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Tracking(service tracking.Tracker) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/track/session",
			Method:  http.MethodPost,
			Handler: StartSession(service),
		},
		{
			Path:    "/v1/track/pageview",
			Method:  http.MethodPost,
			Handler: RecordPageView(service),
		},
		{
			Path:    "/v1/track/event",
			Method:  http.MethodPost,
			Handler: RecordEvent(service),
		},
		{
			Path:    "/v1/track/lead",
			Method:  http.MethodPost,
			Handler: CaptureLead(service),
		},
	}
}

func Properties(service listing.PropertyService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/properties",
			Method:  http.MethodGet,
			Handler: ListProperties(service),
		},
		{
			Path:    "/v1/properties/:slug",
			Method:  http.MethodGet,
			Handler: GetPropertyBySlug(service),
		},
		{
			Path:    "/v1/properties-nearby",
			Method:  http.MethodGet,
			Handler: NearbyProperties(service),
		},
		{
			Path:        "/v1/admin/properties",
			Method:      http.MethodGet,
			Handler:     AdminListProperties(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/properties",
			Method:      http.MethodPost,
			Handler:     CreateProperty(service),
			Middlewares: []mw{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/admin/properties/:id",
			Method:      http.MethodGet,
			Handler:     GetProperty(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/properties/:id",
			Method:      http.MethodPut,
			Handler:     UpdateProperty(service),
			Middlewares: []mw{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/admin/properties/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteProperty(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}

func Consultations(service booking.Booker, loc *time.Location) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/consultations/slots",
			Method:  http.MethodGet,
			Handler: GetAvailableSlots(service),
		},
		{
			Path:    "/v1/consultations",
			Method:  http.MethodPost,
			Handler: BookConsultation(service),
		},
		{
			Path:        "/v1/admin/consultations",
			Method:      http.MethodGet,
			Handler:     ListConsultations(service, loc),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/consultations/:id",
			Method:      http.MethodGet,
			Handler:     GetConsultation(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/consultations/:id/status",
			Method:      http.MethodPut,
			Handler:     UpdateConsultationStatus(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
	}
}

func Clients(service clients.ClientService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/clients",
			Method:      http.MethodGet,
			Handler:     ListClients(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/clients/:id",
			Method:      http.MethodGet,
			Handler:     GetClient(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/clients/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteClient(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}

func Stats(service analytics.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/stats",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []mw{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/admin/stats/timeseries",
			Method:      http.MethodGet,
			Handler:     GetTimeseries(service),
			Middlewares: []mw{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/admin/stats/sources",
			Method:      http.MethodGet,
			Handler:     GetTrafficSources(service),
			Middlewares: []mw{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/admin/stats/pages",
			Method:      http.MethodGet,
			Handler:     GetTopPages(service),
			Middlewares: []mw{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/admin/stats/variants",
			Method:      http.MethodGet,
			Handler:     GetVariants(service),
			Middlewares: []mw{middleware.AdminOrManager()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/admin/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/admin/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
		{
			Path:        "/v1/admin/me/password",
			Method:      http.MethodPut,
			Handler:     ChangePassword(service),
			Middlewares: []mw{middleware.AllRoles()},
		},
	}
}

func Users(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}

func CronJobs(runner MaintenanceRunner) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/cron/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(runner),
			Middlewares: []mw{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/admin/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(runner),
			Middlewares: []mw{middleware.AdminOnly()},
		},
	}
}
