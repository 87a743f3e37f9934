package calendarclient

import (
	"context"
	"errors"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	calendardomain "github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar/domain"
	"github.com/vfg2006/property-leads-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrNotConfigured = errors.New("calendar access token is not configured")

type ListEventsParams struct {
	TimeMin time.Time
	TimeMax time.Time
}

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type Client interface {
	ListEvents(ctx context.Context, params ListEventsParams) (*calendardomain.EventList, error)
	InsertEvent(ctx context.Context, event calendardomain.Event) (*calendardomain.Event, error)
}

type GoogleCalendarClient struct {
	httpClient *http.Client
	config     config.Calendar
}

func NewClient(cfg *config.Config) Client {
	return &GoogleCalendarClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg.Calendar,
	}
}
