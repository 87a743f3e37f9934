package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/property-leads-api/infrastructure/database/postgres"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar/calendarclient"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/crm"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/crm/crmclient"
	"github.com/vfg2006/property-leads-api/infrastructure/integrator/mailer"
	"github.com/vfg2006/property-leads-api/infrastructure/repository"
	"github.com/vfg2006/property-leads-api/internal/api"
	"github.com/vfg2006/property-leads-api/internal/config"
	"github.com/vfg2006/property-leads-api/internal/scheduler"
	"github.com/vfg2006/property-leads-api/internal/usecases/analytics"
	"github.com/vfg2006/property-leads-api/internal/usecases/authenticating"
	"github.com/vfg2006/property-leads-api/internal/usecases/booking"
	"github.com/vfg2006/property-leads-api/internal/usecases/clients"
	"github.com/vfg2006/property-leads-api/internal/usecases/listing"
	"github.com/vfg2006/property-leads-api/internal/usecases/tracking"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	log.L.WithFields(log.Fields{
		"env":      cfg.App.Env,
		"timezone": cfg.App.Timezone,
		"level":    cfg.App.LogLevel,
	}).Info("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	clientRepo := repository.NewClientRepository(pgConn)
	propertyRepo := repository.NewPropertyRepository(pgConn)
	consultationRepo := repository.NewConsultationRepository(pgConn)
	analyticsRepo := repository.NewAnalyticsRepository(pgConn)
	adminUserRepo := repository.NewAdminUserRepository(pgConn)

	calendarIntegrator := calendar.New(cfg, calendarclient.NewClient(cfg))
	crmIntegrator := crm.New(cfg, crmclient.NewClient(cfg))
	notifier := mailer.NewNotifier(cfg, mailer.NewSender(cfg))

	authenticator := authenticating.NewService(adminUserRepo, cfg)
	tracker := tracking.NewService(analyticsRepo, clientRepo, crmIntegrator, notifier)
	booker := booking.NewService(
		cfg,
		consultationRepo,
		clientRepo,
		propertyRepo,
		analyticsRepo,
		calendarIntegrator,
		crmIntegrator,
		notifier,
	)
	propertyService := listing.NewService(propertyRepo)
	clientService := clients.NewService(clientRepo)
	analyzer := analytics.NewService(cfg, analyticsRepo, clientRepo, consultationRepo, propertyRepo)

	maintenance := scheduler.NewMaintenanceService(consultationRepo, analyticsRepo, cfg)
	if err := maintenance.Start(ctx); err != nil {
		log.L.WithError(err).Error("failed to start maintenance scheduler")
	}

	server := api.New(cfg, api.Services{
		Tracker:       tracker,
		Booker:        booker,
		Properties:    propertyService,
		Clients:       clientService,
		Analyzer:      analyzer,
		Authenticator: authenticator,
		Maintenance:   maintenance,
		Database:      pgConn,
	})

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("server exited with error")
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("failed to connect to PostgreSQL")
	}

	log.L.Info("PostgreSQL connection established")
	return conn
}
