package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/property-leads-api/internal/scheduler"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

// MaintenanceRunner is the part of the maintenance scheduler the admin API drives.
//
//go:generate mockgen -source=cron.go -destination=mocks/cron_mock.go -package=mocks
type MaintenanceRunner interface {
	TriggerManualSync(job scheduler.Job) bool
	GetStatus() map[string]any
}

// RunCronJob starts a maintenance job in the background.
// Accepted types: all, consultations, analytics (maintenance is an alias of all).
func RunCronJob(runner MaintenanceRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "maintenance" {
			cronType = string(scheduler.JobAll)
		}

		job := scheduler.Job(cronType)
		if !job.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "unknown cron type, accepted: maintenance, all, consultations, analytics", nil)
			return
		}

		if !runner.TriggerManualSync(job) {
			apiErrors.WriteError(w, apiErrors.ErrConflict, "maintenance is already running", nil)
			return
		}

		log.ForContext(r.Context()).WithField("job", job).Info("cron job triggered manually")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "cron job started",
			"type":    job,
		})
	}
}

func GetCronStatus(runner MaintenanceRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]any{
			"maintenance": runner.GetStatus(),
		})
	}
}
