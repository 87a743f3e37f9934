package handler

import (
	"net/http"

	"github.com/vfg2006/property-leads-api/internal/domain"
	"github.com/vfg2006/property-leads-api/internal/usecases/analytics"
)

// rangeQuery reads period=7d|30d|90d|12m or a custom from/to pair.
func rangeQuery(p *queryParser) analytics.RangeQuery {
	return analytics.RangeQuery{
		Period: p.get("period"),
		From:   p.get("from"),
		To:     p.get("to"),
	}
}

func GetDashboard(service analytics.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)

		stats, err := service.Dashboard(r.Context(), rangeQuery(p))
		if err != nil {
			writeServiceError(w, r, err, "dashboard")
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	}
}

func GetTimeseries(service analytics.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		metric := domain.Metric(p.get("metric"))
		if metric == "" {
			metric = domain.MetricSessions
		}
		granularity := domain.Granularity(p.get("granularity"))

		series, err := service.Timeseries(r.Context(), metric, rangeQuery(p), granularity)
		if err != nil {
			writeServiceError(w, r, err, "timeseries")
			return
		}

		writeJSON(w, r, http.StatusOK, series)
	}
}

func GetTrafficSources(service analytics.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		limit := p.getInt("limit")
		if !p.check(w) {
			return
		}

		sources, err := service.TrafficSources(r.Context(), rangeQuery(p), limit)
		if err != nil {
			writeServiceError(w, r, err, "traffic_sources")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"items": sources})
	}
}

func GetTopPages(service analytics.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := newQueryParser(r)
		limit := p.getInt("limit")
		if !p.check(w) {
			return
		}

		pages, err := service.TopPages(r.Context(), rangeQuery(p), limit)
		if err != nil {
			writeServiceError(w, r, err, "top_pages")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"items": pages})
	}
}

func GetVariants(service analytics.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variants, err := service.Variants(r.Context(), rangeQuery(newQueryParser(r)))
		if err != nil {
			writeServiceError(w, r, err, "variants")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"items": variants})
	}
}
