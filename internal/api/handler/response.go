package handler

import (
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/property-leads-api/pkg/apiErrors"
	"github.com/vfg2006/property-leads-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("failed to encode response")
	}
}

// decodeBody reads a JSON payload, answering 400 itself when it is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Debug("rejected malformed body")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
		return false
	}
	return true
}

// pathID parses the :id route parameter, answering 400 itself when invalid.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid id", map[string]string{"id": raw})
		return 0, false
	}
	return id, true
}

// queryParser collects the first malformed query parameter.
type queryParser struct {
	values map[string][]string
	err    error
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{values: r.URL.Query()}
}

func (p *queryParser) get(name string) string {
	if v := p.values[name]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func (p *queryParser) getFloat(name string) *float64 {
	raw := p.get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &v
}

func (p *queryParser) getInt(name string) int {
	raw := p.get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(name)
		return 0
	}
	return v
}

func (p *queryParser) getInt64(name string) *int64 {
	raw := p.get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &v
}

func (p *queryParser) getBool(name string) *bool {
	raw := p.get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(name)
		return nil
	}
	return &v
}

func (p *queryParser) fail(name string) {
	if p.err == nil {
		p.err = errors.Errorf("invalid query parameter %q", name)
	}
}

// check answers 400 when any parameter failed to parse.
func (p *queryParser) check(w http.ResponseWriter) bool {
	if p.err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, p.err.Error(), nil)
		return false
	}
	return true
}

// clientIP prefers the first X-Forwarded-For hop set by the load balancer.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
