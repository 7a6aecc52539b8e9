package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eclipse-sw360/sw360-search/internal/domain"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/request"
	"github.com/eclipse-sw360/sw360-search/internal/domain/search/result"
	"github.com/eclipse-sw360/sw360-search/internal/logger"
	gen "github.com/eclipse-sw360/sw360-search/internal/transport/generated"
	healthuc "github.com/eclipse-sw360/sw360-search/internal/usecase/health"
	searchuc "github.com/eclipse-sw360/sw360-search/internal/usecase/search"
)

// Trusted-proxy headers carrying the requesting user.
const (
	HeaderUserEmail      = "X-SW360-User-Email"
	HeaderUserDepartment = "X-SW360-User-Department"
	HeaderUserGroup      = "X-SW360-User-Group"
)

// maxBodyBytes caps the POST search body.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, gen.ErrorResponseCodeInvalidInput),
	}
	return s
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request, params gen.SearchParams) {
	var mask []string
	if params.Type != nil {
		mask = *params.Type
	}

	req, err := request.New(params.Text, mask)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	user := domain.User{
		Email:      deref(params.XSW360UserEmail),
		Department: deref(params.XSW360UserDepartment),
		Group:      domain.UserGroup(deref(params.XSW360UserGroup)),
	}
	s.runSearch(w, r, req, user)
}

// SearchFiltered handles POST /api/v1/search.
func (s *Server) SearchFiltered(w http.ResponseWriter, r *http.Request) {
	var body gen.SearchFilteredJSONRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "invalid JSON body")
		return
	}

	var mask []string
	if body.TypeMask != nil {
		mask = *body.TypeMask
	}
	req, err := request.New(body.Text, mask)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	s.runSearch(w, r, req, userFromGen(body.User))
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, req request.Request, user domain.User) {
	results, err := s.search.SearchFiltered(r.Context(), req, user)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]gen.SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToGen(&results[i])
	}
	writeJSON(w, http.StatusOK, gen.SearchResponse{Results: items, Total: len(items)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks)
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	status := gen.HealthResponseStatus(report.Status)
	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: status,
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ParamErrorHandler answers parameter binding failures from the generated router.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "invalid request")
}

// encodeFailureBody is sent when a response value cannot be encoded, e.g. a NaN score.
var encodeFailureBody = []byte(`{"code":"internal_error","message":"internal error"}` + "\n")

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.Write(encodeFailureBody)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}

	fields := []zap.Field{zap.Error(err)}
	var be *domain.BackendError
	if errors.As(err, &be) {
		fields = append(fields, zap.String("realm", be.Realm))
	}
	log.Error("internal error", fields...)
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}

func userFromGen(u *gen.User) domain.User {
	if u == nil {
		return domain.User{}
	}
	return domain.User{
		Email:      deref(u.Email),
		Department: deref(u.Department),
		Group:      domain.UserGroup(deref(u.UserGroup)),
	}
}

func searchResultToGen(r *result.Result) gen.SearchResultItem {
	return gen.SearchResultItem{
		Id:    r.ID(),
		Name:  r.Name(),
		Type:  r.Type(),
		Score: r.Score(),
		Realm: r.Realm(),
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
