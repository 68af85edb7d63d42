// Package server exposes the console as a JSON API: login, lead roster
// views, status/edit writes, and CSV upload. All lead state lives at the
// automation backend; handlers are thin glue over roster and ingest.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stellar-voice/leads-console/internal/auth"
	"github.com/stellar-voice/leads-console/internal/config"
	"github.com/stellar-voice/leads-console/internal/ingest"
	"github.com/stellar-voice/leads-console/internal/lead"
	"github.com/stellar-voice/leads-console/internal/roster"
	"github.com/stellar-voice/leads-console/pkg/webhook"
)

// Server wires the console handlers together.
type Server struct {
	cfg          *config.Config
	sessions     *auth.Sessions
	roster       *roster.Roster
	client       webhook.Client
	loginLimiter *rate.Limiter
	now          func() time.Time
}

// New creates a console server.
func New(cfg *config.Config, sessions *auth.Sessions, client webhook.Client) *Server {
	perMin := cfg.Server.LoginRatePerMin
	if perMin <= 0 {
		perMin = 10
	}
	return &Server{
		cfg:          cfg,
		sessions:     sessions,
		roster:       roster.New(client),
		client:       client,
		loginLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		now:          time.Now,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/auth", s.handleLogin)
	r.Delete("/api/auth", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)
		r.Get("/api/leads", s.handleLeads)
		r.Post("/api/leads/toggle", s.handleToggle)
		r.Post("/api/leads/update", s.handleUpdate)
		r.Post("/api/upload", s.handleUpload)
		r.Get("/api/template", s.handleTemplate)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "too many login attempts, slow down")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.sessions.Login(req.Email, req.Password)
	if err != nil {
		zap.L().Warn("login rejected", zap.String("email", req.Email))
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	http.SetCookie(w, s.sessions.SessionCookie(token, r.TLS != nil))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearCookie(r.TLS != nil))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// leadsResponse is one roster view plus the tab counts over the full list.
type leadsResponse struct {
	Leads  []*lead.Record `json:"leads"`
	Counts lead.TabCounts `json:"counts"`
}

func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	if err := s.roster.Refresh(r.Context()); err != nil {
		writeBackendError(w, err)
		return
	}

	q := r.URL.Query()
	opts := lead.FilterOptions{
		Tab:       lead.ParseTab(q.Get("filter")),
		Search:    q.Get("search"),
		Date:      q.Get("date"),
		Ascending: q.Get("sort") == "asc",
	}

	leads, counts := s.roster.Snapshot(opts)
	if leads == nil {
		leads = []*lead.Record{}
	}
	writeJSON(w, http.StatusOK, leadsResponse{Leads: leads, Counts: counts})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "phoneNumber is required")
		return
	}

	status, err := s.roster.ToggleStatus(r.Context(), req.PhoneNumber)
	if err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"callStatus": status})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PhoneNumber string            `json:"phoneNumber"`
		Updates     map[string]string `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PhoneNumber == "" {
		writeError(w, http.StatusBadRequest, "phoneNumber is required")
		return
	}

	if err := s.roster.Edit(r.Context(), req.PhoneNumber, req.Updates); err != nil {
		writeRosterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CSV             string `json:"csv"`
		CampaignDate    string `json:"campaignDate"`
		CallImmediately bool   `json:"callImmediately"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.CSV) == "" {
		writeError(w, http.StatusBadRequest, "csv content is required")
		return
	}

	now := s.now()
	effectiveDate, err := ingest.EffectiveCampaignDate(req.CampaignDate, req.CallImmediately, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, userMessage(err))
		return
	}

	text, err := ingest.DecodeText([]byte(req.CSV))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not decode file content")
		return
	}
	contacts, stats := ingest.ParseCSV(text)
	if len(contacts) == 0 {
		writeError(w, http.StatusBadRequest, "no valid data rows found in CSV file")
		return
	}
	if err := ingest.ValidateColumns(contacts[0].Keys()); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	transformed := ingest.Transform(contacts, effectiveDate, req.CallImmediately, now)
	callStatus := lead.StatusScheduled
	if req.CallImmediately {
		callStatus = lead.StatusImmediate
	}

	result, err := s.client.UploadContacts(r.Context(), transformed, callStatus)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	zap.L().Info("upload complete",
		zap.Int("added", result.Added),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("short_rows", stats.ShortRows),
		zap.Int("long_rows", stats.LongRows),
	)
	writeJSON(w, http.StatusOK, struct {
		*webhook.UploadResult
		ShortRows int `json:"shortRows,omitempty"`
		LongRows  int `json:"longRows,omitempty"`
	}{result, stats.ShortRows, stats.LongRows})
}

func (s *Server) handleTemplate(w http.ResponseWriter, _ *http.Request) {
	filename := s.cfg.Upload.TemplateFilename
	if filename == "" {
		filename = ingest.TemplateFilename
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ingest.Template))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeBackendError maps webhook failures: transport and protocol problems
// are both upstream faults, but keep their detail apart for the operator.
func writeBackendError(w http.ResponseWriter, err error) {
	var apiErr *webhook.APIError
	var protoErr *webhook.ProtocolError
	switch {
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, apiErr.Error())
	case errors.As(err, &protoErr):
		writeError(w, http.StatusBadGateway, protoErr.Error())
	default:
		writeError(w, http.StatusBadGateway, "backend request failed")
	}
	zap.L().Error("backend request failed", zap.Error(err))
}

func writeRosterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, roster.ErrLeadNotFound):
		writeError(w, http.StatusNotFound, "lead not found")
	case errors.Is(err, roster.ErrUpdateInFlight):
		writeError(w, http.StatusConflict, "an update for this lead is already in flight")
	case errors.Is(err, roster.ErrFieldNotEditable):
		writeError(w, http.StatusBadRequest, "one or more fields are not editable")
	default:
		writeBackendError(w, err)
	}
}

// userMessage strips the package prefix from sentinel error text for display.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && strings.HasPrefix(msg, "ingest:") {
		return msg[i+2:]
	}
	return msg
}
