// Package api exposes the commercial document core over HTTP: one
// gorilla/mux router, CORS via rs/cors, and a thin JSON layer translating
// errs.Error kinds into status codes.
package api

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/akgroup/erp-core/internal/config"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/ratelimit"
	"github.com/akgroup/erp-core/internal/sequence"
	"github.com/akgroup/erp-core/internal/uow"
)

// Server wires the document lifecycle services to HTTP handlers.
type Server struct {
	config    *config.Config
	db        *sql.DB
	factory   *uow.Factory
	sequences *sequence.Generator
	bulkOps   *ratelimit.Throttle
	router    *mux.Router
}

// NewServer builds a Server ready to serve once Router is mounted.
func NewServer(cfg *config.Config, db *sql.DB, factory *uow.Factory) *Server {
	s := &Server{
		config:    cfg,
		db:        db,
		factory:   factory,
		sequences: sequence.New(),
		bulkOps:   ratelimit.New(cfg.BulkOpsRequestsPerSecond, cfg.BulkOpsBurst),
		router:    mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// Router returns the configured HTTP handler with CORS applied.
func (s *Server) Router() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{s.config.CORSAllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-Id"},
		AllowCredentials: s.config.CORSAllowCredentials,
		MaxAge:           300,
	})
	return c.Handler(s.router)
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api.HandleFunc("/quotes", s.handleCreateQuote).Methods(http.MethodPost)
	api.HandleFunc("/quotes/{id:[0-9]+}", s.handleGetQuote).Methods(http.MethodGet)
	api.HandleFunc("/quotes/{id:[0-9]+}/lines", s.handleAddQuoteLine).Methods(http.MethodPost)
	api.HandleFunc("/quotes/{id:[0-9]+}/lines/bulk", s.handleAddQuoteLines).Methods(http.MethodPost)

	api.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}", s.handleGetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/overdue", s.handleFindOverdueOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/from-quote/{quoteId:[0-9]+}", s.handleCreateOrderFromQuote).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/complete", s.handleCompleteOrder).Methods(http.MethodPost)

	api.HandleFunc("/deliveries", s.handleCreateDelivery).Methods(http.MethodPost)
	api.HandleFunc("/deliveries/{id:[0-9]+}/mark-delivered", s.handleMarkDelivered).Methods(http.MethodPost)

	api.HandleFunc("/companies", s.handleCreateCompany).Methods(http.MethodPost)
	api.HandleFunc("/companies/by-trigram/{trigram}", s.handleFindCompanyByTrigram).Methods(http.MethodGet)
	api.HandleFunc("/companies/ruts", s.handleCreateCompanyRut).Methods(http.MethodPost)
	api.HandleFunc("/contacts", s.handleCreateContact).Methods(http.MethodPost)

	api.HandleFunc("/products", s.handleCreateProduct).Methods(http.MethodPost)
	api.HandleFunc("/products/search", s.handleSearchProducts).Methods(http.MethodGet)
	api.HandleFunc("/product-components", s.handleCreateProductComponent).Methods(http.MethodPost)

	api.HandleFunc("/notes", s.handleAttachNote).Methods(http.MethodPost)
	api.HandleFunc("/notes/{entityType}/{entityId:[0-9]+}", s.handleListNotes).Methods(http.MethodGet)
}

// handleHealth reports liveness plus a database ping, mirroring what an
// orchestrator's readiness probe expects.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		status = "database unreachable"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status})
}

// auditFromRequest builds the AuditContext for a request. There is no auth
// middleware in this core; a host application is expected to populate
// X-Principal-Id after authenticating the caller.
func auditFromRequest(r *http.Request) uow.AuditContext {
	correlationID := r.Header.Get("X-Correlation-Id")
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	var userID int64
	if raw := r.Header.Get("X-Principal-Id"); raw != "" {
		json.Unmarshal([]byte(raw), &userID)
	}
	return uow.AuditContext{UserID: userID, CorrelationID: correlationID}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			log.Printf("api: encode response: %v", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	coreErr, ok := errs.As(err)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal_error"})
		return
	}

	status := http.StatusInternalServerError
	switch coreErr.Kind {
	case errs.InvalidInput:
		status = http.StatusBadRequest
	case errs.NotFound:
		status = http.StatusNotFound
	case errs.Conflict:
		status = http.StatusConflict
	case errs.Unsupported:
		status = http.StatusUnprocessableEntity
	case errs.Internal:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, map[string]any{
		"error":     coreErr.Code,
		"message":   coreErr.Message,
		"field":     coreErr.Field,
		"retryable": coreErr.Retryable(),
	})
}

func decodeJSON(r *http.Request, dest any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return errs.InvalidInputf("malformed_body", "request body is not valid JSON: %v", err)
	}
	return nil
}
