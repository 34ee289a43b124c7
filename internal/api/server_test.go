package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akgroup/erp-core/internal/config"
	"github.com/akgroup/erp-core/internal/uow"
)

func TestHandleHealth_ReportsOKWhenDatabaseReachable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	cfg := &config.Config{CORSAllowedOrigins: "*"}
	factory := uow.NewFactory(db, nil)
	srv := NewServer(cfg, db, factory)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("got status %v, want ok", body["status"])
	}
}

func TestHandleHealth_ReportsUnavailableWhenDatabaseUnreachable(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectPing().WillReturnError(errPingFailed{})

	cfg := &config.Config{CORSAllowedOrigins: "*"}
	factory := uow.NewFactory(db, nil)
	srv := NewServer(cfg, db, factory)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", rec.Code)
	}
}

type errPingFailed struct{}

func (errPingFailed) Error() string { return "connection refused" }

func TestHandleCreateQuote_BadDateIsInvalidInput(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cfg := &config.Config{CORSAllowedOrigins: "*"}
	factory := uow.NewFactory(db, nil)
	srv := NewServer(cfg, db, factory)

	body := bytes.NewBufferString(`{"company_id":1,"quote_date":"not-a-date"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", body)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleCreateQuote_Succeeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	companyCols := []string{"id", "name", "trigram", "main_address", "phone", "website", "intracommunity_number",
		"company_type_id", "country_id", "city_id", "created_at", "updated_at", "created_by", "updated_by", "is_active", "is_deleted"}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM companies WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(companyCols).
			AddRow(7, "Acme", "ACM", nil, nil, nil, nil, 1, nil, nil, now, now, 1, 1, true, false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sequences")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT last_value FROM sequences")).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sequences SET last_value")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO quotes")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	cfg := &config.Config{CORSAllowedOrigins: "*"}
	factory := uow.NewFactory(db, nil)
	srv := NewServer(cfg, db, factory)

	body := bytes.NewBufferString(`{"company_id":7,"quote_date":"2026-01-01","tax_percentage":"19"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", body)
	req.Header.Set("X-Principal-Id", "1")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result["Number"] != "C-ACM-2026-0001" {
		t.Errorf("got number %v, want C-ACM-2026-0001", result["Number"])
	}
}

func TestGetQuote_UnmatchedRouteFor404(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cfg := &config.Config{CORSAllowedOrigins: "*"}
	factory := uow.NewFactory(db, nil)
	srv := NewServer(cfg, db, factory)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/not-a-number", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404 (no route matches a non-numeric id)", rec.Code)
	}
}
