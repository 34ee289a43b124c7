package documents

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/sequence"
	"github.com/akgroup/erp-core/internal/uow"
)

func TestQuoteService_Create_AssignsNumberAndPersists(t *testing.T) {
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
		WithArgs("quote", 2026, "ACM").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT last_value FROM sequences")).
		WithArgs("quote", 2026, "ACM").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sequences SET last_value")).
		WithArgs(1, "quote", 2026, "ACM").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO quotes")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	mock.ExpectCommit()

	factory := uow.NewFactory(db, nil)
	quoteDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var created *domain.Quote
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewQuoteService(u, sequence.New())
		q := &domain.Quote{CompanyID: 7, QuoteDate: quoteDate}
		q.TaxPercentage = decimal.NewFromInt(19)
		result, err := svc.Create(ctx, u.Audit(), q)
		if err != nil {
			return err
		}
		created = result
		return nil
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Number != "C-ACM-2026-0001" {
		t.Errorf("got number %q, want C-ACM-2026-0001", created.Number)
	}
	if created.ID != 42 {
		t.Errorf("got id %d, want 42", created.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestQuoteService_Create_RejectsValidUntilBeforeQuoteDate(t *testing.T) {
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
	mock.ExpectRollback()

	factory := uow.NewFactory(db, nil)
	quoteDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewQuoteService(u, sequence.New())
		q := &domain.Quote{CompanyID: 7, QuoteDate: quoteDate, ValidUntil: &earlier}
		_, err := svc.Create(ctx, u.Audit(), q)
		return err
	})
	if err == nil {
		t.Fatal("expected error")
	}
	coreErr, ok := errs.As(err)
	if !ok || coreErr.Kind != errs.InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestQuoteService_AddLines_BulkInsertsAndRecomputesTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	quoteCols := []string{"id", "number", "staff_id", "company_id", "currency_id", "status_id", "quote_date", "valid_until",
		"subtotal", "tax_percentage", "tax_amount", "total", "created_at", "updated_at", "created_by", "updated_by", "is_active"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM quotes WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(quoteCols).
			AddRow(42, "C-ACM-2026-0001", 1, 7, 1, 1, now, nil,
				decimal.Zero, decimal.NewFromInt(19), decimal.Zero, decimal.Zero, now, now, 1, 1, true))
	mock.ExpectQuery(regexp.QuoteMeta("FROM quote_products WHERE quote_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quote_id", "product_id", "sequence", "quantity", "unit_price", "discount", "subtotal",
			"created_at", "updated_at", "created_by", "updated_by", "is_active"}))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO quote_products")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO quote_products")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE quotes SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	factory := uow.NewFactory(db, nil)
	newLines := []domain.QuoteProduct{
		{ProductID: 1, Sequence: 1, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		{ProductID: 2, Sequence: 2, Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(50)},
	}
	var result *domain.Quote
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewQuoteService(u, sequence.New())
		updated, err := svc.AddLines(ctx, u.Audit(), 42, newLines)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		t.Fatalf("AddLines: %v", err)
	}
	wantSubtotal := decimal.NewFromInt(2 * 100).Add(decimal.NewFromInt(3 * 50))
	if !result.Subtotal.Equal(wantSubtotal) {
		t.Errorf("subtotal = %s, want %s", result.Subtotal, wantSubtotal)
	}
	if len(result.Items) != 2 {
		t.Errorf("got %d items, want 2", len(result.Items))
	}
}
