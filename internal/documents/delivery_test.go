package documents

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/sequence"
	"github.com/akgroup/erp-core/internal/uow"
)

var deliveryCols = []string{"id", "number", "order_id", "status_id", "delivery_date", "actual_delivery_date",
	"signature_name", "signature_id", "signature_datetime", "notes",
	"created_at", "updated_at", "created_by", "updated_by", "is_active"}

func TestDeliveryService_Create_AssignsUnscopedNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sequences")).
		WithArgs("delivery", 2026, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT last_value FROM sequences")).
		WithArgs("delivery", 2026, "").
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sequences SET last_value")).
		WithArgs(1, "delivery", 2026, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO delivery_orders")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	factory := uow.NewFactory(db, nil)
	deliveryDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var created *domain.DeliveryOrder
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewDeliveryService(u, sequence.New(), nil)
		d := &domain.DeliveryOrder{OrderID: 10, StatusID: 1, DeliveryDate: deliveryDate}
		result, err := svc.Create(ctx, u.Audit(), d)
		if err != nil {
			return err
		}
		created = result
		return nil
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Number != "GD-2026-0001" {
		t.Errorf("got number %q, want GD-2026-0001", created.Number)
	}
}

func TestDeliveryService_MarkDelivered_StampsSignatureAndAppendsNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deliveryDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := "picked up late"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM delivery_orders WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(deliveryCols).
			AddRow(5, "GD-2026-0001", 10, 1, deliveryDate, nil, nil, nil, nil, existing, now, now, 1, 1, true))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE delivery_orders SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	factory := uow.NewFactory(db, nil)
	addition := "signed at the loading dock"
	var result *domain.DeliveryOrder
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 2}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewDeliveryService(u, sequence.New(), func() time.Time { return now })
		updated, err := svc.MarkDelivered(ctx, u.Audit(), 5, 3, "Jane Doe", "12.345.678-9", &addition)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	if result.StatusID != 3 {
		t.Errorf("got status_id %d, want 3", result.StatusID)
	}
	if result.SignatureName == nil || *result.SignatureName != "Jane Doe" {
		t.Errorf("got signature_name %v", result.SignatureName)
	}
	want := existing + "\n" + addition
	if result.Notes == nil || *result.Notes != want {
		t.Errorf("got notes %v, want %q", result.Notes, want)
	}
}
