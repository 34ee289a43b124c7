package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/uow"
)

func TestProductService_Create_RejectsNegativeCostPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	factory := uow.NewFactory(db, nil)
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewProductService(u)
		negative := decimal.NewFromInt(-5)
		p := &domain.Product{ProductType: domain.ProductArticle, Reference: "WIDGET", DesignationES: "Widget", CostPrice: &negative}
		_, err := svc.Create(ctx, u.Audit(), p)
		return err
	})
	coreErr, ok := errs.As(err)
	if !ok || coreErr.Kind != errs.InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestProductService_Search_AppliesILIKEAcrossReferenceAndDesignation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE reference ILIKE $1 OR designation_es ILIKE $2 ORDER BY reference")).
		WithArgs("%bolt%", "%bolt%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "product_type", "reference", "designation_es", "designation_en", "designation_fr", "short_designation",
			"unit_id", "family_type_id", "matter_id", "sales_type_id", "country_of_origin_id",
			"purchase_price", "cost_price", "sale_price", "sale_price_eur", "margin_percentage",
			"stock_quantity", "minimum_stock", "stock_location",
			"net_weight", "gross_weight", "length", "width", "height", "volume",
			"price_calculation_mode", "created_at", "updated_at", "created_by", "updated_by", "is_active", "is_deleted",
		}).AddRow(3, domain.ProductArticle, "BOLT-10", "Perno", nil, nil, nil,
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			nil, nil, nil,
			nil, nil, nil, nil, nil, nil,
			domain.PriceManual, now, now, 1, 1, true, false))
	mock.ExpectCommit()

	factory := uow.NewFactory(db, nil)
	var found []*domain.Product
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewProductService(u)
		result, err := svc.Search(ctx, "bolt")
		if err != nil {
			return err
		}
		found = result
		return nil
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || found[0].Reference != "BOLT-10" {
		t.Errorf("got %+v", found)
	}
}

func TestProductComponentService_Create_RejectsSelfEdge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	factory := uow.NewFactory(db, nil)
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewProductComponentService(u)
		pc := &domain.ProductComponent{ParentID: 1, ComponentID: 1, Quantity: decimal.NewFromInt(1)}
		_, err := svc.Create(ctx, u.Audit(), pc)
		return err
	})
	coreErr, ok := errs.As(err)
	if !ok || coreErr.Kind != errs.Conflict {
		t.Errorf("expected Conflict, got %v", err)
	}
}

func TestProductComponentService_Create_RejectsCycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	componentCols := []string{"id", "parent_id", "component_id", "quantity", "notes", "created_at", "updated_at", "created_by", "updated_by", "is_active"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_components WHERE parent_id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(componentCols).
			AddRow(1, 2, 1, decimal.NewFromInt(1), nil, now, now, 1, 1, true))
	mock.ExpectRollback()

	factory := uow.NewFactory(db, nil)
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewProductComponentService(u)
		pc := &domain.ProductComponent{ParentID: 1, ComponentID: 2, Quantity: decimal.NewFromInt(1)}
		_, err := svc.Create(ctx, u.Audit(), pc)
		return err
	})
	coreErr, ok := errs.As(err)
	if !ok || coreErr.Kind != errs.Conflict {
		t.Errorf("expected Conflict, got %v", err)
	}
}

func TestProductComponentService_Create_PersistsAcyclicEdge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	componentCols := []string{"id", "parent_id", "component_id", "quantity", "notes", "created_at", "updated_at", "created_by", "updated_by", "is_active"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM product_components WHERE parent_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(componentCols))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO product_components")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	factory := uow.NewFactory(db, nil)
	var created *domain.ProductComponent
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewProductComponentService(u)
		pc := &domain.ProductComponent{ParentID: 1, ComponentID: 3, Quantity: decimal.NewFromInt(2)}
		result, err := svc.Create(ctx, u.Audit(), pc)
		if err != nil {
			return err
		}
		created = result
		return nil
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 11 {
		t.Errorf("got id %d, want 11", created.ID)
	}
}

func TestProductComponentService_Create_RejectsNonPositiveQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	factory := uow.NewFactory(db, nil)
	err = factory.Run(context.Background(), uow.AuditContext{UserID: 1}, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := NewProductComponentService(u)
		pc := &domain.ProductComponent{ParentID: 1, ComponentID: 2, Quantity: decimal.Zero}
		_, err := svc.Create(ctx, u.Audit(), pc)
		return err
	})
	coreErr, ok := errs.As(err)
	if !ok || coreErr.Kind != errs.InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}
