package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/bom"
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
	"github.com/akgroup/erp-core/internal/validate"
)

// ProductService validates and persists Product rows.
type ProductService struct {
	products *repo.Repository[domain.Product]
}

// NewProductService builds a ProductService bound to the transaction
// carried by u.
func NewProductService(u *uow.UnitOfWork) *ProductService {
	return &ProductService{
		products: repo.FromUnitOfWork(u, "product", storemap.Product),
	}
}

// Create validates p and persists it.
func (s *ProductService) Create(ctx context.Context, audit uow.AuditContext, p *domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	now := audit.Now()
	p.CreatedBy, p.UpdatedBy = audit.UserID, audit.UserID
	p.CreatedAt, p.UpdatedAt = now, now
	p.IsActive = true
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update validates p and persists changes to it.
func (s *ProductService) Update(ctx context.Context, audit uow.AuditContext, p *domain.Product) (*domain.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	p.UpdatedBy = audit.UserID
	p.UpdatedAt = audit.Now()
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Search finds products whose reference or Spanish designation contains
// term, case-insensitively, ordered by reference.
func (s *ProductService) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	pattern := "%" + term + "%"
	return s.products.QueryWhere(ctx, "reference ILIKE $1 OR designation_es ILIKE $2", "reference", pattern, pattern)
}

func validateProduct(p *domain.Product) error {
	checks := []struct {
		value *decimal.Decimal
		field string
	}{
		{p.PurchasePrice, "purchase_price"},
		{p.CostPrice, "cost_price"},
		{p.SalePrice, "sale_price"},
		{p.SalePriceEUR, "sale_price_eur"},
		{p.StockQuantity, "stock_quantity"},
		{p.MinimumStock, "minimum_stock"},
		{p.NetWeight, "net_weight"},
		{p.GrossWeight, "gross_weight"},
	}
	for _, c := range checks {
		if err := validate.NonNegativeDecimal(c.value, c.field); err != nil {
			return err
		}
	}
	return nil
}

// ProductComponentService persists BOM edges, implementing bom.Graph over
// the product and product-component tables so package bom's cycle guard
// runs against the committed graph plus the proposed edge before every
// write.
type ProductComponentService struct {
	products   *repo.Repository[domain.Product]
	components *repo.Repository[domain.ProductComponent]
}

// NewProductComponentService builds a ProductComponentService bound to the
// transaction carried by u.
func NewProductComponentService(u *uow.UnitOfWork) *ProductComponentService {
	return &ProductComponentService{
		products:   repo.FromUnitOfWork(u, "product", storemap.Product),
		components: repo.FromUnitOfWork(u, "product_component", storemap.ProductComponent),
	}
}

// Product implements bom.Graph.
func (s *ProductComponentService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

// ComponentsOf implements bom.Graph.
func (s *ProductComponentService) ComponentsOf(ctx context.Context, parentID int64) ([]domain.ProductComponent, error) {
	rows, err := s.components.Find(ctx, []repo.Filter{{Column: "parent_id", Value: parentID}}, "", false, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductComponent, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	return out, nil
}

// Create rejects a non-positive quantity and a self/cyclic edge before
// persisting pc.
func (s *ProductComponentService) Create(ctx context.Context, audit uow.AuditContext, pc *domain.ProductComponent) (*domain.ProductComponent, error) {
	if pc.Quantity.Sign() <= 0 {
		return nil, errs.Field("quantity", "not_positive", "quantity must be greater than zero")
	}
	if err := bom.New(s).ValidateAcyclic(ctx, pc.ParentID, pc.ComponentID); err != nil {
		return nil, err
	}
	now := audit.Now()
	pc.CreatedBy, pc.UpdatedBy = audit.UserID, audit.UserID
	pc.CreatedAt, pc.UpdatedAt = now, now
	pc.IsActive = true
	if err := s.components.Create(ctx, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

// Update re-checks the edge against the cycle guard (its endpoints may
// have changed) before persisting.
func (s *ProductComponentService) Update(ctx context.Context, audit uow.AuditContext, pc *domain.ProductComponent) (*domain.ProductComponent, error) {
	if pc.Quantity.Sign() <= 0 {
		return nil, errs.Field("quantity", "not_positive", "quantity must be greater than zero")
	}
	if err := bom.New(s).ValidateAcyclic(ctx, pc.ParentID, pc.ComponentID); err != nil {
		return nil, err
	}
	pc.UpdatedBy = audit.UserID
	pc.UpdatedAt = audit.Now()
	if err := s.components.Update(ctx, pc); err != nil {
		return nil, err
	}
	return pc, nil
}
