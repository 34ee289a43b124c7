package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/catalog"
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/uow"
)

type createProductRequest struct {
	ProductType          domain.ProductType          `json:"product_type"`
	Reference            string                      `json:"reference"`
	DesignationES        string                      `json:"designation_es"`
	PurchasePrice        *decimal.Decimal            `json:"purchase_price,omitempty"`
	CostPrice            *decimal.Decimal            `json:"cost_price,omitempty"`
	SalePrice            *decimal.Decimal            `json:"sale_price,omitempty"`
	StockQuantity        *decimal.Decimal            `json:"stock_quantity,omitempty"`
	MinimumStock         *decimal.Decimal            `json:"minimum_stock,omitempty"`
	NetWeight            *decimal.Decimal            `json:"net_weight,omitempty"`
	PriceCalculationMode domain.PriceCalculationMode `json:"price_calculation_mode"`
}

// handleCreateProduct creates a Product after rejecting any negative
// price, stock or weight field.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product := &domain.Product{
		ProductType:          req.ProductType,
		Reference:            req.Reference,
		DesignationES:        req.DesignationES,
		PurchasePrice:        req.PurchasePrice,
		CostPrice:            req.CostPrice,
		SalePrice:            req.SalePrice,
		StockQuantity:        req.StockQuantity,
		MinimumStock:         req.MinimumStock,
		NetWeight:            req.NetWeight,
		PriceCalculationMode: req.PriceCalculationMode,
	}

	audit := auditFromRequest(r)
	var result *domain.Product
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := catalog.NewProductService(u)
		created, err := svc.Create(ctx, audit, product)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleSearchProducts finds products whose reference or Spanish
// designation matches the "q" query parameter.
func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	audit := auditFromRequest(r)
	var result []*domain.Product
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := catalog.NewProductService(u)
		found, err := svc.Search(ctx, term)
		if err != nil {
			return err
		}
		result = found
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type createProductComponentRequest struct {
	ParentID    int64           `json:"parent_id"`
	ComponentID int64           `json:"component_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       *string         `json:"notes,omitempty"`
}

// handleCreateProductComponent adds a BOM edge after checking it against
// the acyclic-graph guard.
func (s *Server) handleCreateProductComponent(w http.ResponseWriter, r *http.Request) {
	var req createProductComponentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	edge := &domain.ProductComponent{
		ParentID:    req.ParentID,
		ComponentID: req.ComponentID,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
	}

	audit := auditFromRequest(r)
	var result *domain.ProductComponent
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := catalog.NewProductComponentService(u)
		created, err := svc.Create(ctx, audit, edge)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
