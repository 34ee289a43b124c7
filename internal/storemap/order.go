package storemap

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// Order binds the Order header to the "orders" table.
var Order = repo.Mapper[domain.Order]{
	Table: "orders",
	Columns: []string{
		"number", "kind", "is_export", "staff_id", "company_id", "currency_id", "status_id", "quote_id",
		"order_date", "promised_date", "completed_date",
		"subtotal", "tax_percentage", "tax_amount", "total",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.Order) error {
		var quoteID sql.NullInt64
		var promisedDate, completedDate sql.NullTime
		err := row.Scan(&dest.ID, &dest.Number, &dest.Kind, &dest.IsExport, &dest.StaffID, &dest.CompanyID, &dest.CurrencyID, &dest.StatusID, &quoteID,
			&dest.OrderDate, &promisedDate, &completedDate,
			&dest.Subtotal, &dest.TaxPercentage, &dest.TaxAmount, &dest.Total,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.QuoteID = nullInt64Ptr(quoteID)
		if promisedDate.Valid {
			dest.PromisedDate = &promisedDate.Time
		}
		if completedDate.Valid {
			dest.CompletedDate = &completedDate.Time
		}
		return nil
	},
	Values: func(e *domain.Order) []any {
		return []any{e.Number, e.Kind, e.IsExport, e.StaffID, e.CompanyID, e.CurrencyID, e.StatusID, e.QuoteID,
			e.OrderDate, e.PromisedDate, e.CompletedDate,
			e.Subtotal, e.TaxPercentage, e.TaxAmount, e.Total,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Order, id int64) { e.ID = id },
	GetID: func(e *domain.Order) int64 { return e.ID },
}

// OrderProduct binds an Order line item to the "order_products" table.
var OrderProduct = repo.Mapper[domain.OrderProduct]{
	Table:   "order_products",
	Columns: []string{"order_id", "product_id", "sequence", "quantity", "unit_price", "discount", "subtotal", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.OrderProduct) error {
		var discount decimal.NullDecimal
		err := row.Scan(&dest.ID, &dest.OrderID, &dest.ProductID, &dest.Sequence, &dest.Quantity, &dest.UnitPrice, &discount, &dest.Subtotal,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.Discount = nullDecimalPtr(discount)
		return nil
	},
	Values: func(e *domain.OrderProduct) []any {
		return []any{e.OrderID, e.ProductID, e.Sequence, e.Quantity, e.UnitPrice, e.Discount, e.Subtotal,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.OrderProduct, id int64) { e.ID = id },
	GetID: func(e *domain.OrderProduct) int64 { return e.ID },
}
