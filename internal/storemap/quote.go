package storemap

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// Quote binds the Quote header (without line items, which are persisted
// separately via QuoteProduct) to the "quotes" table.
var Quote = repo.Mapper[domain.Quote]{
	Table: "quotes",
	Columns: []string{
		"number", "staff_id", "company_id", "currency_id", "status_id", "quote_date", "valid_until",
		"subtotal", "tax_percentage", "tax_amount", "total",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.Quote) error {
		var validUntil sql.NullTime
		err := row.Scan(&dest.ID, &dest.Number, &dest.StaffID, &dest.CompanyID, &dest.CurrencyID, &dest.StatusID,
			&dest.QuoteDate, &validUntil,
			&dest.Subtotal, &dest.TaxPercentage, &dest.TaxAmount, &dest.Total,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		if validUntil.Valid {
			dest.ValidUntil = &validUntil.Time
		}
		return nil
	},
	Values: func(e *domain.Quote) []any {
		return []any{e.Number, e.StaffID, e.CompanyID, e.CurrencyID, e.StatusID, e.QuoteDate, e.ValidUntil,
			e.Subtotal, e.TaxPercentage, e.TaxAmount, e.Total,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Quote, id int64) { e.ID = id },
	GetID: func(e *domain.Quote) int64 { return e.ID },
}

// QuoteProduct binds a Quote line item to the "quote_products" table.
var QuoteProduct = repo.Mapper[domain.QuoteProduct]{
	Table:   "quote_products",
	Columns: []string{"quote_id", "product_id", "sequence", "quantity", "unit_price", "discount", "subtotal", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.QuoteProduct) error {
		var discount decimal.NullDecimal
		err := row.Scan(&dest.ID, &dest.QuoteID, &dest.ProductID, &dest.Sequence, &dest.Quantity, &dest.UnitPrice, &discount, &dest.Subtotal,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.Discount = nullDecimalPtr(discount)
		return nil
	},
	Values: func(e *domain.QuoteProduct) []any {
		return []any{e.QuoteID, e.ProductID, e.Sequence, e.Quantity, e.UnitPrice, e.Discount, e.Subtotal,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.QuoteProduct, id int64) { e.ID = id },
	GetID: func(e *domain.QuoteProduct) int64 { return e.ID },
}
