package storemap

import (
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// InvoiceSII binds domain.InvoiceSII to the "invoices_sii" table.
var InvoiceSII = repo.Mapper[domain.InvoiceSII]{
	Table: "invoices_sii",
	Columns: []string{
		"number", "company_id", "currency_id", "payment_status_id", "invoice_date",
		"subtotal", "tax_percentage", "tax_amount", "total",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.InvoiceSII) error {
		return row.Scan(&dest.ID, &dest.Number, &dest.CompanyID, &dest.CurrencyID, &dest.PaymentStatusID, &dest.InvoiceDate,
			&dest.Subtotal, &dest.TaxPercentage, &dest.TaxAmount, &dest.Total,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
	},
	Values: func(e *domain.InvoiceSII) []any {
		return []any{e.Number, e.CompanyID, e.CurrencyID, e.PaymentStatusID, e.InvoiceDate,
			e.Subtotal, e.TaxPercentage, e.TaxAmount, e.Total,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.InvoiceSII, id int64) { e.ID = id },
	GetID: func(e *domain.InvoiceSII) int64 { return e.ID },
}

// InvoiceExport binds domain.InvoiceExport to the "invoices_export" table.
var InvoiceExport = repo.Mapper[domain.InvoiceExport]{
	Table: "invoices_export",
	Columns: []string{
		"number", "company_id", "currency_id", "payment_status_id", "destination_country_id", "invoice_date",
		"subtotal", "tax_percentage", "tax_amount", "total",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.InvoiceExport) error {
		return row.Scan(&dest.ID, &dest.Number, &dest.CompanyID, &dest.CurrencyID, &dest.PaymentStatusID, &dest.DestinationCountryID, &dest.InvoiceDate,
			&dest.Subtotal, &dest.TaxPercentage, &dest.TaxAmount, &dest.Total,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
	},
	Values: func(e *domain.InvoiceExport) []any {
		return []any{e.Number, e.CompanyID, e.CurrencyID, e.PaymentStatusID, e.DestinationCountryID, e.InvoiceDate,
			e.Subtotal, e.TaxPercentage, e.TaxAmount, e.Total,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.InvoiceExport, id int64) { e.ID = id },
	GetID: func(e *domain.InvoiceExport) int64 { return e.ID },
}
