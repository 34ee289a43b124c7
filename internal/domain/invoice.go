package domain

import "time"

// InvoiceSII is a domestic invoice, encoded for Chile's Servicio de
// Impuestos Internos at the host application layer; the core only enforces
// number uniqueness and totals.
type InvoiceSII struct {
	Audited
	DocumentTotals

	Number        string
	CompanyID     int64
	CurrencyID    int64
	PaymentStatusID int64

	InvoiceDate time.Time
}

// InvoiceExport is an export invoice, sharing InvoiceSII's shape plus a
// destination country.
type InvoiceExport struct {
	Audited
	DocumentTotals

	Number        string
	CompanyID     int64
	CurrencyID    int64
	PaymentStatusID int64
	DestinationCountryID int64

	InvoiceDate time.Time
}
