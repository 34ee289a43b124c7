package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentTotals is embedded by every commercial document family. It
// carries the cached, derived monetary fields recomputed by package
// documents on every line-item mutation: subtotal = Σ line
// subtotals, tax_amount = subtotal × tax_percentage / 100, total = subtotal
// + tax_amount.
type DocumentTotals struct {
	Subtotal      decimal.Decimal
	TaxPercentage decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
}

// Recompute derives TaxAmount and Total from Subtotal and TaxPercentage.
func (t *DocumentTotals) Recompute() {
	t.TaxAmount = t.Subtotal.Mul(t.TaxPercentage).Div(decimal.NewFromInt(100))
	t.Total = t.Subtotal.Add(t.TaxAmount)
}

// LineItem is the shape shared by QuoteProduct and OrderProduct: a
// product reference with a quantity, a unit price, an optional discount
// percentage, and a cached subtotal = quantity × unit_price × (1 -
// discount/100).
type LineItem struct {
	Audited

	ProductID int64
	Sequence  int // order-preserving key within the parent document
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Discount  *decimal.Decimal // percentage, e.g. 10 means 10%
	Subtotal  decimal.Decimal  // cached, derived
}

// RecomputeSubtotal derives Subtotal from Quantity, UnitPrice and Discount.
func (l *LineItem) RecomputeSubtotal() {
	gross := l.Quantity.Mul(l.UnitPrice)
	if l.Discount == nil {
		l.Subtotal = gross
		return
	}
	factor := decimal.NewFromInt(1).Sub(l.Discount.Div(decimal.NewFromInt(100)))
	l.Subtotal = gross.Mul(factor)
}

// QuoteProduct is a Quote line item.
type QuoteProduct struct {
	LineItem
	QuoteID int64
}

// OrderProduct is an Order line item.
type OrderProduct struct {
	LineItem
	OrderID int64
}

// dateOnly truncates t to the calendar day in UTC, matching the way the
// core compares "today" against stored dates (promised_date, valid_until,
// delivery_date, ...).
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
