package domain

import "time"

// OrderKind distinguishes a sales order from a purchase order.
type OrderKind string

const (
	OrderSales    OrderKind = "sales"
	OrderPurchase OrderKind = "purchase"
)

// Order is either a sales or a purchase order, optionally originating from
// a Quote. Status is a foreign key into the OrderStatus lookup,
// commonly PENDING, IN_PROGRESS, COMPLETED or CANCELLED.
type Order struct {
	Audited
	DocumentTotals

	Number    string
	Kind      OrderKind
	IsExport  bool
	StaffID   int64
	CompanyID int64
	CurrencyID int64
	StatusID  int64
	QuoteID   *int64 // set by CreateFromQuote

	OrderDate     time.Time
	PromisedDate  *time.Time // must be >= OrderDate when present
	CompletedDate *time.Time

	Items []OrderProduct
}

// IsOverdue reports whether the order has a promised date in the past and
// has not been completed, as of now.
func (o *Order) IsOverdue(now time.Time) bool {
	if o.PromisedDate == nil || o.CompletedDate != nil {
		return false
	}
	return dateOnly(*o.PromisedDate).Before(dateOnly(now))
}
