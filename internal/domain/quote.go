package domain

import "time"

// Quote is a sales proposal sent to a Company. Neither this type nor
// package documents restricts status transitions; the status itself is a
// foreign key into the QuoteStatus lookup table, commonly one of
// DRAFT, SENT, ACCEPTED, REJECTED or EXPIRED.
type Quote struct {
	Audited
	DocumentTotals

	Number    string // unique within the "quote" family
	StaffID   int64
	CompanyID int64
	CurrencyID int64
	StatusID  int64

	QuoteDate  time.Time
	ValidUntil *time.Time // must be >= QuoteDate when present

	Items []QuoteProduct
}
