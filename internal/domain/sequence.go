package domain

// Sequence is the counter row backing package sequence's generator. One
// row exists per (Name, Year, Prefix) bucket; Prefix may be empty when
// the family does not scope numbers per company.
type Sequence struct {
	Audited

	Name      string // document family: "quote", "order", "invoice_sii", ...
	Year      int
	Prefix    string // empty when unscoped
	LastValue int
}
