package domain

// Lookup is the shape shared by the small reference tables the core
// resolves foreign keys against: Unit, CompanyType, Incoterm, FamilyType,
// Matter, SalesType, QuoteStatus, OrderStatus, DeliveryStatus and
// PaymentStatus all share this layout, so one repository and one set of
// queries (repo.Repository[Lookup] scoped by table name) serves all of
// them rather than ten near-identical structs. Country, City and Currency
// have their own types below.
type Lookup struct {
	Audited

	Code     string // short, unique within the table
	Name     string
	IsActive bool
}

// Currency additionally carries a decimal precision, so it does not fit
// the plain Lookup shape.
type Currency struct {
	Audited

	Code      string // ISO 4217, e.g. "CLP", "USD", "EUR"
	Name      string
	Precision int // decimal places to round monetary amounts to
}

// Country carries an ISO alpha-2 code in addition to the Lookup shape.
type Country struct {
	Audited

	Code string // ISO 3166-1 alpha-2
	Name string
}

// City belongs to a Country.
type City struct {
	Audited

	CountryID int64
	Name      string
}
