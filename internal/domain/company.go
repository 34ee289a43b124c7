package domain

// CompanyTypeCode is a lookup code a Company's CompanyTypeID must resolve
// to. The core only enforces that the resolved type is one of these two;
// any other lookup table state is a host/seeding concern.
type CompanyTypeCode string

const (
	CompanyTypeClient   CompanyTypeCode = "CLIENT"
	CompanyTypeSupplier CompanyTypeCode = "SUPPLIER"
)

// Company is a counterparty: client, supplier, or both.
type Company struct {
	Audited
	SoftDeletable

	Name                  string  // legal name, >= 2 chars after trim
	Trigram               string  // globally unique, three uppercase letters
	MainAddress           *string
	Phone                 *string // E.164
	Website               *string // http(s) URL
	IntracommunityNumber  *string // EU VAT

	CompanyTypeID int64
	CountryID     *int64
	CityID        *int64
}

// CompanyRut is one of potentially many Chilean tax identifiers for a
// Company. At most one IsMain=true per company is a service-level
// invariant, not a schema constraint (see DESIGN.md Open Question #1).
type CompanyRut struct {
	Audited

	CompanyID int64
	RUT       string // normalized "NNNNNNNN-D"
	IsMain    bool
}

// Plant is a physical site of a Company. Deletion of the owning Company
// cascades to its plants.
type Plant struct {
	Audited

	CompanyID int64
	Name      string // >= 2 chars
	Address   *string
	Phone     *string
	Email     *string
	CityID    *int64
}

// Service is a department name, globally unique (e.g. "Ventas").
type Service struct {
	Audited

	Name string
}

// Contact is a person at a Company.
type Contact struct {
	Audited

	CompanyID  int64
	GivenName  string
	FamilyName string
	Email      *string // normalized lowercase
	Phone      *string // E.164
	Mobile     *string // E.164
	Position   *string
	ServiceID  *int64 // set-null when the referenced Service is removed
}

// AddressType classifies an Address.
type AddressType string

const (
	AddressDelivery      AddressType = "DELIVERY"
	AddressBilling       AddressType = "BILLING"
	AddressHeadquarters  AddressType = "HEADQUARTERS"
	AddressBranch        AddressType = "BRANCH"
)

// Valid reports whether t is one of the four known address types.
func (t AddressType) Valid() bool {
	switch t {
	case AddressDelivery, AddressBilling, AddressHeadquarters, AddressBranch:
		return true
	}
	return false
}

// Address is a postal address attached to a Company. At most one address
// per Company may have IsDefault=true: the schema's partial unique index
// rejects a second default, and nothing in this module clears the
// previous default when a new one is set.
type Address struct {
	Audited

	CompanyID int64
	Type      AddressType
	Line1     string
	Line2     *string
	CityID    *int64
	IsDefault bool
}
