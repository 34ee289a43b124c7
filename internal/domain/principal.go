package domain

// Principal is a human operator of the system. Owned by no one; its
// lifetime is the lifetime of the organization, so it does not embed
// SoftDeletable — deactivation uses Audited.IsActive only.
type Principal struct {
	Audited

	Username   string // unique, lowercase
	Email      string
	GivenName  string
	FamilyName string
	Trigram    *string // optional; exactly three uppercase letters when present
	Phone      *string // E.164
	Position   *string
	IsAdmin    bool
}
