package storemap

import (
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// NewLookupMapper binds domain.Lookup to table. Every small reference
// table — CompanyType, Incoterm, FamilyType, Matter, SalesType,
// QuoteStatus, OrderStatus, DeliveryStatus, PaymentStatus, Unit —
// shares this (id, code, name, is_active) shape, so one mapper
// constructor serves all of them instead of ten near-identical files.
func NewLookupMapper(table string) repo.Mapper[domain.Lookup] {
	return repo.Mapper[domain.Lookup]{
		Table:   table,
		Columns: []string{"code", "name", "is_active", "created_at", "updated_at", "created_by", "updated_by"},
		Scan: func(row repo.Scanner, dest *domain.Lookup) error {
			return row.Scan(&dest.ID, &dest.Code, &dest.Name, &dest.IsActive,
				&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy)
		},
		Values: func(e *domain.Lookup) []any {
			return []any{e.Code, e.Name, e.IsActive, e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy}
		},
		SetID: func(e *domain.Lookup, id int64) { e.ID = id },
		GetID: func(e *domain.Lookup) int64 { return e.ID },
	}
}

// Currency binds domain.Currency to the "currencies" table.
var Currency = repo.Mapper[domain.Currency]{
	Table:   "currencies",
	Columns: []string{"code", "name", "precision", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.Currency) error {
		return row.Scan(&dest.ID, &dest.Code, &dest.Name, &dest.Precision,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
	},
	Values: func(e *domain.Currency) []any {
		return []any{e.Code, e.Name, e.Precision, e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Currency, id int64) { e.ID = id },
	GetID: func(e *domain.Currency) int64 { return e.ID },
}

// Country binds domain.Country to the "countries" table.
var Country = repo.Mapper[domain.Country]{
	Table:   "countries",
	Columns: []string{"code", "name", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.Country) error {
		return row.Scan(&dest.ID, &dest.Code, &dest.Name,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
	},
	Values: func(e *domain.Country) []any {
		return []any{e.Code, e.Name, e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Country, id int64) { e.ID = id },
	GetID: func(e *domain.Country) int64 { return e.ID },
}

// City binds domain.City to the "cities" table.
var City = repo.Mapper[domain.City]{
	Table:   "cities",
	Columns: []string{"country_id", "name", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.City) error {
		return row.Scan(&dest.ID, &dest.CountryID, &dest.Name,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
	},
	Values: func(e *domain.City) []any {
		return []any{e.CountryID, e.Name, e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.City, id int64) { e.ID = id },
	GetID: func(e *domain.City) int64 { return e.ID },
}
