// Package storemap centralizes the repo.Mapper definitions binding each
// domain type to its table, one file per table family under internal/db
// style. Service packages import the mapper they need rather than
// redefining SQL column lists locally.
package storemap

import (
	"database/sql"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// Company binds domain.Company to the "companies" table.
var Company = repo.Mapper[domain.Company]{
	Table: "companies",
	Columns: []string{
		"name", "trigram", "main_address", "phone", "website", "intracommunity_number",
		"company_type_id", "country_id", "city_id",
		"created_at", "updated_at", "created_by", "updated_by", "is_active", "is_deleted",
	},
	SoftDeleteColumn: "is_deleted",
	Scan: func(row repo.Scanner, dest *domain.Company) error {
		var mainAddress, phone, website, intracommunity sql.NullString
		var countryID, cityID sql.NullInt64
		err := row.Scan(
			&dest.ID, &dest.Name, &dest.Trigram, &mainAddress, &phone, &website, &intracommunity,
			&dest.CompanyTypeID, &countryID, &cityID,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive, &dest.IsDeleted,
		)
		if err != nil {
			return err
		}
		dest.MainAddress = nullStringPtr(mainAddress)
		dest.Phone = nullStringPtr(phone)
		dest.Website = nullStringPtr(website)
		dest.IntracommunityNumber = nullStringPtr(intracommunity)
		dest.CountryID = nullInt64Ptr(countryID)
		dest.CityID = nullInt64Ptr(cityID)
		return nil
	},
	Values: func(e *domain.Company) []any {
		return []any{
			e.Name, e.Trigram, e.MainAddress, e.Phone, e.Website, e.IntracommunityNumber,
			e.CompanyTypeID, e.CountryID, e.CityID,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive, e.IsDeleted,
		}
	},
	SetID: func(e *domain.Company, id int64) { e.ID = id },
	GetID: func(e *domain.Company) int64 { return e.ID },
}

// CompanyRut binds domain.CompanyRut to the "company_ruts" table.
var CompanyRut = repo.Mapper[domain.CompanyRut]{
	Table:   "company_ruts",
	Columns: []string{"company_id", "rut", "is_main", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.CompanyRut) error {
		return row.Scan(&dest.ID, &dest.CompanyID, &dest.RUT, &dest.IsMain,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
	},
	Values: func(e *domain.CompanyRut) []any {
		return []any{e.CompanyID, e.RUT, e.IsMain, e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.CompanyRut, id int64) { e.ID = id },
	GetID: func(e *domain.CompanyRut) int64 { return e.ID },
}

// Plant binds domain.Plant to the "plants" table.
var Plant = repo.Mapper[domain.Plant]{
	Table:   "plants",
	Columns: []string{"company_id", "name", "address", "phone", "email", "city_id", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.Plant) error {
		var address, phone, email sql.NullString
		var cityID sql.NullInt64
		err := row.Scan(&dest.ID, &dest.CompanyID, &dest.Name, &address, &phone, &email, &cityID,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.Address = nullStringPtr(address)
		dest.Phone = nullStringPtr(phone)
		dest.Email = nullStringPtr(email)
		dest.CityID = nullInt64Ptr(cityID)
		return nil
	},
	Values: func(e *domain.Plant) []any {
		return []any{e.CompanyID, e.Name, e.Address, e.Phone, e.Email, e.CityID,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Plant, id int64) { e.ID = id },
	GetID: func(e *domain.Plant) int64 { return e.ID },
}

// Contact binds domain.Contact to the "contacts" table.
var Contact = repo.Mapper[domain.Contact]{
	Table: "contacts",
	Columns: []string{
		"company_id", "given_name", "family_name", "email", "phone", "mobile", "position", "service_id",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.Contact) error {
		var email, phone, mobile, position sql.NullString
		var serviceID sql.NullInt64
		err := row.Scan(&dest.ID, &dest.CompanyID, &dest.GivenName, &dest.FamilyName, &email, &phone, &mobile, &position, &serviceID,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.Email = nullStringPtr(email)
		dest.Phone = nullStringPtr(phone)
		dest.Mobile = nullStringPtr(mobile)
		dest.Position = nullStringPtr(position)
		dest.ServiceID = nullInt64Ptr(serviceID)
		return nil
	},
	Values: func(e *domain.Contact) []any {
		return []any{e.CompanyID, e.GivenName, e.FamilyName, e.Email, e.Phone, e.Mobile, e.Position, e.ServiceID,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Contact, id int64) { e.ID = id },
	GetID: func(e *domain.Contact) int64 { return e.ID },
}

// Address binds domain.Address to the "addresses" table.
var Address = repo.Mapper[domain.Address]{
	Table:   "addresses",
	Columns: []string{"company_id", "type", "line1", "line2", "city_id", "is_default", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.Address) error {
		var line2 sql.NullString
		var cityID sql.NullInt64
		err := row.Scan(&dest.ID, &dest.CompanyID, &dest.Type, &dest.Line1, &line2, &cityID, &dest.IsDefault,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.Line2 = nullStringPtr(line2)
		dest.CityID = nullInt64Ptr(cityID)
		return nil
	},
	Values: func(e *domain.Address) []any {
		return []any{e.CompanyID, e.Type, e.Line1, e.Line2, e.CityID, e.IsDefault,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Address, id int64) { e.ID = id },
	GetID: func(e *domain.Address) int64 { return e.ID },
}

func nullStringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}
