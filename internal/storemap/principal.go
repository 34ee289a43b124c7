package storemap

import (
	"database/sql"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// Principal binds domain.Principal to the "principals" table.
var Principal = repo.Mapper[domain.Principal]{
	Table: "principals",
	Columns: []string{
		"username", "email", "given_name", "family_name", "trigram", "phone", "position", "is_admin",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.Principal) error {
		var trigram, phone, position sql.NullString
		err := row.Scan(&dest.ID, &dest.Username, &dest.Email, &dest.GivenName, &dest.FamilyName, &trigram, &phone, &position, &dest.IsAdmin,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.Trigram = nullStringPtr(trigram)
		dest.Phone = nullStringPtr(phone)
		dest.Position = nullStringPtr(position)
		return nil
	},
	Values: func(e *domain.Principal) []any {
		return []any{e.Username, e.Email, e.GivenName, e.FamilyName, e.Trigram, e.Phone, e.Position, e.IsAdmin,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.Principal, id int64) { e.ID = id },
	GetID: func(e *domain.Principal) int64 { return e.ID },
}
