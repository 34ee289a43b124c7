package storemap

import (
	"database/sql"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// Note binds domain.Note to the "notes" table.
var Note = repo.Mapper[domain.Note]{
	Table: "notes",
	Columns: []string{
		"entity_type", "entity_id", "title", "content", "priority", "category",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.Note) error {
		var title, category sql.NullString
		err := row.Scan(
			&dest.ID, &dest.EntityType, &dest.EntityID, &title, &dest.Content,
			&dest.Priority, &category,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive,
		)
		if err != nil {
			return err
		}
		dest.Title = nullStringPtr(title)
		dest.Category = nullStringPtr(category)
		return nil
	},
	Values: func(e *domain.Note) []any {
		return []any{
			e.EntityType, e.EntityID, e.Title, e.Content, e.Priority, e.Category,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive,
		}
	},
	SetID: func(e *domain.Note, id int64) { e.ID = id },
	GetID: func(e *domain.Note) int64 { return e.ID },
}
