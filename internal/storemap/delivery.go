package storemap

import (
	"database/sql"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// DeliveryOrder binds domain.DeliveryOrder to the "delivery_orders" table.
var DeliveryOrder = repo.Mapper[domain.DeliveryOrder]{
	Table: "delivery_orders",
	Columns: []string{
		"number", "order_id", "status_id", "delivery_date", "actual_delivery_date",
		"signature_name", "signature_id", "signature_datetime", "notes",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.DeliveryOrder) error {
		var actualDeliveryDate, signatureDatetime sql.NullTime
		var signatureName, signatureID, notes sql.NullString
		err := row.Scan(&dest.ID, &dest.Number, &dest.OrderID, &dest.StatusID, &dest.DeliveryDate, &actualDeliveryDate,
			&signatureName, &signatureID, &signatureDatetime, &notes,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		if actualDeliveryDate.Valid {
			dest.ActualDeliveryDate = &actualDeliveryDate.Time
		}
		if signatureDatetime.Valid {
			dest.SignatureDatetime = &signatureDatetime.Time
		}
		dest.SignatureName = nullStringPtr(signatureName)
		dest.SignatureID = nullStringPtr(signatureID)
		dest.Notes = nullStringPtr(notes)
		return nil
	},
	Values: func(e *domain.DeliveryOrder) []any {
		return []any{e.Number, e.OrderID, e.StatusID, e.DeliveryDate, e.ActualDeliveryDate,
			e.SignatureName, e.SignatureID, e.SignatureDatetime, e.Notes,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.DeliveryOrder, id int64) { e.ID = id },
	GetID: func(e *domain.DeliveryOrder) int64 { return e.ID },
}
