package storemap

import (
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// PaymentCondition binds domain.PaymentCondition to the
// "payment_conditions" table.
var PaymentCondition = repo.Mapper[domain.PaymentCondition]{
	Table: "payment_conditions",
	Columns: []string{
		"code", "name", "days_to_pay", "advance", "on_delivery", "after_delivery", "days_after_delivery",
		"created_at", "updated_at", "created_by", "updated_by", "is_active",
	},
	Scan: func(row repo.Scanner, dest *domain.PaymentCondition) error {
		return row.Scan(&dest.ID, &dest.Code, &dest.Name, &dest.DaysToPay, &dest.Advance, &dest.OnDelivery, &dest.AfterDelivery, &dest.DaysAfterDelivery,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
	},
	Values: func(e *domain.PaymentCondition) []any {
		return []any{e.Code, e.Name, e.DaysToPay, e.Advance, e.OnDelivery, e.AfterDelivery, e.DaysAfterDelivery,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.PaymentCondition, id int64) { e.ID = id },
	GetID: func(e *domain.PaymentCondition) int64 { return e.ID },
}
