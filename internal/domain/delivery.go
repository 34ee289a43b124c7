package domain

import "time"

// DeliveryOrder tracks the physical shipment of an Order. Status is a
// foreign key into the DeliveryStatus lookup, commonly PENDING, IN_TRANSIT,
// DELIVERED or CANCELLED.
type DeliveryOrder struct {
	Audited

	Number  string
	OrderID int64
	StatusID int64

	DeliveryDate       time.Time
	ActualDeliveryDate *time.Time

	SignatureName      *string
	SignatureID        *string
	SignatureDatetime  *time.Time
	Notes              *string
}

// IsDelivered reports whether the shipment has an actual delivery date.
func (d *DeliveryOrder) IsDelivered() bool {
	return d.ActualDeliveryDate != nil
}

// IsLate reports whether the shipment missed its delivery date: either it
// is still in flight past DeliveryDate, or it arrived after DeliveryDate.
func (d *DeliveryOrder) IsLate(now time.Time) bool {
	if d.ActualDeliveryDate == nil {
		return dateOnly(d.DeliveryDate).Before(dateOnly(now))
	}
	return dateOnly(*d.ActualDeliveryDate).After(dateOnly(d.DeliveryDate))
}

// DaysLate returns the number of whole days the shipment is or was late,
// or zero when it is on time. The reference point is actual delivery date
// once delivered, otherwise now.
func (d *DeliveryOrder) DaysLate(now time.Time) int {
	if !d.IsLate(now) {
		return 0
	}
	reference := now
	if d.ActualDeliveryDate != nil {
		reference = *d.ActualDeliveryDate
	}
	days := dateOnly(reference).Sub(dateOnly(d.DeliveryDate)).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days)
}
