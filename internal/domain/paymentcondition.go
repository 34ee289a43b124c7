package domain

import (
	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/errs"
)

// PaymentCondition is a payment schedule template referenced by commercial
// documents. Advance, OnDelivery and AfterDelivery must sum to exactly 100;
// ValidatePercentages enforces this before persistence.
type PaymentCondition struct {
	Audited

	Code string // unique, uppercase
	Name string

	DaysToPay int

	Advance        decimal.Decimal // percentage
	OnDelivery     decimal.Decimal // percentage
	AfterDelivery  decimal.Decimal // percentage
	DaysAfterDelivery int
}

// ValidatePercentages reports an error if Advance, OnDelivery and
// AfterDelivery do not sum to exactly 100.
func (p *PaymentCondition) ValidatePercentages() error {
	sum := p.Advance.Add(p.OnDelivery).Add(p.AfterDelivery)
	if !sum.Equal(decimal.NewFromInt(100)) {
		return errs.Field("percentages", "percentages_must_sum_to_100",
			"advance + on_delivery + after_delivery must equal 100")
	}
	return nil
}
