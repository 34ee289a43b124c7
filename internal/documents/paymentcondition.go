package documents

import (
	"context"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
)

// PaymentConditionService persists PaymentCondition rows, enforcing that
// the three percentages sum to 100 before every write.
type PaymentConditionService struct {
	conditions *repo.Repository[domain.PaymentCondition]
}

// NewPaymentConditionService builds a PaymentConditionService bound to the
// transaction carried by u.
func NewPaymentConditionService(u *uow.UnitOfWork) *PaymentConditionService {
	return &PaymentConditionService{
		conditions: repo.FromUnitOfWork(u, "payment_condition", storemap.PaymentCondition),
	}
}

// Create validates percentages and persists pc.
func (s *PaymentConditionService) Create(ctx context.Context, audit uow.AuditContext, pc *domain.PaymentCondition) (*domain.PaymentCondition, error) {
	if err := pc.ValidatePercentages(); err != nil {
		return nil, err
	}
	now := audit.Now()
	pc.CreatedBy, pc.UpdatedBy = audit.UserID, audit.UserID
	pc.CreatedAt, pc.UpdatedAt = now, now
	pc.IsActive = true
	if err := s.conditions.Create(ctx, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

// Update validates percentages and persists changes to pc.
func (s *PaymentConditionService) Update(ctx context.Context, audit uow.AuditContext, pc *domain.PaymentCondition) (*domain.PaymentCondition, error) {
	if err := pc.ValidatePercentages(); err != nil {
		return nil, err
	}
	pc.UpdatedBy = audit.UserID
	pc.UpdatedAt = audit.Now()
	if err := s.conditions.Update(ctx, pc); err != nil {
		return nil, err
	}
	return pc, nil
}
