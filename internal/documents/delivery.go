package documents

import (
	"context"
	"time"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/sequence"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
)

// DeliveryService implements the DeliveryOrder lifecycle.
type DeliveryService struct {
	deliveries *repo.Repository[domain.DeliveryOrder]
	sequences  *sequence.Generator
	tx         *uow.UnitOfWork
	now        func() time.Time
}

// NewDeliveryService builds a DeliveryService bound to the transaction
// carried by u.
func NewDeliveryService(u *uow.UnitOfWork, sequences *sequence.Generator, now func() time.Time) *DeliveryService {
	if now == nil {
		now = time.Now
	}
	return &DeliveryService{
		deliveries: repo.FromUnitOfWork(u, "delivery_order", storemap.DeliveryOrder),
		sequences:  sequences,
		tx:         u,
		now:        now,
	}
}

// Create assigns a number when absent/sentinel and persists d.
func (s *DeliveryService) Create(ctx context.Context, audit uow.AuditContext, d *domain.DeliveryOrder) (*domain.DeliveryOrder, error) {
	if d.Number == "" || d.Number == numberSentinel {
		number, err := s.sequences.Generate(ctx, s.tx.Tx(), "delivery", d.DeliveryDate.Year(), "")
		if err != nil {
			return nil, err
		}
		d.Number = number
	}

	now := audit.Now()
	d.CreatedBy, d.UpdatedBy = audit.UserID, audit.UserID
	d.CreatedAt, d.UpdatedAt = now, now
	d.IsActive = true

	if err := s.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// MarkDelivered records a successful delivery: status transitions to
// DELIVERED, actual_delivery_date is stamped today, signature_datetime is
// stamped now, and notes are appended.
func (s *DeliveryService) MarkDelivered(ctx context.Context, audit uow.AuditContext, deliveryID int64, deliveredStatusID int64, signatureName, signatureID string, notes *string) (*domain.DeliveryOrder, error) {
	delivery, err := s.deliveries.Get(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	delivery.StatusID = deliveredStatusID
	delivery.ActualDeliveryDate = &now
	delivery.SignatureName = &signatureName
	delivery.SignatureID = &signatureID
	delivery.SignatureDatetime = &now
	if notes != nil {
		delivery.Notes = appendNotes(delivery.Notes, *notes)
	}
	delivery.UpdatedBy = audit.UserID
	delivery.UpdatedAt = audit.Now()

	if err := s.deliveries.Update(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

func appendNotes(existing *string, addition string) *string {
	if existing == nil || *existing == "" {
		return &addition
	}
	combined := *existing + "\n" + addition
	return &combined
}
