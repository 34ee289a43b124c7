package documents

import (
	"context"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/sequence"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
)

// InvoiceService implements both invoice families: the core only
// enforces number uniqueness and totals, leaving SII/customs encoding to
// the host application.
type InvoiceService struct {
	sii       *repo.Repository[domain.InvoiceSII]
	export    *repo.Repository[domain.InvoiceExport]
	sequences *sequence.Generator
	tx        *uow.UnitOfWork
}

// NewInvoiceService builds an InvoiceService bound to the transaction
// carried by u.
func NewInvoiceService(u *uow.UnitOfWork, sequences *sequence.Generator) *InvoiceService {
	return &InvoiceService{
		sii:       repo.FromUnitOfWork(u, "invoice_sii", storemap.InvoiceSII),
		export:    repo.FromUnitOfWork(u, "invoice_export", storemap.InvoiceExport),
		sequences: sequences,
		tx:        u,
	}
}

// CreateSII assigns a number when absent/sentinel and persists inv.
func (s *InvoiceService) CreateSII(ctx context.Context, audit uow.AuditContext, inv *domain.InvoiceSII) (*domain.InvoiceSII, error) {
	if inv.Number == "" || inv.Number == numberSentinel {
		number, err := s.sequences.Generate(ctx, s.tx.Tx(), "invoice_sii", inv.InvoiceDate.Year(), "")
		if err != nil {
			return nil, err
		}
		inv.Number = number
	}
	now := audit.Now()
	inv.CreatedBy, inv.UpdatedBy = audit.UserID, audit.UserID
	inv.CreatedAt, inv.UpdatedAt = now, now
	inv.IsActive = true
	inv.Recompute()

	if err := s.sii.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateExport assigns a number when absent/sentinel and persists inv.
func (s *InvoiceService) CreateExport(ctx context.Context, audit uow.AuditContext, inv *domain.InvoiceExport) (*domain.InvoiceExport, error) {
	if inv.Number == "" || inv.Number == numberSentinel {
		number, err := s.sequences.Generate(ctx, s.tx.Tx(), "invoice_export", inv.InvoiceDate.Year(), "")
		if err != nil {
			return nil, err
		}
		inv.Number = number
	}
	now := audit.Now()
	inv.CreatedBy, inv.UpdatedBy = audit.UserID, audit.UserID
	inv.CreatedAt, inv.UpdatedAt = now, now
	inv.IsActive = true
	inv.Recompute()

	if err := s.export.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
