// Package notes provides a typed wrapper over the polymorphic Note entity,
// so call sites attach notes to a Company, Product, Quote, and so on
// without constructing raw entity_type strings by hand.
package notes

import (
	"context"
	"strings"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
)

// EntityKind names an aggregate that can carry notes. The constants mirror
// domain.KnownNoteEntityTypes.
type EntityKind string

const (
	Company EntityKind = "company"
	Product EntityKind = "product"
	Quote   EntityKind = "quote"
	Order   EntityKind = "order"
	Invoice EntityKind = "invoice"
	Contact EntityKind = "contact"
	Address EntityKind = "address"
	Plant   EntityKind = "plant"
)

// Ref identifies one target an annotation can attach to.
type Ref struct {
	Kind EntityKind
	ID   int64
}

// For builds a Ref for entityID under kind.
func For(kind EntityKind, entityID int64) Ref {
	return Ref{Kind: kind, ID: entityID}
}

// Service attaches and lists notes against Refs.
type Service struct {
	repo *repo.Repository[domain.Note]
}

// NewService builds a Service bound to the transaction carried by u.
func NewService(u *uow.UnitOfWork) *Service {
	return &Service{repo: repo.FromUnitOfWork(u, "note", storemap.Note)}
}

// Attach validates and persists a note on ref. EntityID must be positive
// and Content must be non-empty after trim; an entity_type outside
// domain.KnownNoteEntityTypes is accepted with no error so new entity
// kinds can adopt notes before this list catches up.
func (s *Service) Attach(ctx context.Context, audit uow.AuditContext, ref Ref, title *string, content string, priority domain.NotePriority, category *string) (*domain.Note, error) {
	if ref.ID <= 0 {
		return nil, errs.Field("entity_id", "must_be_positive", "entity_id must be a positive integer")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.Field("content", "required", "content must be non-empty")
	}
	if priority == "" {
		priority = domain.NoteNormal
	}
	if !priority.Valid() {
		return nil, errs.Field("priority", "invalid_priority", "priority must be one of LOW, NORMAL, HIGH, URGENT")
	}

	note := &domain.Note{
		EntityType: strings.ToLower(string(ref.Kind)),
		EntityID:   ref.ID,
		Title:      title,
		Content:    content,
		Priority:   priority,
		Category:   category,
	}
	note.CreatedBy = audit.UserID
	note.UpdatedBy = audit.UserID
	note.IsActive = true

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// For lists every note attached to ref, most recent first.
func (s *Service) For(ctx context.Context, ref Ref) ([]*domain.Note, error) {
	return s.repo.Find(ctx, []repo.Filter{
		{Column: "entity_type", Value: strings.ToLower(string(ref.Kind))},
		{Column: "entity_id", Value: ref.ID},
	}, "created_at", true, 0, 0)
}
