package api

import (
	"context"
	"net/http"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/notes"
	"github.com/akgroup/erp-core/internal/uow"
)

type attachNoteRequest struct {
	EntityType string              `json:"entity_type"`
	EntityID   int64               `json:"entity_id"`
	Title      *string             `json:"title,omitempty"`
	Content    string              `json:"content"`
	Priority   domain.NotePriority `json:"priority,omitempty"`
	Category   *string             `json:"category,omitempty"`
}

// handleAttachNote attaches a note to any entity the caller names.
func (s *Server) handleAttachNote(w http.ResponseWriter, r *http.Request) {
	var req attachNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	ref := notes.For(notes.EntityKind(req.EntityType), req.EntityID)

	audit := auditFromRequest(r)
	var result *domain.Note
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := notes.NewService(u)
		attached, err := svc.Attach(ctx, audit, ref, req.Title, req.Content, req.Priority, req.Category)
		if err != nil {
			return err
		}
		result = attached
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// handleListNotes lists every note attached to the named entity, most
// recent first.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	entityType := pathString(r, "entityType")
	entityID, err := pathID(r, "entityId")
	if err != nil {
		writeError(w, err)
		return
	}
	ref := notes.For(notes.EntityKind(entityType), entityID)

	audit := auditFromRequest(r)
	var result []*domain.Note
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := notes.NewService(u)
		found, err := svc.For(ctx, ref)
		if err != nil {
			return err
		}
		result = found
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
