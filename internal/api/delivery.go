package api

import (
	"context"
	"net/http"
	"time"

	"github.com/akgroup/erp-core/internal/documents"
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/uow"
)

type createDeliveryRequest struct {
	OrderID      int64  `json:"order_id"`
	StatusID     int64  `json:"status_id"`
	DeliveryDate string `json:"delivery_date"`
}

// handleCreateDelivery creates a DeliveryOrder with an automatically
// assigned, unscoped number.
func (s *Server) handleCreateDelivery(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	deliveryDate, err := parseDate(req.DeliveryDate)
	if err != nil {
		writeError(w, err)
		return
	}

	delivery := &domain.DeliveryOrder{
		OrderID:      req.OrderID,
		StatusID:     req.StatusID,
		DeliveryDate: deliveryDate,
	}

	audit := auditFromRequest(r)
	var result *domain.DeliveryOrder
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := documents.NewDeliveryService(u, s.sequences, time.Now)
		created, err := svc.Create(ctx, audit, delivery)
		if err != nil {
			return err
		}
		result = created
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

type markDeliveredRequest struct {
	DeliveredStatusID int64   `json:"delivered_status_id"`
	SignatureName     string  `json:"signature_name"`
	SignatureID       string  `json:"signature_id"`
	Notes             *string `json:"notes,omitempty"`
}

// handleMarkDelivered records a successful delivery with its signature.
func (s *Server) handleMarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req markDeliveredRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	audit := auditFromRequest(r)
	var result *domain.DeliveryOrder
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := documents.NewDeliveryService(u, s.sequences, time.Now)
		updated, err := svc.MarkDelivered(ctx, audit, id, req.DeliveredStatusID, req.SignatureName, req.SignatureID, req.Notes)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
