package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/documents"
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/uow"
)

type createOrderRequest struct {
	Kind          domain.OrderKind `json:"kind"`
	IsExport      bool             `json:"is_export"`
	StaffID       int64            `json:"staff_id"`
	CompanyID     int64            `json:"company_id"`
	CurrencyID    int64            `json:"currency_id"`
	StatusID      int64            `json:"status_id"`
	OrderDate     string           `json:"order_date"`
	PromisedDate  *string          `json:"promised_date,omitempty"`
	TaxPercentage decimal.Decimal  `json:"tax_percentage"`
}

func (s *Server) newOrderService(u *uow.UnitOfWork) *documents.OrderService {
	quoteSvc := documents.NewQuoteService(u, s.sequences)
	return documents.NewOrderService(u, s.sequences, quoteSvc, time.Now)
}

// handleCreateOrder creates an Order header with an automatically assigned
// number and no line items.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	orderDate, err := parseDate(req.OrderDate)
	if err != nil {
		writeError(w, err)
		return
	}
	var promisedDate *time.Time
	if req.PromisedDate != nil {
		d, err := parseDate(*req.PromisedDate)
		if err != nil {
			writeError(w, err)
			return
		}
		promisedDate = &d
	}

	order := &domain.Order{
		Kind:         req.Kind,
		IsExport:     req.IsExport,
		StaffID:      req.StaffID,
		CompanyID:    req.CompanyID,
		CurrencyID:   req.CurrencyID,
		StatusID:     req.StatusID,
		OrderDate:    orderDate,
		PromisedDate: promisedDate,
	}
	order.TaxPercentage = req.TaxPercentage

	audit := auditFromRequest(r)
	var result *domain.Order
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		created, err := s.newOrderService(u).Create(ctx, audit, order)
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

// handleGetOrder loads an order with its line items.
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	audit := auditFromRequest(r)
	var result *domain.Order
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		found, err := s.newOrderService(u).Get(ctx, id)
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

// handleCreateOrderFromQuote converts a Quote, whatever its status, into a new Order,
// cloning its header fields and line items.
func (s *Server) handleCreateOrderFromQuote(w http.ResponseWriter, r *http.Request) {
	quoteID, err := pathID(r, "quoteId")
	if err != nil {
		writeError(w, err)
		return
	}

	audit := auditFromRequest(r)
	var result *domain.Order
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		created, err := s.newOrderService(u).CreateFromQuote(ctx, audit, quoteID)
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

// handleFindOverdueOrders lists orders whose promised_date has passed
// without completion, as of the optional "as_of" query parameter
// (defaulting to now).
func (s *Server) handleFindOverdueOrders(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		asOf = parsed
	}

	audit := auditFromRequest(r)
	var result []*domain.Order
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		found, err := s.newOrderService(u).FindOverdue(ctx, asOf)
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

type completeOrderRequest struct {
	CompletedStatusID int64 `json:"completed_status_id"`
}

// handleCompleteOrder transitions an order to its completed state.
func (s *Server) handleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req completeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	audit := auditFromRequest(r)
	var result *domain.Order
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		completed, err := s.newOrderService(u).Complete(ctx, audit, id, req.CompletedStatusID)
		if err != nil {
			return err
		}
		result = completed
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
