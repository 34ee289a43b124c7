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

type createQuoteRequest struct {
	StaffID       int64           `json:"staff_id"`
	CompanyID     int64           `json:"company_id"`
	CurrencyID    int64           `json:"currency_id"`
	StatusID      int64           `json:"status_id"`
	QuoteDate     string          `json:"quote_date"`
	ValidUntil    *string         `json:"valid_until,omitempty"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
}

// handleCreateQuote creates a Quote header with an automatically assigned
// number and no line items; use POST .../lines to build up the document.
func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	quoteDate, err := parseDate(req.QuoteDate)
	if err != nil {
		writeError(w, err)
		return
	}
	var validUntil *time.Time
	if req.ValidUntil != nil {
		d, err := parseDate(*req.ValidUntil)
		if err != nil {
			writeError(w, err)
			return
		}
		validUntil = &d
	}

	quote := &domain.Quote{
		StaffID:    req.StaffID,
		CompanyID:  req.CompanyID,
		CurrencyID: req.CurrencyID,
		StatusID:   req.StatusID,
		QuoteDate:  quoteDate,
		ValidUntil: validUntil,
	}
	quote.TaxPercentage = req.TaxPercentage

	audit := auditFromRequest(r)
	var result *domain.Quote
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := documents.NewQuoteService(u, s.sequences)
		created, err := svc.Create(ctx, audit, quote)
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

// handleGetQuote loads a quote with its line items.
func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	audit := auditFromRequest(r)
	var result *domain.Quote
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := documents.NewQuoteService(u, s.sequences)
		found, err := svc.Get(ctx, id)
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

type addQuoteLineRequest struct {
	ProductID int64            `json:"product_id"`
	Sequence  int              `json:"sequence"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Discount  *decimal.Decimal `json:"discount,omitempty"`
}

// handleAddQuoteLine appends a line item and recalculates totals.
func (s *Server) handleAddQuoteLine(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req addQuoteLineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	line := domain.QuoteProduct{}
	line.ProductID = req.ProductID
	line.Sequence = req.Sequence
	line.Quantity = req.Quantity
	line.UnitPrice = req.UnitPrice
	line.Discount = req.Discount

	audit := auditFromRequest(r)
	var result *domain.Quote
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := documents.NewQuoteService(u, s.sequences)
		updated, err := svc.AddLine(ctx, audit, id, line)
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

type addQuoteLinesRequest struct {
	Lines []addQuoteLineRequest `json:"lines"`
}

// handleAddQuoteLines bulk-appends a batch of line items in one request, for
// importing a product list onto a quote. Throttled by the server's bulk
// operation limiter so a large import cannot starve other requests.
func (s *Server) handleAddQuoteLines(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req addQuoteLinesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	lines := make([]domain.QuoteProduct, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.QuoteProduct{}
		lines[i].ProductID = l.ProductID
		lines[i].Sequence = l.Sequence
		lines[i].Quantity = l.Quantity
		lines[i].UnitPrice = l.UnitPrice
		lines[i].Discount = l.Discount
	}

	audit := auditFromRequest(r)
	var result *domain.Quote
	err = s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := documents.NewQuoteService(u, s.sequences).WithBulkThrottle(s.bulkOps)
		updated, err := svc.AddLines(ctx, audit, id, lines)
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
