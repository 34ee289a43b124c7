package documents

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/sequence"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
)

// OrderService implements the Order lifecycle, including conversion from
// a Quote; the quote's status is not checked.
type OrderService struct {
	orders    *repo.Repository[domain.Order]
	lines     *repo.Repository[domain.OrderProduct]
	companies *repo.Repository[domain.Company]
	quoteSvc  *QuoteService
	sequences *sequence.Generator
	tx        *sql.Tx
	now       func() time.Time
}

// NewOrderService builds an OrderService bound to the transaction carried
// by u. quoteSvc supplies CreateFromQuote's source data.
func NewOrderService(u *uow.UnitOfWork, sequences *sequence.Generator, quoteSvc *QuoteService, now func() time.Time) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		orders:    repo.FromUnitOfWork(u, "order", storemap.Order),
		lines:     repo.FromUnitOfWork(u, "order_line", storemap.OrderProduct),
		companies: repo.FromUnitOfWork(u, "company", storemap.Company),
		quoteSvc:  quoteSvc,
		sequences: sequences,
		tx:        u.Tx(),
		now:       now,
	}
}

// Create assigns a number when absent/sentinel, validates the date range,
// and persists o with no line items.
func (s *OrderService) Create(ctx context.Context, audit uow.AuditContext, o *domain.Order) (*domain.Order, error) {
	if o.Number == "" || o.Number == numberSentinel {
		company, err := s.companies.Get(ctx, o.CompanyID)
		if err != nil {
			return nil, err
		}
		number, err := s.sequences.Generate(ctx, s.tx, "order", o.OrderDate.Year(), company.Trigram)
		if err != nil {
			return nil, err
		}
		o.Number = number
	}

	if o.PromisedDate != nil && o.PromisedDate.Before(o.OrderDate) {
		return nil, errs.Field("promised_date", "before_order_date", "promised_date cannot be before order_date")
	}

	now := audit.Now()
	o.CreatedBy, o.UpdatedBy = audit.UserID, audit.UserID
	o.CreatedAt, o.UpdatedAt = now, now
	o.IsActive = true
	o.Items = nil
	recomputeOrderTotals(o)

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Get loads an order header with its line items attached, ordered by
// sequence.
func (s *OrderService) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.Find(ctx, []repo.Filter{{Column: "order_id", Value: orderID}}, "sequence", false, 0, 0)
	if err != nil {
		return nil, err
	}
	order.Items = make([]domain.OrderProduct, len(lines))
	for i, l := range lines {
		order.Items[i] = *l
	}
	return order, nil
}

// AddLine appends a line item and recalculates totals.
func (s *OrderService) AddLine(ctx context.Context, audit uow.AuditContext, orderID int64, line domain.OrderProduct) (*domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := audit.Now()
	line.OrderID = orderID
	line.CreatedBy, line.UpdatedBy = audit.UserID, audit.UserID
	line.CreatedAt, line.UpdatedAt = now, now
	line.IsActive = true
	line.RecomputeSubtotal()
	if err := s.lines.Create(ctx, &line); err != nil {
		return nil, err
	}
	order.Items = append(order.Items, line)

	recomputeOrderTotals(order)
	order.UpdatedBy = audit.UserID
	order.UpdatedAt = now
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateFromQuote clones the quote's header fields and line items into a
// new Order linked back via QuoteID, issuing a number from the "order"
// family's sequence bucket, distinct from the quote's own bucket.
func (s *OrderService) CreateFromQuote(ctx context.Context, audit uow.AuditContext, quoteID int64) (*domain.Order, error) {
	quote, err := s.quoteSvc.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Kind:           domain.OrderSales,
		StaffID:        quote.StaffID,
		CompanyID:      quote.CompanyID,
		CurrencyID:     quote.CurrencyID,
		QuoteID:        &quote.ID,
		OrderDate:      s.now().UTC(),
		DocumentTotals: quote.DocumentTotals,
	}

	company, err := s.companies.Get(ctx, order.CompanyID)
	if err != nil {
		return nil, err
	}
	number, err := s.sequences.Generate(ctx, s.tx, "order", order.OrderDate.Year(), company.Trigram)
	if err != nil {
		return nil, err
	}
	now := audit.Now()
	order.Number = number
	order.CreatedBy, order.UpdatedBy = audit.UserID, audit.UserID
	order.CreatedAt, order.UpdatedAt = now, now
	order.IsActive = true

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	order.Items = make([]domain.OrderProduct, 0, len(quote.Items))
	for _, line := range quote.Items {
		orderLine := domain.OrderProduct{
			LineItem: line.LineItem,
			OrderID:  order.ID,
		}
		orderLine.ID = 0
		orderLine.CreatedBy, orderLine.UpdatedBy = audit.UserID, audit.UserID
		orderLine.CreatedAt, orderLine.UpdatedAt = now, now
		orderLine.IsActive = true
		if err := s.lines.Create(ctx, &orderLine); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, orderLine)
	}

	return order, nil
}

// Complete transitions o to its completed state, stamping CompletedDate.
func (s *OrderService) Complete(ctx context.Context, audit uow.AuditContext, orderID int64, completedStatusID int64) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	today := s.now().UTC()
	order.StatusID = completedStatusID
	order.CompletedDate = &today
	order.UpdatedBy = audit.UserID
	order.UpdatedAt = audit.Now()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindOverdue returns every order with a promised_date before asOf that has
// not yet been completed, oldest promised date first.
func (s *OrderService) FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.Order, error) {
	return s.orders.QueryWhere(ctx, "promised_date < $1 AND completed_date IS NULL", "promised_date", asOf)
}

func recomputeOrderTotals(o *domain.Order) {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	o.Subtotal = subtotal
	o.Recompute()
}
