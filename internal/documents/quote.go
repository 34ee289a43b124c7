// Package documents implements the four commercial document lifecycle
// services: number assignment, totals calculation, and line-item
// mutation, each sharing a common shape. One file per aggregate family.
package documents

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/ratelimit"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/sequence"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
)

const numberSentinel = "STRING"

// QuoteService implements the Quote lifecycle: creation with automatic
// numbering, line item management, and total recalculation.
type QuoteService struct {
	quotes    *repo.Repository[domain.Quote]
	lines     *repo.Repository[domain.QuoteProduct]
	companies *repo.Repository[domain.Company]
	sequences *sequence.Generator
	tx        *sql.Tx
}

// NewQuoteService builds a QuoteService bound to the transaction carried by
// u, so every write participates in the caller's commit/rollback.
func NewQuoteService(u *uow.UnitOfWork, sequences *sequence.Generator) *QuoteService {
	return &QuoteService{
		quotes:    repo.FromUnitOfWork(u, "quote", storemap.Quote),
		lines:     repo.FromUnitOfWork(u, "quote_line", storemap.QuoteProduct),
		companies: repo.FromUnitOfWork(u, "company", storemap.Company),
		sequences: sequences,
		tx:        u.Tx(),
	}
}

// WithBulkThrottle attaches a bulk-operation throttle to the line-item
// repository, so AddLines waits for a token before issuing its batched
// insert. Returns s for chaining.
func (s *QuoteService) WithBulkThrottle(t *ratelimit.Throttle) *QuoteService {
	s.lines.WithThrottle(t)
	return s
}

// Create assigns a number if q.Number is empty or the legacy "STRING"
// sentinel, validates the date range, and persists q with no line items.
// Use AddLine afterward to build up the document.
func (s *QuoteService) Create(ctx context.Context, audit uow.AuditContext, q *domain.Quote) (*domain.Quote, error) {
	if q.Number == "" || q.Number == numberSentinel {
		company, err := s.companies.Get(ctx, q.CompanyID)
		if err != nil {
			return nil, err
		}
		number, err := s.sequences.Generate(ctx, s.tx, "quote", q.QuoteDate.Year(), company.Trigram)
		if err != nil {
			return nil, err
		}
		q.Number = number
	}

	if q.ValidUntil != nil && q.ValidUntil.Before(q.QuoteDate) {
		return nil, errs.Field("valid_until", "before_quote_date", "valid_until cannot be before quote_date")
	}

	now := audit.Now()
	q.CreatedBy, q.UpdatedBy = audit.UserID, audit.UserID
	q.CreatedAt, q.UpdatedAt = now, now
	q.IsActive = true
	q.Items = nil
	recomputeQuoteTotals(q)

	if err := s.quotes.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Get loads a quote header with its line items attached, ordered by
// sequence.
func (s *QuoteService) Get(ctx context.Context, quoteID int64) (*domain.Quote, error) {
	quote, err := s.quotes.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.Find(ctx, []repo.Filter{{Column: "quote_id", Value: quoteID}}, "sequence", false, 0, 0)
	if err != nil {
		return nil, err
	}
	quote.Items = make([]domain.QuoteProduct, len(lines))
	for i, l := range lines {
		quote.Items[i] = *l
	}
	return quote, nil
}

// AddLine appends a line item to the quote, recalculates its subtotal and
// the parent's totals, and persists both.
func (s *QuoteService) AddLine(ctx context.Context, audit uow.AuditContext, quoteID int64, line domain.QuoteProduct) (*domain.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	now := audit.Now()
	line.QuoteID = quoteID
	line.CreatedBy, line.UpdatedBy = audit.UserID, audit.UserID
	line.CreatedAt, line.UpdatedAt = now, now
	line.IsActive = true
	line.RecomputeSubtotal()
	if err := s.lines.Create(ctx, &line); err != nil {
		return nil, err
	}
	quote.Items = append(quote.Items, line)

	recomputeQuoteTotals(quote)
	quote.UpdatedBy = audit.UserID
	quote.UpdatedAt = now
	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// AddLines appends a batch of line items in one round trip, for bulk quote
// entry (e.g. importing a product list). Each line is stamped and its
// subtotal recomputed before the batched insert; the insert passes through
// the line repository's throttle, if one is attached, so a large import
// cannot starve other transactions of connections.
func (s *QuoteService) AddLines(ctx context.Context, audit uow.AuditContext, quoteID int64, newLines []domain.QuoteProduct) (*domain.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	now := audit.Now()
	toInsert := make([]*domain.QuoteProduct, len(newLines))
	for i := range newLines {
		line := newLines[i]
		line.QuoteID = quoteID
		line.CreatedBy, line.UpdatedBy = audit.UserID, audit.UserID
		line.CreatedAt, line.UpdatedAt = now, now
		line.IsActive = true
		line.RecomputeSubtotal()
		toInsert[i] = &line
	}
	if err := s.lines.CreateMany(ctx, toInsert); err != nil {
		return nil, err
	}
	for _, l := range toInsert {
		quote.Items = append(quote.Items, *l)
	}

	recomputeQuoteTotals(quote)
	quote.UpdatedBy = audit.UserID
	quote.UpdatedAt = now
	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// UpdateLine replaces the line at the given sequence with updated fields,
// recomputing both the line and parent totals.
func (s *QuoteService) UpdateLine(ctx context.Context, audit uow.AuditContext, quoteID int64, lineSequence int, quantity, unitPrice decimal.Decimal, discount *decimal.Decimal) (*domain.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	now := audit.Now()
	found := false
	for i := range quote.Items {
		if quote.Items[i].Sequence == lineSequence {
			quote.Items[i].Quantity = quantity
			quote.Items[i].UnitPrice = unitPrice
			quote.Items[i].Discount = discount
			quote.Items[i].UpdatedBy = audit.UserID
			quote.Items[i].UpdatedAt = now
			quote.Items[i].RecomputeSubtotal()
			if err := s.lines.Update(ctx, &quote.Items[i]); err != nil {
				return nil, err
			}
			found = true
			break
		}
	}
	if !found {
		return nil, errs.NotFoundf("quote_line", lineSequence)
	}

	recomputeQuoteTotals(quote)
	quote.UpdatedBy = audit.UserID
	quote.UpdatedAt = now
	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// RemoveLine deletes the line at the given sequence and recalculates
// totals.
func (s *QuoteService) RemoveLine(ctx context.Context, audit uow.AuditContext, quoteID int64, lineSequence int) (*domain.Quote, error) {
	quote, err := s.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	kept := quote.Items[:0]
	found := false
	for _, item := range quote.Items {
		if item.Sequence == lineSequence {
			if err := s.lines.Delete(ctx, item.ID); err != nil {
				return nil, err
			}
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, errs.NotFoundf("quote_line", lineSequence)
	}
	quote.Items = kept

	recomputeQuoteTotals(quote)
	quote.UpdatedBy = audit.UserID
	quote.UpdatedAt = audit.Now()
	if err := s.quotes.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// recomputeQuoteTotals sums current line subtotals into the parent and
// derives tax/total: each line's subtotal is assumed already current.
func recomputeQuoteTotals(q *domain.Quote) {
	subtotal := decimal.Zero
	for _, item := range q.Items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	q.Subtotal = subtotal
	q.Recompute()
}
