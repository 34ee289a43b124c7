// Package catalog implements the counterparty and product master-data
// write paths: Company, CompanyRut, Contact, Product and the BOM edge
// (ProductComponent), each running its field-level package validate
// checks before a row is stamped and persisted, mirroring the shape of
// package documents' lifecycle services.
package catalog

import (
	"context"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/errs"
	"github.com/akgroup/erp-core/internal/repo"
	"github.com/akgroup/erp-core/internal/storemap"
	"github.com/akgroup/erp-core/internal/uow"
	"github.com/akgroup/erp-core/internal/validate"
)

// CompanyService validates and persists Company rows.
type CompanyService struct {
	companies *repo.Repository[domain.Company]
}

// NewCompanyService builds a CompanyService bound to the transaction
// carried by u.
func NewCompanyService(u *uow.UnitOfWork) *CompanyService {
	return &CompanyService{
		companies: repo.FromUnitOfWork(u, "company", storemap.Company),
	}
}

// Create validates c and persists it.
func (s *CompanyService) Create(ctx context.Context, audit uow.AuditContext, c *domain.Company) (*domain.Company, error) {
	if err := validateCompany(c); err != nil {
		return nil, err
	}
	now := audit.Now()
	c.CreatedBy, c.UpdatedBy = audit.UserID, audit.UserID
	c.CreatedAt, c.UpdatedAt = now, now
	c.IsActive = true
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update validates c and persists changes to it.
func (s *CompanyService) Update(ctx context.Context, audit uow.AuditContext, c *domain.Company) (*domain.Company, error) {
	if err := validateCompany(c); err != nil {
		return nil, err
	}
	c.UpdatedBy = audit.UserID
	c.UpdatedAt = audit.Now()
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindByTrigram looks up the Company carrying the given globally-unique
// trigram code.
func (s *CompanyService) FindByTrigram(ctx context.Context, trigram string) (*domain.Company, error) {
	rows, err := s.companies.QueryWhere(ctx, "trigram = $1", "", trigram)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NotFoundf("company", trigram)
	}
	return rows[0], nil
}

func validateCompany(c *domain.Company) error {
	trigram, err := validate.Trigram(c.Trigram)
	if err != nil {
		return err
	}
	c.Trigram = trigram

	phone, err := validate.Phone(c.Phone)
	if err != nil {
		return err
	}
	c.Phone = phone

	website, err := validate.URL(c.Website)
	if err != nil {
		return err
	}
	c.Website = website
	return nil
}

// CompanyRutService validates and persists CompanyRut rows, and keeps the
// "at most one IsMain=true per company" service-level invariant by
// clearing is_main on the company's other RUTs.
type CompanyRutService struct {
	ruts *repo.Repository[domain.CompanyRut]
}

// NewCompanyRutService builds a CompanyRutService bound to the transaction
// carried by u.
func NewCompanyRutService(u *uow.UnitOfWork) *CompanyRutService {
	return &CompanyRutService{
		ruts: repo.FromUnitOfWork(u, "company_rut", storemap.CompanyRut),
	}
}

// Create normalizes and validates the RUT, persists it, and clears IsMain
// on the company's other RUTs when cr.IsMain is set.
func (s *CompanyRutService) Create(ctx context.Context, audit uow.AuditContext, cr *domain.CompanyRut) (*domain.CompanyRut, error) {
	normalized, err := validate.RUT(&cr.RUT)
	if err != nil {
		return nil, err
	}
	cr.RUT = *normalized

	now := audit.Now()
	cr.CreatedBy, cr.UpdatedBy = audit.UserID, audit.UserID
	cr.CreatedAt, cr.UpdatedAt = now, now
	cr.IsActive = true
	if err := s.ruts.Create(ctx, cr); err != nil {
		return nil, err
	}
	if cr.IsMain {
		if err := s.clearOtherMain(ctx, cr); err != nil {
			return nil, err
		}
	}
	return cr, nil
}

// Update normalizes and validates the RUT, persists changes, and clears
// IsMain on the company's other RUTs when cr.IsMain is set.
func (s *CompanyRutService) Update(ctx context.Context, audit uow.AuditContext, cr *domain.CompanyRut) (*domain.CompanyRut, error) {
	normalized, err := validate.RUT(&cr.RUT)
	if err != nil {
		return nil, err
	}
	cr.RUT = *normalized

	cr.UpdatedBy = audit.UserID
	cr.UpdatedAt = audit.Now()
	if err := s.ruts.Update(ctx, cr); err != nil {
		return nil, err
	}
	if cr.IsMain {
		if err := s.clearOtherMain(ctx, cr); err != nil {
			return nil, err
		}
	}
	return cr, nil
}

func (s *CompanyRutService) clearOtherMain(ctx context.Context, cr *domain.CompanyRut) error {
	siblings, err := s.ruts.Find(ctx, []repo.Filter{{Column: "company_id", Value: cr.CompanyID}}, "", false, 0, 0)
	if err != nil {
		return err
	}
	var others []int64
	for _, sib := range siblings {
		if sib.ID != cr.ID && sib.IsMain {
			others = append(others, sib.ID)
		}
	}
	if len(others) == 0 {
		return nil
	}
	_, err = s.ruts.UpdateMany(ctx, others, map[string]any{"is_main": false})
	return err
}

// ContactService validates and persists Contact rows.
type ContactService struct {
	contacts *repo.Repository[domain.Contact]
}

// NewContactService builds a ContactService bound to the transaction
// carried by u.
func NewContactService(u *uow.UnitOfWork) *ContactService {
	return &ContactService{
		contacts: repo.FromUnitOfWork(u, "contact", storemap.Contact),
	}
}

// Create validates c and persists it.
func (s *ContactService) Create(ctx context.Context, audit uow.AuditContext, c *domain.Contact) (*domain.Contact, error) {
	if err := validateContact(c); err != nil {
		return nil, err
	}
	now := audit.Now()
	c.CreatedBy, c.UpdatedBy = audit.UserID, audit.UserID
	c.CreatedAt, c.UpdatedAt = now, now
	c.IsActive = true
	if err := s.contacts.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update validates c and persists changes to it.
func (s *ContactService) Update(ctx context.Context, audit uow.AuditContext, c *domain.Contact) (*domain.Contact, error) {
	if err := validateContact(c); err != nil {
		return nil, err
	}
	c.UpdatedBy = audit.UserID
	c.UpdatedAt = audit.Now()
	if err := s.contacts.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateContact(c *domain.Contact) error {
	email, err := validate.Email(c.Email)
	if err != nil {
		return err
	}
	c.Email = email

	phone, err := validate.Phone(c.Phone)
	if err != nil {
		return err
	}
	c.Phone = phone

	mobile, err := validate.Phone(c.Mobile)
	if err != nil {
		return err
	}
	c.Mobile = mobile
	return nil
}
