package api

import (
	"context"
	"net/http"

	"github.com/akgroup/erp-core/internal/catalog"
	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/uow"
)

type createCompanyRequest struct {
	Name                 string  `json:"name"`
	Trigram              string  `json:"trigram"`
	Phone                *string `json:"phone,omitempty"`
	Website              *string `json:"website,omitempty"`
	IntracommunityNumber *string `json:"intracommunity_number,omitempty"`
	CompanyTypeID        int64   `json:"company_type_id"`
	CountryID            *int64  `json:"country_id,omitempty"`
	CityID               *int64  `json:"city_id,omitempty"`
}

// handleCreateCompany creates a Company after validating its trigram,
// phone and website.
func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	company := &domain.Company{
		Name:                 req.Name,
		Trigram:              req.Trigram,
		Phone:                req.Phone,
		Website:              req.Website,
		IntracommunityNumber: req.IntracommunityNumber,
		CompanyTypeID:        req.CompanyTypeID,
		CountryID:            req.CountryID,
		CityID:               req.CityID,
	}

	audit := auditFromRequest(r)
	var result *domain.Company
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := catalog.NewCompanyService(u)
		created, err := svc.Create(ctx, audit, company)
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

// handleFindCompanyByTrigram looks up a Company by its trigram code.
func (s *Server) handleFindCompanyByTrigram(w http.ResponseWriter, r *http.Request) {
	trigram := pathString(r, "trigram")

	audit := auditFromRequest(r)
	var result *domain.Company
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := catalog.NewCompanyService(u)
		found, err := svc.FindByTrigram(ctx, trigram)
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

type createContactRequest struct {
	CompanyID  int64   `json:"company_id"`
	GivenName  string  `json:"given_name"`
	FamilyName string  `json:"family_name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Mobile     *string `json:"mobile,omitempty"`
	Position   *string `json:"position,omitempty"`
	ServiceID  *int64  `json:"service_id,omitempty"`
}

// handleCreateContact creates a Contact after validating its email and
// phone numbers.
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	contact := &domain.Contact{
		CompanyID:  req.CompanyID,
		GivenName:  req.GivenName,
		FamilyName: req.FamilyName,
		Email:      req.Email,
		Phone:      req.Phone,
		Mobile:     req.Mobile,
		Position:   req.Position,
		ServiceID:  req.ServiceID,
	}

	audit := auditFromRequest(r)
	var result *domain.Contact
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := catalog.NewContactService(u)
		created, err := svc.Create(ctx, audit, contact)
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

type createCompanyRutRequest struct {
	CompanyID int64  `json:"company_id"`
	RUT       string `json:"rut"`
	IsMain    bool   `json:"is_main"`
}

// handleCreateCompanyRut creates a CompanyRut after validating the RUT
// check digit, clearing any previous IsMain RUT on the same company when
// this one is marked main.
func (s *Server) handleCreateCompanyRut(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	rut := &domain.CompanyRut{CompanyID: req.CompanyID, RUT: req.RUT, IsMain: req.IsMain}

	audit := auditFromRequest(r)
	var result *domain.CompanyRut
	err := s.factory.Run(r.Context(), audit, func(ctx context.Context, u *uow.UnitOfWork) error {
		svc := catalog.NewCompanyRutService(u)
		created, err := svc.Create(ctx, audit, rut)
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
