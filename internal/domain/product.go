package domain

import "github.com/shopspring/decimal"

// ProductType classifies how a Product participates in the BOM graph.
type ProductType string

const (
	ProductArticle      ProductType = "ARTICLE"
	ProductNomenclature ProductType = "NOMENCLATURE"
	ProductService      ProductType = "SERVICE"
)

// Valid reports whether t is one of the three known product types.
func (t ProductType) Valid() bool {
	switch t {
	case ProductArticle, ProductNomenclature, ProductService:
		return true
	}
	return false
}

// PriceCalculationMode selects how bom.Engine derives a Product's cost and
// sale price during roll-up.
type PriceCalculationMode string

const (
	PriceManual          PriceCalculationMode = "MANUAL"
	PriceFromComponents  PriceCalculationMode = "FROM_COMPONENTS"
	PriceFromCostMargin  PriceCalculationMode = "FROM_COST_MARGIN"
)

// Valid reports whether m is one of the three known calculation modes.
func (m PriceCalculationMode) Valid() bool {
	switch m {
	case PriceManual, PriceFromComponents, PriceFromCostMargin:
		return true
	}
	return false
}

// Product is a catalog item: a purchasable/sellable article, a bill-of-
// materials nomenclature, or a service. Stock fields only ever carry
// meaningful values for ARTICLE; the core does not enforce this at the type
// level, leaving it to the service layer.
type Product struct {
	Audited
	SoftDeletable

	ProductType ProductType
	Reference   string // uppercase, unique, >= 2 chars

	DesignationES string
	DesignationEN *string
	DesignationFR *string
	ShortDesignation *string

	UnitID         *int64
	FamilyTypeID   *int64
	MatterID       *int64
	SalesTypeID    *int64
	CountryOfOriginID *int64

	PurchasePrice    *decimal.Decimal
	CostPrice        *decimal.Decimal
	SalePrice        *decimal.Decimal
	SalePriceEUR     *decimal.Decimal
	MarginPercentage *decimal.Decimal // in [-100, 1000]

	StockQuantity *decimal.Decimal
	MinimumStock  *decimal.Decimal
	StockLocation *string

	NetWeight   *decimal.Decimal
	GrossWeight *decimal.Decimal
	Length      *decimal.Decimal
	Width       *decimal.Decimal
	Height      *decimal.Decimal
	Volume      *decimal.Decimal

	PriceCalculationMode PriceCalculationMode
}

// ProductComponent is a directed edge of the BOM graph: ParentID depends on
// Quantity units of ComponentID. ParentID must not equal ComponentID, and
// the edge set as a whole must remain acyclic; both invariants are
// enforced by package bom, not by this type.
type ProductComponent struct {
	Audited

	ParentID    int64
	ComponentID int64
	Quantity    decimal.Decimal // > 0
	Notes       *string
}
