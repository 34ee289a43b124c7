package storemap

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/akgroup/erp-core/internal/domain"
	"github.com/akgroup/erp-core/internal/repo"
)

// Product binds domain.Product to the "products" table.
var Product = repo.Mapper[domain.Product]{
	Table: "products",
	Columns: []string{
		"product_type", "reference", "designation_es", "designation_en", "designation_fr", "short_designation",
		"unit_id", "family_type_id", "matter_id", "sales_type_id", "country_of_origin_id",
		"purchase_price", "cost_price", "sale_price", "sale_price_eur", "margin_percentage",
		"stock_quantity", "minimum_stock", "stock_location",
		"net_weight", "gross_weight", "length", "width", "height", "volume",
		"price_calculation_mode",
		"created_at", "updated_at", "created_by", "updated_by", "is_active", "is_deleted",
	},
	SoftDeleteColumn: "is_deleted",
	Scan: func(row repo.Scanner, dest *domain.Product) error {
		var designationEN, designationFR, shortDesignation sql.NullString
		var unitID, familyTypeID, matterID, salesTypeID, countryOfOriginID sql.NullInt64
		var purchasePrice, costPrice, salePrice, salePriceEUR, marginPercentage decimal.NullDecimal
		var stockQuantity, minimumStock decimal.NullDecimal
		var stockLocation sql.NullString
		var netWeight, grossWeight, length, width, height, volume decimal.NullDecimal

		err := row.Scan(
			&dest.ID, &dest.ProductType, &dest.Reference, &dest.DesignationES, &designationEN, &designationFR, &shortDesignation,
			&unitID, &familyTypeID, &matterID, &salesTypeID, &countryOfOriginID,
			&purchasePrice, &costPrice, &salePrice, &salePriceEUR, &marginPercentage,
			&stockQuantity, &minimumStock, &stockLocation,
			&netWeight, &grossWeight, &length, &width, &height, &volume,
			&dest.PriceCalculationMode,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive, &dest.IsDeleted,
		)
		if err != nil {
			return err
		}
		dest.DesignationEN = nullStringPtr(designationEN)
		dest.DesignationFR = nullStringPtr(designationFR)
		dest.ShortDesignation = nullStringPtr(shortDesignation)
		dest.UnitID = nullInt64Ptr(unitID)
		dest.FamilyTypeID = nullInt64Ptr(familyTypeID)
		dest.MatterID = nullInt64Ptr(matterID)
		dest.SalesTypeID = nullInt64Ptr(salesTypeID)
		dest.CountryOfOriginID = nullInt64Ptr(countryOfOriginID)
		dest.PurchasePrice = nullDecimalPtr(purchasePrice)
		dest.CostPrice = nullDecimalPtr(costPrice)
		dest.SalePrice = nullDecimalPtr(salePrice)
		dest.SalePriceEUR = nullDecimalPtr(salePriceEUR)
		dest.MarginPercentage = nullDecimalPtr(marginPercentage)
		dest.StockQuantity = nullDecimalPtr(stockQuantity)
		dest.MinimumStock = nullDecimalPtr(minimumStock)
		dest.StockLocation = nullStringPtr(stockLocation)
		dest.NetWeight = nullDecimalPtr(netWeight)
		dest.GrossWeight = nullDecimalPtr(grossWeight)
		dest.Length = nullDecimalPtr(length)
		dest.Width = nullDecimalPtr(width)
		dest.Height = nullDecimalPtr(height)
		dest.Volume = nullDecimalPtr(volume)
		return nil
	},
	Values: func(e *domain.Product) []any {
		return []any{
			e.ProductType, e.Reference, e.DesignationES, e.DesignationEN, e.DesignationFR, e.ShortDesignation,
			e.UnitID, e.FamilyTypeID, e.MatterID, e.SalesTypeID, e.CountryOfOriginID,
			e.PurchasePrice, e.CostPrice, e.SalePrice, e.SalePriceEUR, e.MarginPercentage,
			e.StockQuantity, e.MinimumStock, e.StockLocation,
			e.NetWeight, e.GrossWeight, e.Length, e.Width, e.Height, e.Volume,
			e.PriceCalculationMode,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive, e.IsDeleted,
		}
	},
	SetID: func(e *domain.Product, id int64) { e.ID = id },
	GetID: func(e *domain.Product) int64 { return e.ID },
}

// ProductComponent binds domain.ProductComponent to the "product_components" table.
var ProductComponent = repo.Mapper[domain.ProductComponent]{
	Table:   "product_components",
	Columns: []string{"parent_id", "component_id", "quantity", "notes", "created_at", "updated_at", "created_by", "updated_by", "is_active"},
	Scan: func(row repo.Scanner, dest *domain.ProductComponent) error {
		var notes sql.NullString
		err := row.Scan(&dest.ID, &dest.ParentID, &dest.ComponentID, &dest.Quantity, &notes,
			&dest.CreatedAt, &dest.UpdatedAt, &dest.CreatedBy, &dest.UpdatedBy, &dest.IsActive)
		if err != nil {
			return err
		}
		dest.Notes = nullStringPtr(notes)
		return nil
	},
	Values: func(e *domain.ProductComponent) []any {
		return []any{e.ParentID, e.ComponentID, e.Quantity, e.Notes,
			e.CreatedAt, e.UpdatedAt, e.CreatedBy, e.UpdatedBy, e.IsActive}
	},
	SetID: func(e *domain.ProductComponent, id int64) { e.ID = id },
	GetID: func(e *domain.ProductComponent) int64 { return e.ID },
}

func nullDecimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	return &n.Decimal
}
