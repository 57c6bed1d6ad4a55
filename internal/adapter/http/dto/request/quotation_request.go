package request

import (
	"strings"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/usecase"

	"github.com/shopspring/decimal"
)

// RawRowRequest is one purchase-request line as typed or imported by the
// buyer. Quantity accepts a JSON number or a numeric string.
type RawRowRequest struct {
	Name         string          `json:"name" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	DeliveryTerm string          `json:"delivery_term"`
}

type CreateQuotationRequest struct {
	DeliveryLocation string          `json:"delivery_location" binding:"required"`
	PurchaseType     string          `json:"purchase_type" binding:"required"`
	EmergencyReason  string          `json:"emergency_reason"`
	Justification    string          `json:"justification"`
	Rows             []RawRowRequest `json:"rows"`
}

func (r CreateQuotationRequest) ToInput() usecase.CreateQuotationInput {
	return usecase.CreateQuotationInput{
		DeliveryLocation: r.DeliveryLocation,
		PurchaseType:     entities.PurchaseType(strings.ToLower(strings.TrimSpace(r.PurchaseType))),
		EmergencyReason:  r.EmergencyReason,
		Justification:    r.Justification,
		Rows:             ToRawRows(r.Rows),
	}
}

type ImportRowsRequest struct {
	Rows []RawRowRequest `json:"rows" binding:"required,min=1,dive"`
}

func ToRawRows(rows []RawRowRequest) []entities.RawRow {
	if len(rows) == 0 {
		return nil
	}
	out := make([]entities.RawRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.RawRow{
			Name:         r.Name,
			Quantity:     r.Quantity,
			Unit:         r.Unit,
			DeliveryTerm: r.DeliveryTerm,
		})
	}
	return out
}

type SupplierRequest struct {
	SupplierID      string          `json:"supplier_id" binding:"required"`
	SupplierName    string          `json:"supplier_name" binding:"required"`
	PaymentTermDays int             `json:"payment_term_days"`
	FreightType     string          `json:"freight_type"`
	FreightValue    decimal.Decimal `json:"freight_value"`
}

func (r SupplierRequest) ToInput() usecase.SupplierInput {
	return usecase.SupplierInput{
		SupplierID:      r.SupplierID,
		SupplierName:    r.SupplierName,
		PaymentTermDays: r.PaymentTermDays,
		FreightType:     entities.FreightType(strings.ToUpper(strings.TrimSpace(r.FreightType))),
		FreightValue:    r.FreightValue,
	}
}

type LineOfferRequest struct {
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DeliveryLeadDays  int             `json:"delivery_lead_days"`
	Difal             decimal.Decimal `json:"difal"`
	IPI               decimal.Decimal `json:"ipi"`
	PreviousUnitPrice decimal.Decimal `json:"previous_unit_price"`
}

func (r LineOfferRequest) ToUpdate() usecase.LineOfferUpdate {
	return usecase.LineOfferUpdate{
		UnitPrice:         r.UnitPrice,
		DeliveryLeadDays:  r.DeliveryLeadDays,
		Difal:             r.Difal,
		IPI:               r.IPI,
		PreviousUnitPrice: r.PreviousUnitPrice,
	}
}
