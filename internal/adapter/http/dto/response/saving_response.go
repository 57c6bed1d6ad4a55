package response

import (
	"time"

	"cotacao_service/internal/domain/entities"
)

type SavingItemResponse struct {
	ID               string  `json:"id"`
	Description      string  `json:"description"`
	Unit             string  `json:"unit"`
	Quantity         float64 `json:"quantity"`
	InitialUnitPrice float64 `json:"initial_unit_price"`
	FinalUnitPrice   float64 `json:"final_unit_price"`
	Economy          float64 `json:"economy"`
	EconomyPercent   float64 `json:"economy_percent"`
	SupplierID       string  `json:"supplier_id"`
	SupplierName     string  `json:"supplier_name"`
	DeliveryLeadDays int     `json:"delivery_lead_days"`
	PaymentTermDays  int     `json:"payment_term_days"`
	Freight          float64 `json:"freight"`
	Status           string  `json:"status"`
}

type SavingRecordResponse struct {
	ID             string               `json:"id"`
	QuotationID    string               `json:"quotation_id"`
	BuyerID        string               `json:"buyer_id"`
	ApprovedBy     string               `json:"approved_by"`
	RegisteredAt   time.Time            `json:"registered_at"`
	ApprovedAt     time.Time            `json:"approved_at"`
	InitialTotal   float64              `json:"initial_total"`
	FinalTotal     float64              `json:"final_total"`
	Economy        float64              `json:"economy"`
	EconomyPercent float64              `json:"economy_percent"`
	Rounds         int                  `json:"rounds"`
	PurchaseType   string               `json:"purchase_type"`
	Status         string               `json:"status"`
	Items          []SavingItemResponse `json:"items"`
}

func FromSavingRecord(rec entities.SavingRecord) SavingRecordResponse {
	resp := SavingRecordResponse{
		ID:             rec.ID,
		QuotationID:    rec.QuotationID,
		BuyerID:        rec.BuyerID,
		ApprovedBy:     rec.ApprovedBy,
		RegisteredAt:   rec.RegisteredAt,
		ApprovedAt:     rec.ApprovedAt,
		InitialTotal:   money(rec.InitialTotal),
		FinalTotal:     money(rec.FinalTotal),
		Economy:        money(rec.Economy),
		EconomyPercent: money(rec.EconomyPercent),
		Rounds:         rec.Rounds,
		PurchaseType:   string(rec.PurchaseType),
		Status:         string(rec.Status),
		Items:          make([]SavingItemResponse, 0, len(rec.Items)),
	}
	for _, it := range rec.Items {
		resp.Items = append(resp.Items, SavingItemResponse{
			ID:               it.ID,
			Description:      it.Description,
			Unit:             it.Unit,
			Quantity:         quantity(it.Quantity),
			InitialUnitPrice: unitPrice(it.InitialUnitPrice),
			FinalUnitPrice:   unitPrice(it.FinalUnitPrice),
			Economy:          money(it.Economy),
			EconomyPercent:   money(it.EconomyPercent),
			SupplierID:       it.SupplierID,
			SupplierName:     it.SupplierName,
			DeliveryLeadDays: it.DeliveryLeadDays,
			PaymentTermDays:  it.PaymentTermDays,
			Freight:          money(it.Freight),
			Status:           string(it.Status),
		})
	}
	return resp
}

type HistoricalPriceResponse struct {
	Product      string     `json:"product"`
	Found        bool       `json:"found"`
	UnitPrice    float64    `json:"unit_price,omitempty"`
	SupplierName string     `json:"supplier_name,omitempty"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

func FromHistoricalPrice(product string, p *entities.HistoricalPrice) HistoricalPriceResponse {
	resp := HistoricalPriceResponse{Product: product}
	if p == nil {
		return resp
	}
	at := p.RegisteredAt
	resp.Found = true
	resp.UnitPrice = unitPrice(p.UnitPrice)
	resp.SupplierName = p.SupplierName
	resp.RegisteredAt = &at
	return resp
}
