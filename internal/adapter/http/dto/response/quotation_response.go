package response

import (
	"time"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/usecase"
)

type ProductResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	DeliveryTerm string  `json:"delivery_term,omitempty"`
}

type LineOfferResponse struct {
	ID                string  `json:"id"`
	ProductID         string  `json:"product_id"`
	ProductName       string  `json:"product_name"`
	Quantity          float64 `json:"quantity"`
	UnitPrice         float64 `json:"unit_price"`
	Total             float64 `json:"total"`
	DeliveryLeadDays  int     `json:"delivery_lead_days"`
	Difal             float64 `json:"difal"`
	IPI               float64 `json:"ipi"`
	PreviousUnitPrice float64 `json:"previous_unit_price"`
}

type SupplierOfferResponse struct {
	SupplierID      string              `json:"supplier_id"`
	SupplierName    string              `json:"supplier_name"`
	PaymentTermDays int                 `json:"payment_term_days"`
	FreightType     string              `json:"freight_type,omitempty"`
	FreightValue    float64             `json:"freight_value"`
	Lines           []LineOfferResponse `json:"lines"`
}

type QuotationResponse struct {
	ID               string                  `json:"id"`
	BuyerID          string                  `json:"buyer_id"`
	BuyerName        string                  `json:"buyer_name"`
	DeliveryLocation string                  `json:"delivery_location"`
	PurchaseType     string                  `json:"purchase_type"`
	EmergencyReason  string                  `json:"emergency_reason,omitempty"`
	Justification    string                  `json:"justification,omitempty"`
	Status           string                  `json:"status"`
	StatusReason     string                  `json:"status_reason,omitempty"`
	Rounds           int                     `json:"rounds"`
	Version          int                     `json:"version"`
	UnpricedLines    int                     `json:"unpriced_lines"`
	Products         []ProductResponse       `json:"products"`
	Suppliers        []SupplierOfferResponse `json:"suppliers"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func FromQuotation(q entities.Quotation) QuotationResponse {
	resp := QuotationResponse{
		ID:               q.ID,
		BuyerID:          q.BuyerID,
		BuyerName:        q.BuyerName,
		DeliveryLocation: q.DeliveryLocation,
		PurchaseType:     string(q.PurchaseType),
		EmergencyReason:  q.EmergencyReason,
		Justification:    q.Justification,
		Status:           string(q.Status),
		StatusReason:     q.StatusReason,
		Rounds:           q.Rounds,
		Version:          q.Version,
		UnpricedLines:    q.UnpricedLines(),
		Products:         make([]ProductResponse, 0, len(q.Products)),
		Suppliers:        make([]SupplierOfferResponse, 0, len(q.Suppliers)),
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
	for _, p := range q.Products {
		resp.Products = append(resp.Products, ProductResponse{
			ID:           p.ID,
			Name:         p.Name,
			Unit:         p.Unit,
			Quantity:     quantity(p.Quantity),
			DeliveryTerm: p.DeliveryTerm,
		})
	}
	for _, s := range q.Suppliers {
		sr := SupplierOfferResponse{
			SupplierID:      s.SupplierID,
			SupplierName:    s.SupplierName,
			PaymentTermDays: s.PaymentTermDays,
			FreightType:     string(s.FreightType),
			FreightValue:    money(s.FreightValue),
			Lines:           make([]LineOfferResponse, 0, len(s.Lines)),
		}
		for _, l := range s.Lines {
			sr.Lines = append(sr.Lines, LineOfferResponse{
				ID:                l.ID,
				ProductID:         l.ProductID,
				ProductName:       l.ProductName,
				Quantity:          quantity(l.Quantity),
				UnitPrice:         unitPrice(l.UnitPrice),
				Total:             money(l.Total),
				DeliveryLeadDays:  l.DeliveryLeadDays,
				Difal:             money(l.Taxes.Difal),
				IPI:               money(l.Taxes.IPI),
				PreviousUnitPrice: unitPrice(l.PreviousUnitPrice),
			})
		}
		resp.Suppliers = append(resp.Suppliers, sr)
	}
	return resp
}

type ImportResponse struct {
	RowsRead               int               `json:"rows_read"`
	DuplicatesConsolidated int               `json:"duplicates_consolidated"`
	Quotation              QuotationResponse `json:"quotation"`
}

func FromImportResult(r usecase.ImportResult) ImportResponse {
	return ImportResponse{
		RowsRead:               r.RowsRead,
		DuplicatesConsolidated: r.DuplicatesConsolidated,
		Quotation:              FromQuotation(r.Quotation),
	}
}

type TransitionResponse struct {
	Quotation QuotationResponse     `json:"quotation"`
	Saving    *SavingRecordResponse `json:"saving,omitempty"`
}

func FromTransitionResult(r usecase.TransitionResult) TransitionResponse {
	resp := TransitionResponse{Quotation: FromQuotation(r.Quotation)}
	if r.Saving != nil {
		s := FromSavingRecord(*r.Saving)
		resp.Saving = &s
	}
	return resp
}

type AllowedActionsResponse struct {
	QuotationID string   `json:"quotation_id"`
	Actions     []string `json:"actions"`
}

func FromAllowedActions(quotationID string, actions []entities.Action) AllowedActionsResponse {
	resp := AllowedActionsResponse{QuotationID: quotationID, Actions: make([]string, 0, len(actions))}
	for _, a := range actions {
		resp.Actions = append(resp.Actions, string(a))
	}
	return resp
}
