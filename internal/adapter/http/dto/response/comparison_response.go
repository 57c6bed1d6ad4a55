package response

import (
	"cotacao_service/internal/domain/comparison"
)

type PickResponse struct {
	SupplierID       string  `json:"supplier_id"`
	SupplierName     string  `json:"supplier_name"`
	LineOfferID      string  `json:"line_offer_id"`
	UnitPrice        float64 `json:"unit_price"`
	Total            float64 `json:"total"`
	DeliveryLeadDays int     `json:"delivery_lead_days"`
	PaymentTermDays  int     `json:"payment_term_days"`
}

type OfferRowResponse struct {
	PickResponse
	PreviousUnitPrice float64 `json:"previous_unit_price"`
	Difal             float64 `json:"difal"`
	IPI               float64 `json:"ipi"`
	FreightType       string  `json:"freight_type,omitempty"`
	FreightValue      float64 `json:"freight_value"`
	Priced            bool    `json:"priced"`
}

type ProductComparisonResponse struct {
	ProductID      string                   `json:"product_id"`
	ProductName    string                   `json:"product_name"`
	Unit           string                   `json:"unit"`
	Quantity       float64                  `json:"quantity"`
	Offers         []OfferRowResponse       `json:"offers"`
	BestPrice      *PickResponse            `json:"best_price"`
	BestDelivery   *PickResponse            `json:"best_delivery"`
	BestPayment    *PickResponse            `json:"best_payment"`
	Historical     *HistoricalPriceResponse `json:"historical"`
	Economy        float64                  `json:"economy"`
	EconomyPercent float64                  `json:"economy_percent"`
	Variation      *float64                 `json:"variation"`
}

type ComparisonResponse struct {
	QuotationID    string                      `json:"quotation_id"`
	Items          []ProductComparisonResponse `json:"items"`
	BestPriceTotal float64                     `json:"best_price_total"`
	EconomyTotal   float64                     `json:"economy_total"`
	EconomyMean    float64                     `json:"economy_mean"`
	VariationMean  float64                     `json:"variation_mean"`
	UnpricedLines  int                         `json:"unpriced_lines"`
}

func FromComparisonReport(quotationID string, r comparison.ComparisonReport) ComparisonResponse {
	resp := ComparisonResponse{
		QuotationID:    quotationID,
		Items:          make([]ProductComparisonResponse, 0, len(r.Items)),
		BestPriceTotal: money(r.BestPriceTotal),
		EconomyTotal:   money(r.EconomyTotal),
		EconomyMean:    money(r.EconomyMean),
		VariationMean:  money(r.VariationMean),
		UnpricedLines:  r.UnpricedLines,
	}
	for _, it := range r.Items {
		item := ProductComparisonResponse{
			ProductID:      it.Product.ID,
			ProductName:    it.Product.Name,
			Unit:           it.Product.Unit,
			Quantity:       quantity(it.Product.Quantity),
			Offers:         make([]OfferRowResponse, 0, len(it.Offers)),
			BestPrice:      fromPick(it.BestPrice),
			BestDelivery:   fromPick(it.BestDelivery),
			BestPayment:    fromPick(it.BestPayment),
			Economy:        money(it.Economy),
			EconomyPercent: money(it.EconomyPercent),
		}
		for _, o := range it.Offers {
			item.Offers = append(item.Offers, OfferRowResponse{
				PickResponse:      *fromPick(&o.Pick),
				PreviousUnitPrice: unitPrice(o.PreviousUnitPrice),
				Difal:             money(o.Taxes.Difal),
				IPI:               money(o.Taxes.IPI),
				FreightType:       string(o.FreightType),
				FreightValue:      money(o.FreightValue),
				Priced:            o.Priced,
			})
		}
		if it.Historical != nil {
			h := FromHistoricalPrice(it.Product.Name, it.Historical)
			item.Historical = &h
		}
		if it.Variation != nil {
			v := money(*it.Variation)
			item.Variation = &v
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func fromPick(p *comparison.Pick) *PickResponse {
	if p == nil {
		return nil
	}
	return &PickResponse{
		SupplierID:       p.SupplierID,
		SupplierName:     p.SupplierName,
		LineOfferID:      p.LineOfferID,
		UnitPrice:        unitPrice(p.UnitPrice),
		Total:            money(p.Total),
		DeliveryLeadDays: p.DeliveryLeadDays,
		PaymentTermDays:  p.PaymentTermDays,
	}
}
