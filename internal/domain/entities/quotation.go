package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseType classifies why a quotation was opened.
type PurchaseType string

const (
	PurchaseTypeScheduled PurchaseType = "scheduled"
	PurchaseTypeEmergency PurchaseType = "emergency"
	PurchaseTypeTag       PurchaseType = "tag"
)

func ParsePurchaseType(s string) (PurchaseType, bool) {
	switch PurchaseType(s) {
	case PurchaseTypeScheduled, PurchaseTypeEmergency, PurchaseTypeTag:
		return PurchaseType(s), true
	}
	return "", false
}

// FreightType is the Incoterm-like freight arrangement of a supplier.
type FreightType string

const (
	FreightTypeCIF FreightType = "CIF"
	FreightTypeFOB FreightType = "FOB"
)

// Product is a canonical, deduplicated item requested by the buyer.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	DeliveryTerm string          `json:"delivery_term,omitempty"`
}

// TaxAddOns are informational taxes quoted on top of the unit price.
// They never enter LineOffer.Total.
type TaxAddOns struct {
	Difal decimal.Decimal `json:"difal"`
	IPI   decimal.Decimal `json:"ipi"`
}

// LineOffer is one supplier's price submission for one product.
//
// ProductName is the join key to Product; ProductID is filled when the line
// was cloned from the product list.
type LineOffer struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	SupplierID        string          `json:"supplier_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Total             decimal.Decimal `json:"total"`
	DeliveryLeadDays  int             `json:"delivery_lead_days"`
	Taxes             TaxAddOns       `json:"taxes"`
	PreviousUnitPrice decimal.Decimal `json:"previous_unit_price"`
}

// SetUnitPrice changes the price and re-derives Total.
func (l *LineOffer) SetUnitPrice(price decimal.Decimal) {
	l.UnitPrice = price
	l.Total = l.Quantity.Mul(price)
}

// Priced reports whether the supplier has quoted a usable price.
func (l LineOffer) Priced() bool {
	return l.UnitPrice.IsPositive()
}

// SupplierOffer carries supplier-level terms and that supplier's lines.
type SupplierOffer struct {
	SupplierID      string          `json:"supplier_id"`
	SupplierName    string          `json:"supplier_name"`
	PaymentTermDays int             `json:"payment_term_days"`
	FreightType     FreightType     `json:"freight_type"`
	FreightValue    decimal.Decimal `json:"freight_value"`
	Lines           []LineOffer     `json:"lines"`
}

// Clone returns a copy that shares no slice with s.
func (s SupplierOffer) Clone() SupplierOffer {
	out := s
	out.Lines = append([]LineOffer(nil), s.Lines...)
	return out
}

// Quotation is a buyer-initiated request for supplier pricing.
//
// Storage model (DynamoDB):
//   - PK: id
//   - products and suppliers are nested attributes of the same item
//   - version guards edits, status guards transitions
type Quotation struct {
	ID               string          `json:"id"`
	BuyerID          string          `json:"buyer_id"`
	BuyerName        string          `json:"buyer_name"`
	DeliveryLocation string          `json:"delivery_location"`
	PurchaseType     PurchaseType    `json:"purchase_type"`
	EmergencyReason  string          `json:"emergency_reason,omitempty"`
	Justification    string          `json:"justification,omitempty"`
	Status           QuotationStatus `json:"status"`
	StatusReason     string          `json:"status_reason,omitempty"`
	Rounds           int             `json:"rounds"`
	Version          int             `json:"version"`
	Products         []Product       `json:"products"`
	Suppliers        []SupplierOffer `json:"suppliers"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// FindProduct returns the product with the given id.
func (q Quotation) FindProduct(id string) (Product, bool) {
	for _, p := range q.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FindSupplier returns the index of the supplier with the given id, or -1.
func (q Quotation) FindSupplier(supplierID string) int {
	for i, s := range q.Suppliers {
		if s.SupplierID == supplierID {
			return i
		}
	}
	return -1
}

// FindLine looks a line offer up by id across all suppliers.
func (q Quotation) FindLine(lineID string) (SupplierOffer, LineOffer, bool) {
	for _, s := range q.Suppliers {
		for _, l := range s.Lines {
			if l.ID == lineID {
				return s, l, true
			}
		}
	}
	return SupplierOffer{}, LineOffer{}, false
}

// UnpricedLines counts lines still at zero price.
func (q Quotation) UnpricedLines() int {
	n := 0
	for _, s := range q.Suppliers {
		for _, l := range s.Lines {
			if !l.Priced() {
				n++
			}
		}
	}
	return n
}

// StatusChange is the compare-and-swap command committed for a transition.
type StatusChange struct {
	QuotationID string
	From        QuotationStatus
	To          QuotationStatus
	Reason      string
	NewRound    bool
	At          time.Time
}

// SelectedLine is one line of an approval selection.
//
// Zero UnitPrice and Quantity mean "as quoted"; a positive BaselineUnitPrice
// overrides the initial price used for the economy.
type SelectedLine struct {
	LineOfferID       string          `json:"line_offer_id"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Quantity          decimal.Decimal `json:"quantity"`
	BaselineUnitPrice decimal.Decimal `json:"baseline_unit_price"`
}

// ApprovalDecision is the ephemeral reviewer input driving a transition.
type ApprovalDecision struct {
	Action    Action         `json:"action"`
	Reason    string         `json:"reason"`
	Selection []SelectedLine `json:"selection"`
}
