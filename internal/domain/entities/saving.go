package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type SavingStatus string

const SavingStatusConcluded SavingStatus = "concluded"

type SavingItemStatus string

const SavingItemStatusApproved SavingItemStatus = "approved"

// SavingRecord is the immutable archive of an approved quotation.
//
// Storage model (DynamoDB):
//   - PK: id (equals the quotation id, one record per quotation)
//   - items live in their own table, written in the same transaction
type SavingRecord struct {
	ID             string          `json:"id"`
	QuotationID    string          `json:"quotation_id"`
	BuyerID        string          `json:"buyer_id"`
	ApprovedBy     string          `json:"approved_by"`
	RegisteredAt   time.Time       `json:"registered_at"`
	ApprovedAt     time.Time       `json:"approved_at"`
	InitialTotal   decimal.Decimal `json:"initial_total"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	Economy        decimal.Decimal `json:"economy"`
	EconomyPercent decimal.Decimal `json:"economy_percent"`
	Rounds         int             `json:"rounds"`
	PurchaseType   PurchaseType    `json:"purchase_type"`
	Status         SavingStatus    `json:"status"`
	Items          []SavingItem    `json:"items"`
}

// SavingItem is one approved line of a SavingRecord.
type SavingItem struct {
	ID               string           `json:"id"`
	SavingID         string           `json:"saving_id"`
	Description      string           `json:"description"`
	Unit             string           `json:"unit"`
	Quantity         decimal.Decimal  `json:"quantity"`
	InitialUnitPrice decimal.Decimal  `json:"initial_unit_price"`
	FinalUnitPrice   decimal.Decimal  `json:"final_unit_price"`
	Economy          decimal.Decimal  `json:"economy"`
	EconomyPercent   decimal.Decimal  `json:"economy_percent"`
	SupplierID       string           `json:"supplier_id"`
	SupplierName     string           `json:"supplier_name"`
	DeliveryLeadDays int              `json:"delivery_lead_days"`
	PaymentTermDays  int              `json:"payment_term_days"`
	Freight          decimal.Decimal  `json:"freight"`
	Status           SavingItemStatus `json:"status"`
}

// HistoricalPrice is the last approved price of a product.
type HistoricalPrice struct {
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierName string          `json:"supplier_name"`
	RegisteredAt time.Time       `json:"registered_at"`
}

var hundred = decimal.NewFromInt(100)

// EconomyPercent returns economy / base × 100, or zero when base is zero.
func EconomyPercent(economy, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return economy.Div(base).Mul(hundred)
}
