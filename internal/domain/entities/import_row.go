package entities

import "github.com/shopspring/decimal"

// RawRow is one parsed line of a product import batch.
type RawRow struct {
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	DeliveryTerm string          `json:"delivery_term"`
}
