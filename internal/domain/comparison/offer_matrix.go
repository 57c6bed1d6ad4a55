// Package comparison assembles the product × supplier offer matrix and ranks
// the offers of every product.
package comparison

import (
	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/domain/normalize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var lineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cotacao_service/line-offer"))

// LineOfferID is the stable id of the line a supplier quotes for a product.
func LineOfferID(supplierID, productID string) string {
	return uuid.NewSHA1(lineNamespace, []byte(supplierID+"|"+productID)).String()
}

// OfferMatrix is the per-quotation products × suppliers shape. Suppliers keep
// insertion order, which is also the ranking tie-break order.
type OfferMatrix struct {
	Products  []entities.Product
	Suppliers []entities.SupplierOffer
}

// NewSupplierLines clones the product list into unpriced lines for a supplier.
func NewSupplierLines(products []entities.Product, supplierID string) []entities.LineOffer {
	lines := make([]entities.LineOffer, 0, len(products))
	for _, p := range products {
		lines = append(lines, entities.LineOffer{
			ID:                LineOfferID(supplierID, p.ID),
			ProductID:         p.ID,
			ProductName:       p.Name,
			SupplierID:        supplierID,
			Quantity:          p.Quantity,
			UnitPrice:         decimal.Zero,
			Total:             decimal.Zero,
			Taxes:             entities.TaxAddOns{Difal: decimal.Zero, IPI: decimal.Zero},
			PreviousUnitPrice: decimal.Zero,
		})
	}
	return lines
}

// BuildOfferMatrix gives every submitted supplier one line per product and
// overlays what the supplier actually quoted. Submitted lines are matched to
// products by ProductID when set, otherwise by name key and quantity; lines
// matching no product are dropped. Inputs are never mutated.
func BuildOfferMatrix(products []entities.Product, submissions []entities.SupplierOffer) OfferMatrix {
	m := OfferMatrix{
		Products:  append([]entities.Product(nil), products...),
		Suppliers: make([]entities.SupplierOffer, 0, len(submissions)),
	}

	for _, sub := range submissions {
		supplier := sub
		supplier.Lines = NewSupplierLines(m.Products, sub.SupplierID)

		taken := make([]bool, len(supplier.Lines))
		for _, submitted := range sub.Lines {
			at := matchLine(m.Products, taken, submitted)
			if at < 0 {
				continue
			}
			taken[at] = true
			overlay(&supplier.Lines[at], submitted)
		}
		m.Suppliers = append(m.Suppliers, supplier)
	}
	return m
}

// MatrixFromQuotation views a quotation's stored offers as a matrix.
func MatrixFromQuotation(q entities.Quotation) OfferMatrix {
	return BuildOfferMatrix(q.Products, q.Suppliers)
}

func matchLine(products []entities.Product, taken []bool, l entities.LineOffer) int {
	if l.ProductID != "" {
		for i, p := range products {
			if !taken[i] && p.ID == l.ProductID {
				return i
			}
		}
		return -1
	}

	fallback := -1
	for i, p := range products {
		if taken[i] || !normalize.SameName(p.Name, l.ProductName) {
			continue
		}
		if l.Quantity.IsZero() || l.Quantity.Equal(p.Quantity) {
			return i
		}
		if fallback < 0 {
			fallback = i
		}
	}
	// Name matches but quantity differs: only usable if the name is unique.
	if fallback >= 0 && countName(products, l.ProductName) == 1 {
		return fallback
	}
	return -1
}

func countName(products []entities.Product, name string) int {
	n := 0
	for _, p := range products {
		if normalize.SameName(p.Name, name) {
			n++
		}
	}
	return n
}

func overlay(dst *entities.LineOffer, src entities.LineOffer) {
	if src.ID != "" {
		dst.ID = src.ID
	}
	dst.DeliveryLeadDays = src.DeliveryLeadDays
	dst.Taxes = src.Taxes
	dst.PreviousUnitPrice = src.PreviousUnitPrice
	dst.SetUnitPrice(src.UnitPrice)
}
