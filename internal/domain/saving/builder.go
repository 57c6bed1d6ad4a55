// Package saving derives the archived economy record of an approved quotation.
package saving

import (
	"fmt"
	"time"

	"cotacao_service/internal/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstimatedMarkup inflates the confirmed price into an initial price when no
// baseline exists for a line.
var EstimatedMarkup = decimal.RequireFromString("1.10")

var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cotacao_service/saving-item"))

// BuildSavingRecord turns an approval selection into a concluded record.
//
// Each selected line is priced at the confirmed unit price (the quoted price
// when zero) for the confirmed quantity (the product quantity when zero).
// The initial price is, in order: the selection baseline, the line's previous
// price, or the final price times EstimatedMarkup. Quantities selected for a
// product must add up to the product quantity and every product must be
// covered.
func BuildSavingRecord(q entities.Quotation, approver entities.Actor, selection []entities.SelectedLine, now time.Time) (entities.SavingRecord, error) {
	if len(selection) == 0 {
		return entities.SavingRecord{}, fmt.Errorf("%w: selection is empty", entities.ErrValidation)
	}

	rec := entities.SavingRecord{
		ID:           q.ID,
		QuotationID:  q.ID,
		BuyerID:      q.BuyerID,
		ApprovedBy:   approver.ID,
		RegisteredAt: q.CreatedAt.UTC(),
		ApprovedAt:   now.UTC(),
		InitialTotal: decimal.Zero,
		FinalTotal:   decimal.Zero,
		Rounds:       q.Rounds,
		PurchaseType: q.PurchaseType,
		Status:       entities.SavingStatusConcluded,
		Items:        make([]entities.SavingItem, 0, len(selection)),
	}
	if rec.Rounds < 1 {
		rec.Rounds = 1
	}

	selected := make(map[string]decimal.Decimal, len(q.Products))
	seen := make(map[string]bool, len(selection))

	for _, sel := range selection {
		if seen[sel.LineOfferID] {
			return entities.SavingRecord{}, fmt.Errorf("%w: line %s selected twice", entities.ErrValidation, sel.LineOfferID)
		}
		seen[sel.LineOfferID] = true

		supplier, line, ok := q.FindLine(sel.LineOfferID)
		if !ok {
			return entities.SavingRecord{}, fmt.Errorf("%w: line offer %s", entities.ErrNotFound, sel.LineOfferID)
		}
		product, ok := q.FindProduct(line.ProductID)
		if !ok {
			return entities.SavingRecord{}, fmt.Errorf("%w: product of line %s", entities.ErrNotFound, sel.LineOfferID)
		}

		finalPrice := sel.UnitPrice
		if finalPrice.IsZero() {
			finalPrice = line.UnitPrice
		}
		if !finalPrice.IsPositive() {
			return entities.SavingRecord{}, fmt.Errorf("%w: line %s has no confirmed price", entities.ErrValidation, sel.LineOfferID)
		}
		qty := sel.Quantity
		if qty.IsZero() {
			qty = product.Quantity
		}
		if !qty.IsPositive() {
			return entities.SavingRecord{}, fmt.Errorf("%w: line %s has no quantity", entities.ErrValidation, sel.LineOfferID)
		}

		item := buildItem(rec.ID, product, supplier, line, finalPrice, qty, initialPrice(sel, line, finalPrice))
		rec.Items = append(rec.Items, item)
		selected[product.ID] = selected[product.ID].Add(qty)

		rec.InitialTotal = rec.InitialTotal.Add(item.InitialUnitPrice.Mul(qty))
		rec.FinalTotal = rec.FinalTotal.Add(item.FinalUnitPrice.Mul(qty))
	}

	for _, p := range q.Products {
		got, ok := selected[p.ID]
		if !ok {
			return entities.SavingRecord{}, fmt.Errorf("%w: product %q has no selected offer", entities.ErrValidation, p.Name)
		}
		if !got.Equal(p.Quantity) {
			return entities.SavingRecord{}, fmt.Errorf("%w: product %q selects %s of %s", entities.ErrValidation, p.Name, got, p.Quantity)
		}
	}

	rec.Economy = rec.InitialTotal.Sub(rec.FinalTotal)
	rec.EconomyPercent = entities.EconomyPercent(rec.Economy, rec.InitialTotal)
	return rec, nil
}

func initialPrice(sel entities.SelectedLine, line entities.LineOffer, finalPrice decimal.Decimal) decimal.Decimal {
	switch {
	case sel.BaselineUnitPrice.IsPositive():
		return sel.BaselineUnitPrice
	case line.PreviousUnitPrice.IsPositive():
		return line.PreviousUnitPrice
	default:
		return finalPrice.Mul(EstimatedMarkup)
	}
}

func buildItem(savingID string, p entities.Product, s entities.SupplierOffer, l entities.LineOffer, finalPrice, qty, initial decimal.Decimal) entities.SavingItem {
	base := initial.Mul(qty)
	economy := base.Sub(finalPrice.Mul(qty))
	return entities.SavingItem{
		ID:               uuid.NewSHA1(itemNamespace, []byte(savingID+"|"+l.ID)).String(),
		SavingID:         savingID,
		Description:      p.Name,
		Unit:             p.Unit,
		Quantity:         qty,
		InitialUnitPrice: initial,
		FinalUnitPrice:   finalPrice,
		Economy:          economy,
		EconomyPercent:   entities.EconomyPercent(economy, base),
		SupplierID:       s.SupplierID,
		SupplierName:     s.SupplierName,
		DeliveryLeadDays: l.DeliveryLeadDays,
		PaymentTermDays:  s.PaymentTermDays,
		Freight:          s.FreightValue,
		Status:           entities.SavingItemStatusApproved,
	}
}
