package comparison

import (
	"context"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/domain/normalize"

	"github.com/shopspring/decimal"
)

// HistoricalLookup returns the last approved price of a product, or nil when
// there is no history.
type HistoricalLookup func(ctx context.Context, productName string) (*entities.HistoricalPrice, error)

// Pick is the winning offer of one ranking dimension.
type Pick struct {
	SupplierID       string
	SupplierName     string
	LineOfferID      string
	UnitPrice        decimal.Decimal
	Total            decimal.Decimal
	DeliveryLeadDays int
	PaymentTermDays  int
}

// OfferRow is one supplier's column for a product.
type OfferRow struct {
	Pick
	PreviousUnitPrice decimal.Decimal
	Taxes             entities.TaxAddOns
	FreightType       entities.FreightType
	FreightValue      decimal.Decimal
	Priced            bool
}

// ProductComparison is the ranking of one product.
//
// Best* are nil when no offer qualifies. Variation is nil when the best-price
// offer carries no previous price.
type ProductComparison struct {
	Product        entities.Product
	Offers         []OfferRow
	BestPrice      *Pick
	BestDelivery   *Pick
	BestPayment    *Pick
	Historical     *entities.HistoricalPrice
	Economy        decimal.Decimal
	EconomyPercent decimal.Decimal
	Variation      *decimal.Decimal
}

// ComparisonReport summarises a whole quotation for the reviewer.
type ComparisonReport struct {
	Items          []ProductComparison
	BestPriceTotal decimal.Decimal
	EconomyTotal   decimal.Decimal
	EconomyMean    decimal.Decimal
	VariationMean  decimal.Decimal
	UnpricedLines  int
}

// RankOffers ranks every product of the matrix on price, delivery and payment
// term. Ties go to the earliest supplier. The matrix is not modified and the
// same inputs always produce the same report; lookup is called at most once
// per distinct product name key.
func RankOffers(ctx context.Context, m OfferMatrix, lookup HistoricalLookup) (ComparisonReport, error) {
	report := ComparisonReport{
		Items:          make([]ProductComparison, 0, len(m.Products)),
		BestPriceTotal: decimal.Zero,
		EconomyTotal:   decimal.Zero,
		EconomyMean:    decimal.Zero,
		VariationMean:  decimal.Zero,
	}
	history := make(map[string]*entities.HistoricalPrice)

	var economySum, variationSum decimal.Decimal
	var economyN, variationN int64

	for _, p := range m.Products {
		item := rankProduct(m, p)
		report.UnpricedLines += countUnpriced(item.Offers)

		hist, err := historical(ctx, lookup, history, p.Name)
		if err != nil {
			return ComparisonReport{}, err
		}
		item.Historical = hist

		if item.BestPrice != nil {
			report.BestPriceTotal = report.BestPriceTotal.Add(item.BestPrice.Total)

			if hist != nil && hist.UnitPrice.IsPositive() {
				base := hist.UnitPrice.Mul(p.Quantity)
				item.Economy = hist.UnitPrice.Sub(item.BestPrice.UnitPrice).Mul(p.Quantity)
				item.EconomyPercent = entities.EconomyPercent(item.Economy, base)
				economySum = economySum.Add(item.EconomyPercent)
				economyN++
			}

			if prev := previousPrice(item); prev.IsPositive() {
				v := entities.EconomyPercent(item.BestPrice.UnitPrice.Sub(prev), prev)
				item.Variation = &v
				variationSum = variationSum.Add(v)
				variationN++
			}
		}
		report.EconomyTotal = report.EconomyTotal.Add(item.Economy)
		report.Items = append(report.Items, item)
	}

	if economyN > 0 {
		report.EconomyMean = economySum.Div(decimal.NewFromInt(economyN))
	}
	if variationN > 0 {
		report.VariationMean = variationSum.Div(decimal.NewFromInt(variationN))
	}
	return report, nil
}

func rankProduct(m OfferMatrix, p entities.Product) ProductComparison {
	item := ProductComparison{
		Product:        p,
		Economy:        decimal.Zero,
		EconomyPercent: decimal.Zero,
	}

	for _, s := range m.Suppliers {
		line, ok := lineFor(s, p)
		if !ok {
			continue
		}
		row := OfferRow{
			Pick: Pick{
				SupplierID:       s.SupplierID,
				SupplierName:     s.SupplierName,
				LineOfferID:      line.ID,
				UnitPrice:        line.UnitPrice,
				Total:            p.Quantity.Mul(line.UnitPrice),
				DeliveryLeadDays: line.DeliveryLeadDays,
				PaymentTermDays:  s.PaymentTermDays,
			},
			PreviousUnitPrice: line.PreviousUnitPrice,
			Taxes:             line.Taxes,
			FreightType:       s.FreightType,
			FreightValue:      s.FreightValue,
			Priced:            line.Priced(),
		}
		item.Offers = append(item.Offers, row)
	}

	for i := range item.Offers {
		row := item.Offers[i]
		if !row.Priced {
			continue
		}
		if item.BestPrice == nil || row.UnitPrice.LessThan(item.BestPrice.UnitPrice) {
			item.BestPrice = pick(row)
		}
		if row.DeliveryLeadDays > 0 && (item.BestDelivery == nil || row.DeliveryLeadDays < item.BestDelivery.DeliveryLeadDays) {
			item.BestDelivery = pick(row)
		}
		if item.BestPayment == nil || row.PaymentTermDays > item.BestPayment.PaymentTermDays {
			item.BestPayment = pick(row)
		}
	}
	return item
}

// lineFor finds the supplier's line for a product: by product id first, then
// by name key for lines that were not cloned from the product list.
func lineFor(s entities.SupplierOffer, p entities.Product) (entities.LineOffer, bool) {
	for _, l := range s.Lines {
		if l.ProductID == p.ID {
			return l, true
		}
	}
	key := normalize.NameKey(p.Name)
	for _, l := range s.Lines {
		if l.ProductID == "" && normalize.NameKey(l.ProductName) == key &&
			(l.Quantity.IsZero() || l.Quantity.Equal(p.Quantity)) {
			return l, true
		}
	}
	return entities.LineOffer{}, false
}

func pick(row OfferRow) *Pick {
	p := row.Pick
	return &p
}

func previousPrice(item ProductComparison) decimal.Decimal {
	for _, o := range item.Offers {
		if o.LineOfferID == item.BestPrice.LineOfferID && o.SupplierID == item.BestPrice.SupplierID {
			return o.PreviousUnitPrice
		}
	}
	return decimal.Zero
}

func countUnpriced(rows []OfferRow) int {
	n := 0
	for _, r := range rows {
		if !r.Priced {
			n++
		}
	}
	return n
}

func historical(ctx context.Context, lookup HistoricalLookup, cache map[string]*entities.HistoricalPrice, name string) (*entities.HistoricalPrice, error) {
	if lookup == nil {
		return nil, nil
	}
	key := normalize.NameKey(name)
	if h, ok := cache[key]; ok {
		return h, nil
	}
	h, err := lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	cache[key] = h
	return h, nil
}
