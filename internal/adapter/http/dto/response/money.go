package response

import "github.com/shopspring/decimal"

// money rounds amounts to cents for display. Stored values keep full precision.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// unitPrice renders a quoted price as stored; suppliers quote below the cent.
func unitPrice(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func quantity(d decimal.Decimal) float64 {
	return d.Round(4).InexactFloat64()
}
