// Package consolidation folds exactly-duplicated import rows into canonical
// products.
package consolidation

import (
	"fmt"
	"strings"

	"cotacao_service/internal/domain/entities"
	"cotacao_service/internal/domain/normalize"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// productNamespace seeds the deterministic product ids.
var productNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("cotacao_service/product"))

// Result is the canonical product list in first-seen order. Folded[i] is the
// number of raw rows merged into Products[i].
type Result struct {
	Products []entities.Product
	Folded   []int
}

// DuplicatesConsolidated counts rows that were merged into an earlier one.
func (r Result) DuplicatesConsolidated() int {
	n := 0
	for _, f := range r.Folded {
		n += f - 1
	}
	return n
}

// Consolidate merges rows sharing (name, quantity, unit). Quantity is part of
// the key, so the same product requested with another quantity stays a
// separate entry. Product ids derive from batchID and the key, so the same
// batch always yields the same ids.
func Consolidate(batchID string, rows []entities.RawRow) (Result, error) {
	index := make(map[string]int, len(rows))
	var res Result

	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if normalize.NameKey(name) == "" {
			return Result{}, fmt.Errorf("%w: row %d: name is required", entities.ErrValidation, i+1)
		}
		if !row.Quantity.IsPositive() {
			return Result{}, fmt.Errorf("%w: row %d: quantity must be positive", entities.ErrValidation, i+1)
		}

		key := compositeKey(name, row.Quantity, row.Unit)
		if at, ok := index[key]; ok {
			res.Products[at].Quantity = res.Products[at].Quantity.Add(row.Quantity)
			res.Folded[at]++
			continue
		}

		index[key] = len(res.Products)
		res.Products = append(res.Products, entities.Product{
			ID:           uuid.NewSHA1(productNamespace, []byte(batchID+"|"+key)).String(),
			Name:         name,
			Unit:         strings.TrimSpace(row.Unit),
			Quantity:     row.Quantity,
			DeliveryTerm: strings.TrimSpace(row.DeliveryTerm),
		})
		res.Folded = append(res.Folded, 1)
	}
	return res, nil
}

func compositeKey(name string, quantity decimal.Decimal, unit string) string {
	return normalize.NameKey(name) + "\x00" + quantity.String() + "\x00" + normalize.NameKey(unit)
}
