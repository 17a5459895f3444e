package orders

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceCart computes every monetary figure of an order from the catalog
// snapshot. Client-supplied prices are ignored entirely; only product id
// and quantity are read from each line. The function is pure: the same
// cart against the same snapshot always yields the same totals.
func PriceCart(snapshot []Product, lines []CartLine) ([]OrderLine, Totals, error) {
	byID := make(map[string]Product, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	out := make([]OrderLine, 0, len(lines))
	var t Totals
	for _, ln := range lines {
		p, ok := byID[ln.ProductID]
		if !ok {
			return nil, Totals{}, fmt.Errorf("price cart: product not in snapshot: %s", ln.ProductID)
		}
		qty := decimal.NewFromInt(int64(ln.Quantity))
		unitTax := p.TaxAmount()
		ol := OrderLine{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Quantity:       ln.Quantity,
			BasePrice:      p.BasePrice,
			TaxRatePercent: p.TaxRatePercent,
			TaxAmount:      unitTax,
			FinalPrice:     p.FinalPrice(),
			LineSubtotal:   p.BasePrice.Mul(qty),
		}
		out = append(out, ol)
		t.Subtotal = t.Subtotal.Add(ol.LineSubtotal)
		t.TaxTotal = t.TaxTotal.Add(unitTax.Mul(qty))
	}
	t.Total = t.Subtotal.Add(t.TaxTotal)
	return out, t, nil
}
