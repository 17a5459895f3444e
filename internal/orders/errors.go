package orders

import (
	"fmt"
	"strings"
)

// StockShortage describes one cart line that cannot be satisfied.
// Missing means the product id is not in the catalog at all.
type StockShortage struct {
	ProductID string
	Name      string
	Requested int
	Available int
	Missing   bool
}

// StockError aggregates every offending line of a submission into the
// single client-facing message the storefront shows.
type StockError struct {
	Shortages []StockShortage
}

func (e *StockError) Error() string {
	var b strings.Builder
	for _, s := range e.Shortages {
		name := s.Name
		if name == "" {
			name = s.ProductID
		}
		switch {
		case s.Missing:
			fmt.Fprintf(&b, "Producto %s no encontrado. ", name)
		case s.Available == 0:
			fmt.Fprintf(&b, "%s está agotado. ", name)
		default:
			fmt.Fprintf(&b, "%s solo tiene %d disponible(s). ", name, s.Available)
		}
	}
	return strings.TrimSpace(b.String())
}
