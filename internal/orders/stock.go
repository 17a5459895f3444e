package orders

// CheckStock cross-references the submitted cart against a catalog
// snapshot taken at the start of the request. It returns nil when every
// line is satisfiable, otherwise a StockError covering all offending
// lines. Nothing is reserved here; the authoritative decrement happens
// inside the persist transaction.
func CheckStock(snapshot []Product, lines []CartLine) *StockError {
	byID := make(map[string]Product, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID] = p
	}

	var shortages []StockShortage
	for _, ln := range lines {
		p, ok := byID[ln.ProductID]
		if !ok {
			shortages = append(shortages, StockShortage{
				ProductID: ln.ProductID,
				Name:      ln.Name,
				Requested: ln.Quantity,
				Missing:   true,
			})
			continue
		}
		if p.Stock < ln.Quantity {
			shortages = append(shortages, StockShortage{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: ln.Quantity,
				Available: p.Stock,
			})
		}
	}

	if len(shortages) > 0 {
		return &StockError{Shortages: shortages}
	}
	return nil
}
