package repo

// ComputeStats builds inventory statistics from the store's public operations.
// A product is low on stock when its quantity is below lowStockThreshold.
func ComputeStats(store ProductRepository, lowStockThreshold int) Stats {
	s := Stats{TotalValue: store.TotalValue()}

	// List is sorted by code, so the first product with the highest value wins ties.
	for _, p := range store.List() {
		s.TotalProducts++
		s.TotalUnits += p.Quantity
		if p.Quantity < lowStockThreshold {
			s.LowStockCount++
		}
		if v := p.Value(); s.MostValuable.Code == "" || v > s.MostValuable.Value {
			s.MostValuable = ProductValue{Code: p.Code, Name: p.Name, Value: v}
		}
	}

	return s
}
