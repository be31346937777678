package repo

// ProductValue names a product together with its stock value.
type ProductValue struct {
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Stats summarizes the inventory.
type Stats struct {
	TotalProducts int          `json:"total_products"`
	TotalUnits    int          `json:"total_units"`
	TotalValue    float64      `json:"total_value"`
	LowStockCount int          `json:"low_stock_count"`
	MostValuable  ProductValue `json:"most_valuable"`
}
