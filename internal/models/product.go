package models

// Product represents a product record in the inventory.
// Code is the identity of the record and never changes once created.
type Product struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Value is the stock value of the record (price times quantity).
func (p Product) Value() float64 {
	return p.Price * float64(p.Quantity)
}
