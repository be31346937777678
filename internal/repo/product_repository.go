package repo

import "github.com/rogerio-castellano/inventory-keeper/internal/models"

// ProductRepository defines the operations the shell and the CLI use on the inventory.
// Every method reports failure through its error; none of them panic.
type ProductRepository interface {
	Load() error
	Save() error
	Add(code, name string, price float64, quantity int) error
	Delete(code string) error
	Update(code string, fields ProductUpdate) error
	Get(code string) (models.Product, error)
	List() []models.Product
	Exists(code string) bool
	TotalValue() float64
	Filter(pf ProductFilter) ([]models.Product, int)
}

// ProductUpdate holds the fields to change in Update. Nil fields are left untouched.
type ProductUpdate struct {
	Name     *string
	Price    *float64
	Quantity *int
}
