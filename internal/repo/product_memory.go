package repo

import (
	"slices"
	"strings"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository
// keyed by product code. Load and Save are no-ops.
type InMemoryProductRepository struct {
	products map[string]models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: map[string]models.Product{},
	}
}

func (r *InMemoryProductRepository) Load() error { return nil }

func (r *InMemoryProductRepository) Save() error { return nil }

// Add inserts a new product. Input is validated strictly: nothing is clamped.
func (r *InMemoryProductRepository) Add(code, name string, price float64, quantity int) error {
	code = strings.TrimSpace(code)
	if err := validateProduct(productInput{Code: code, Price: price, Quantity: quantity}); err != nil {
		return err
	}
	if _, exists := r.products[code]; exists {
		return ErrDuplicateCode
	}

	r.products[code] = models.Product{
		Code:     code,
		Name:     strings.TrimSpace(name),
		Price:    price,
		Quantity: quantity,
	}
	return nil
}

// Delete removes a product by its code.
func (r *InMemoryProductRepository) Delete(code string) error {
	code, err := r.existing(code)
	if err != nil {
		return err
	}
	delete(r.products, code)
	return nil
}

// Update changes the supplied fields of an existing product. Any invalid field
// rejects the whole update and leaves the product untouched.
func (r *InMemoryProductRepository) Update(code string, fields ProductUpdate) error {
	code, err := r.existing(code)
	if err != nil {
		return err
	}
	if err := validateUpdate(updateInput{Code: code, Price: fields.Price, Quantity: fields.Quantity}); err != nil {
		return err
	}

	p := r.products[code]
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Price != nil {
		p.Price = *fields.Price
	}
	if fields.Quantity != nil {
		p.Quantity = *fields.Quantity
	}
	r.products[code] = clampProduct(p)
	return nil
}

// Get retrieves a product by its code.
func (r *InMemoryProductRepository) Get(code string) (models.Product, error) {
	code, err := r.existing(code)
	if err != nil {
		return models.Product{}, err
	}
	return r.products[code], nil
}

// List returns every product ordered by code.
func (r *InMemoryProductRepository) List() []models.Product {
	list := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b models.Product) int {
		return strings.Compare(a.Code, b.Code)
	})
	return list
}

func (r *InMemoryProductRepository) Exists(code string) bool {
	_, ok := r.products[strings.TrimSpace(code)]
	return ok
}

// TotalValue sums price times quantity over all products.
func (r *InMemoryProductRepository) TotalValue() float64 {
	var total float64
	for _, p := range r.products {
		total += p.Value()
	}
	return total
}

func (r *InMemoryProductRepository) Clear() {
	r.products = map[string]models.Product{}
}

// replace swaps the whole content of the repository. Entries must already be normalized.
func (r *InMemoryProductRepository) replace(products map[string]models.Product) {
	r.products = products
}

// existing trims the code and checks that a product is stored under it.
func (r *InMemoryProductRepository) existing(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrEmptyCode
	}
	if _, ok := r.products[code]; !ok {
		return "", ErrProductNotFound
	}
	return code, nil
}
