package shell

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
	"github.com/rogerio-castellano/inventory-keeper/internal/repo"
)

var discard = slog.New(slog.DiscardHandler)

func seeded(t *testing.T) *repo.InMemoryProductRepository {
	t.Helper()
	r := repo.NewInMemoryProductRepository()
	require.NoError(t, r.Add("KB-01", "Keyboard", 45, 5))
	require.NoError(t, r.Add("MS-01", "Mouse", 25.99, 10))
	return r
}

// run feeds the given answers, one per line, to a new shell and returns its output.
func run(t *testing.T, store repo.ProductRepository, answers ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(answers, "\n") + "\n")

	err := New(store, in, &out, WithLogger(discard)).Run()
	require.NoError(t, err)
	return out.String()
}

func TestShell_Exit(t *testing.T) {
	out := run(t, repo.NewInMemoryProductRepository(), "7")

	assert.Contains(t, out, "1) List")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestShell_EndOfInput(t *testing.T) {
	var out bytes.Buffer

	err := New(seeded(t), strings.NewReader("2\nNEW\n"), &out, WithLogger(discard)).Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestShell_InvalidOption(t *testing.T) {
	out := run(t, repo.NewInMemoryProductRepository(), "9", "7")
	assert.Contains(t, out, "Invalid option.")
}

func TestShell_List(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		out := run(t, repo.NewInMemoryProductRepository(), "1", "7")
		assert.Contains(t, out, "No products.")
		assert.Contains(t, out, "Total value: $0.00")
	})

	t.Run("products", func(t *testing.T) {
		out := run(t, seeded(t), "1", "7")

		assert.Contains(t, out, "Keyboard")
		assert.Contains(t, out, "$25.99")
		assert.Contains(t, out, "Total value: $484.90")
		assert.Less(t, strings.Index(out, "KB-01"), strings.Index(out, "MS-01"))
	})
}

func TestShell_Add(t *testing.T) {
	t.Run("valid product after retries", func(t *testing.T) {
		r := repo.NewInMemoryProductRepository()

		out := run(t, r, "2", " PD-01 ", "Mouse pad", "abc", "-2", "9,5", "2.5", "3", "7")

		assert.Contains(t, out, "Enter a valid number.")
		assert.Contains(t, out, "Must be >= 0.")
		assert.Contains(t, out, "Enter a valid integer.")
		assert.Contains(t, out, "Product added.")
		p, err := r.Get("PD-01")
		require.NoError(t, err)
		assert.Equal(t, models.Product{Code: "PD-01", Name: "Mouse pad", Price: 9.5, Quantity: 3}, p)
	})

	t.Run("empty code", func(t *testing.T) {
		r := repo.NewInMemoryProductRepository()
		out := run(t, r, "2", "   ", "7")

		assert.Contains(t, out, "The code cannot be empty.")
		assert.Empty(t, r.List())
	})

	t.Run("existing code", func(t *testing.T) {
		out := run(t, seeded(t), "2", "MS-01", "7")
		assert.Contains(t, out, `A product with code "MS-01" already exists.`)
	})
}

func TestShell_Update(t *testing.T) {
	t.Run("keep empty answers", func(t *testing.T) {
		r := seeded(t)

		out := run(t, r, "3", "MS-01", "", "30", "", "7")

		assert.Contains(t, out, "MS-01 | Mouse | qty 10 | $25.99")
		assert.Contains(t, out, "Product updated.")
		p, _ := r.Get("MS-01")
		assert.Equal(t, models.Product{Code: "MS-01", Name: "Mouse", Price: 30, Quantity: 10}, p)
	})

	t.Run("unknown code", func(t *testing.T) {
		out := run(t, seeded(t), "3", "XX", "7")
		assert.Contains(t, out, "Product not found.")
	})
}

func TestShell_Remove(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		r := seeded(t)

		out := run(t, r, "4", "KB-01", "s", "7")

		assert.Contains(t, out, "Remove KB-01 (Keyboard)?")
		assert.Contains(t, out, "Product removed.")
		assert.False(t, r.Exists("KB-01"))
	})

	t.Run("cancelled", func(t *testing.T) {
		r := seeded(t)

		out := run(t, r, "4", "KB-01", "", "7")

		assert.Contains(t, out, "Cancelled.")
		assert.True(t, r.Exists("KB-01"))
	})

	t.Run("empty code", func(t *testing.T) {
		out := run(t, seeded(t), "4", "", "7")
		assert.Contains(t, out, "The code cannot be empty.")
	})
}

func TestShell_Search(t *testing.T) {
	out := run(t, seeded(t), "5", "mou", "7")

	assert.Contains(t, out, "MS-01")
	assert.NotContains(t, out, "KB-01")
	assert.Contains(t, out, "1 match(es).")
}

func TestShell_Stats(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("6\n7\n")

	require.NoError(t, New(seeded(t), in, &out, WithLowStockThreshold(6), WithLogger(discard)).Run())

	assert.Contains(t, out.String(), "Inventory statistics")
	assert.Contains(t, out.String(), "Units in stock:    15")
	assert.Contains(t, out.String(), "Low stock (< 6):  1")
	assert.Contains(t, out.String(), "Most valuable:     MS-01 (Mouse) $259.90")
}

func TestShell_PersistFailure(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/inventory.json", []byte("[]"), 0o644))
	r, err := repo.NewFileProductRepository(afero.NewReadOnlyFs(base), "/inventory.json", discard)
	require.NoError(t, err)

	out := run(t, r, "2", "A", "a", "1", "1", "7")

	assert.Contains(t, out, "Warning: the change was applied but could not be saved to disk.")
	assert.True(t, r.Exists("A"))
}

func TestRenderProducts(t *testing.T) {
	assert.Equal(t, "No products.", RenderProducts(nil))

	out := RenderProducts([]models.Product{{Code: "A", Name: "Thing", Price: 2.5, Quantity: 4}})
	for _, want := range []string{"CODE", "NAME", "PRICE", "QTY", "VALUE", "Thing", "$2.50", "$10.00"} {
		assert.Contains(t, out, want)
	}
}
