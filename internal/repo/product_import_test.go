package repo

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
)

func TestImportCSV(t *testing.T) {
	t.Run("valid rows", func(t *testing.T) {
		r := NewInMemoryProductRepository()
		csvData := `code,name,price,quantity
MS-01,Mouse,25.99,10
KB-01,Keyboard,"45,00",5`

		result, err := ImportCSV(strings.NewReader(csvData), r, ImportModeSkip)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Imported)
		assert.Empty(t, result.Errors)
		assert.Equal(t, []models.Product{
			{Code: "KB-01", Name: "Keyboard", Price: 45, Quantity: 5},
			{Code: "MS-01", Name: "Mouse", Price: 25.99, Quantity: 10},
		}, r.List())
	})

	t.Run("invalid rows are reported", func(t *testing.T) {
		r := NewInMemoryProductRepository()
		csvData := `Code,Name,Price,Quantity
MS-01,Mouse,25.99,10
,No code,1,1
NG-01,Negative,-1,3
NN-01,Not a number,abc,3
FR-01,Fractional,1,2.5
SH-01,Short row
KB-01,Keyboard,45,5`

		result, err := ImportCSV(strings.NewReader(csvData), r, ImportModeSkip)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Imported)
		require.Len(t, result.Errors, 5)

		rows := []int{}
		for _, e := range result.Errors {
			rows = append(rows, e.Row)
		}
		assert.Equal(t, []int{3, 4, 5, 6, 7}, rows)
		assert.ErrorIs(t, result.Errors[0], ErrEmptyCode)
		assert.ErrorIs(t, result.Errors[1], ErrNegativePrice)
		assert.ErrorIs(t, result.Errors[2], ErrInvalidNumber)
		assert.ErrorIs(t, result.Errors[3], ErrInvalidNumber)
		assert.Contains(t, result.Errors[0].Error(), "row 3")
	})

	t.Run("existing codes in skip mode", func(t *testing.T) {
		r := NewInMemoryProductRepository()
		require.NoError(t, r.Add("MS-01", "Mouse", 20, 1))

		result, err := ImportCSV(strings.NewReader("code,name,price,quantity\nMS-01,Other,99,9\n"), r, ParseImportMode(""))
		require.NoError(t, err)

		assert.Zero(t, result.Imported)
		require.Len(t, result.Errors, 1)
		assert.ErrorIs(t, result.Errors[0], ErrDuplicateCode)
		p, _ := r.Get("MS-01")
		assert.Equal(t, models.Product{Code: "MS-01", Name: "Mouse", Price: 20, Quantity: 1}, p)
	})

	t.Run("existing codes in update mode", func(t *testing.T) {
		r := NewInMemoryProductRepository()
		require.NoError(t, r.Add("MS-01", "Mouse", 20, 1))

		csvData := "codigo,nombre,precio,cantidad\nMS-01,,99,9\n"
		result, err := ImportCSV(strings.NewReader(csvData), r, ParseImportMode("UPDATE"))
		require.NoError(t, err)

		assert.Equal(t, 1, result.Imported)
		assert.Empty(t, result.Errors)
		p, _ := r.Get("MS-01")
		assert.Equal(t, models.Product{Code: "MS-01", Name: "Mouse", Price: 99, Quantity: 9}, p)
	})

	t.Run("imports are persisted by a file repository", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		r, err := NewFileProductRepository(fs, testPath, discard)
		require.NoError(t, err)

		_, err = ImportCSV(strings.NewReader("code,name,price,quantity\nA,a,1,1\n"), r, ImportModeSkip)
		require.NoError(t, err)

		assert.Equal(t, []models.Product{{Code: "A", Name: "a", Price: 1, Quantity: 1}}, readSnapshot(t, fs, testPath))
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := ImportCSV(strings.NewReader("code,name,price\nA,a,1\n"), NewInMemoryProductRepository(), ImportModeSkip)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing column "quantity"`)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ImportCSV(strings.NewReader(""), NewInMemoryProductRepository(), ImportModeSkip)
		require.Error(t, err)
	})
}
