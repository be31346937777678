package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
	"github.com/rogerio-castellano/inventory-keeper/internal/repo"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// RenderProducts renders products as a table, in the order given.
func RenderProducts(products []models.Product) string {
	if len(products) == 0 {
		return "No products."
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Code,
			p.Name,
			formatMoney(p.Price),
			strconv.Itoa(p.Quantity),
			formatMoney(p.Value()),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CODE", "NAME", "PRICE", "QTY", "VALUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= 2:
				return numberStyle
			default:
				return cellStyle
			}
		}).
		String()
}

// RenderProduct renders a single product on one line.
func RenderProduct(p models.Product) string {
	return fmt.Sprintf("%s | %s | qty %d | %s", p.Code, p.Name, p.Quantity, formatMoney(p.Price))
}

// RenderStats renders inventory statistics.
func RenderStats(s repo.Stats, lowStockThreshold int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory statistics"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Products:          %d\n", s.TotalProducts)
	fmt.Fprintf(&b, "  Units in stock:    %d\n", s.TotalUnits)
	fmt.Fprintf(&b, "  Total value:       %s\n", formatMoney(s.TotalValue))
	fmt.Fprintf(&b, "  Low stock (< %d):  %d\n", lowStockThreshold, s.LowStockCount)
	if s.MostValuable.Code != "" {
		fmt.Fprintf(&b, "  Most valuable:     %s (%s) %s\n", s.MostValuable.Code, s.MostValuable.Name, formatMoney(s.MostValuable.Value))
	}
	return b.String()
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
