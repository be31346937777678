package repo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
)

// Keys accepted for each field when reading a snapshot. The first key present wins,
// so the current English names take precedence over the legacy Spanish ones.
var (
	codeKeys     = []string{"code", "codigo"}
	nameKeys     = []string{"name", "nombre"}
	priceKeys    = []string{"price", "precio"}
	quantityKeys = []string{"quantity", "cantidad"}
)

func lookup(fields map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// NormalizeCode converts a raw code value into its canonical trimmed form.
// A nil value is treated as empty.
func NormalizeCode(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(toString(v))
}

// NormalizeProduct coerces untrusted field values into a valid product.
// Values that cannot be coerced fall back to zero and negatives are clamped to zero;
// nothing here is rejected.
func NormalizeProduct(code string, fields map[string]any) models.Product {
	return normalizeProduct(code, fields, discardLogger)
}

var discardLogger = slog.New(slog.DiscardHandler)

// normalizeProduct is NormalizeProduct reporting each field that fell back to zero.
func normalizeProduct(code string, fields map[string]any, logger *slog.Logger) models.Product {
	p := models.Product{Code: strings.TrimSpace(code)}

	if v, ok := lookup(fields, nameKeys); ok && v != nil {
		p.Name = strings.TrimSpace(toString(v))
	}
	if v, ok := lookup(fields, priceKeys); ok {
		f, err := coerceFloat(v)
		if err != nil {
			logger.Debug("price defaulted to 0", slog.String("code", p.Code), slog.Any("error", err))
		}
		p.Price = f
	}
	if v, ok := lookup(fields, quantityKeys); ok {
		n, err := coerceInt(v)
		if err != nil {
			logger.Debug("quantity defaulted to 0", slog.String("code", p.Code), slog.Any("error", err))
		}
		p.Quantity = n
	}

	return clampProduct(p)
}

// clampProduct forces price and quantity into their valid ranges.
func clampProduct(p models.Product) models.Product {
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		p.Price = 0
	}
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	p.Name = strings.TrimSpace(p.Name)
	return p
}

func toString(v any) string {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return cast.ToString(v)
}

// coerceFloat returns 0 together with the error when v is not a finite number.
func coerceFloat(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = strconv.ParseFloat(t.String(), 64)
	case string:
		f, err = cast.ToFloat64E(strings.TrimSpace(t))
	default:
		f, err = cast.ToFloat64E(v)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidNumber
	}
	return f, nil
}

// coerceInt parses strings strictly as base-10 integers ("3.5" fails) and truncates
// numbers toward zero. It returns 0 together with the error when v does not fit an int.
func coerceInt(v any) (int, error) {
	switch t := v.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, err
		}
		return n, nil
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, err
		}
		return truncate(f)
	case float64:
		return truncate(t)
	case float32:
		return truncate(float64(t))
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// truncate converts f to an int, rounding toward zero.
func truncate(f float64) (int, error) {
	if math.IsNaN(f) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("%w: %g does not fit an integer", ErrInvalidNumber, f)
	}
	return int(f), nil
}

// ParsePrice parses a price typed by a user. A comma is accepted as the decimal separator.
func ParsePrice(s string) (float64, error) {
	f, err := coerceFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return f, nil
}

// ParseQuantity parses a quantity typed by a user.
func ParseQuantity(s string) (int, error) {
	n, err := coerceInt(s)
	if err != nil {
		return 0, ErrInvalidNumber
	}
	return n, nil
}
