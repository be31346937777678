package repo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
)

// decodeSnapshot parses a snapshot in either supported container: an array of
// product objects, or an object mapping codes to field objects. Entries are applied in
// file order, so a later entry for the same code replaces an earlier one. Entries
// without a usable code are skipped. ErrCorruptFile is returned for anything else,
// including text that is not valid UTF-8.
func decodeSnapshot(raw []byte, logger *slog.Logger) (map[string]models.Product, error) {
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrCorruptFile)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	products := map[string]models.Product{}
	if err := decodeContainer(dec, products, logger); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrCorruptFile)
	}

	return products, nil
}

func decodeContainer(dec *json.Decoder, products map[string]models.Product, logger *slog.Logger) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch tok {
	case json.Delim('['):
		for i := 0; dec.More(); i++ {
			var item any
			if err := dec.Decode(&item); err != nil {
				return err
			}
			fields, ok := item.(map[string]any)
			if !ok {
				logger.Debug("skipping non-object entry", slog.Int("index", i))
				continue
			}
			v, _ := lookup(fields, codeKeys)
			code := NormalizeCode(v)
			if code == "" {
				logger.Debug("skipping entry without code", slog.Int("index", i))
				continue
			}
			products[code] = normalizeProduct(code, fields, logger)
		}
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := keyTok.(string)
			var item any
			if err := dec.Decode(&item); err != nil {
				return err
			}
			code := NormalizeCode(key)
			fields, ok := item.(map[string]any)
			if code == "" || !ok {
				logger.Debug("skipping entry", slog.String("key", key))
				continue
			}
			products[code] = normalizeProduct(code, fields, logger)
		}
	default:
		return fmt.Errorf("unsupported top-level value %v", tok)
	}

	// closing delimiter
	_, err = dec.Token()
	return err
}

// encodeSnapshot writes products as an indented JSON array. Non-ASCII characters
// are kept as they are.
func encodeSnapshot(products []models.Product) ([]byte, error) {
	if products == nil {
		products = []models.Product{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes data next to path and renames it into place, so a failed
// write never leaves a truncated file behind.
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = fs.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	if err := fs.Rename(tmp, path); err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	return nil
}
