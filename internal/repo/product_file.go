package repo

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/rogerio-castellano/inventory-keeper/internal/models"
)

// CorruptSuffix is appended to the backing file path to keep a copy of a file that
// could not be parsed.
const CorruptSuffix = ".corrupto"

// FileProductRepository keeps the inventory in memory and mirrors every change to a
// JSON file. It is meant for a single process; there is no locking.
type FileProductRepository struct {
	fs     afero.Fs
	path   string
	mem    *InMemoryProductRepository
	logger *slog.Logger
}

// NewFileProductRepository binds a repository to path and loads it.
//
// The returned repository is never nil and always usable; the error is the result of
// the initial Load, so the caller can warn about a reset inventory.
func NewFileProductRepository(fs afero.Fs, path string, logger *slog.Logger) (*FileProductRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &FileProductRepository{
		fs:     fs,
		path:   path,
		mem:    NewInMemoryProductRepository(),
		logger: logger.With(slog.String("file", path)),
	}
	return r, r.Load()
}

// Path returns the backing file path.
func (r *FileProductRepository) Path() string {
	return r.path
}

// Load replaces the in-memory inventory with the content of the backing file.
//
// A missing file yields an empty inventory. A file that cannot be parsed is copied to
// path+CorruptSuffix and replaced by an empty snapshot; ErrCorruptFile is returned.
// Any other read failure resets the inventory and returns ErrLoadFailed. In every case
// the repository is left empty or fully loaded.
func (r *FileProductRepository) Load() error {
	raw, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		r.mem.Clear()
		if errors.Is(err, os.ErrNotExist) {
			if err := r.Save(); err != nil {
				r.logger.Warn("could not create empty inventory file", slog.Any("error", err))
			}
			return nil
		}
		if serr := r.Save(); serr != nil {
			r.logger.Warn("could not reset inventory file", slog.Any("error", serr))
		}
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	products, err := decodeSnapshot(raw, r.logger)
	if err != nil {
		r.recoverCorrupt(raw, err)
		return err
	}

	r.mem.replace(products)
	r.logger.Debug("inventory loaded", slog.Int("products", len(products)))
	return nil
}

// recoverCorrupt keeps a copy of the unreadable bytes and resets to an empty snapshot.
func (r *FileProductRepository) recoverCorrupt(raw []byte, cause error) {
	backup := r.path + CorruptSuffix
	r.logger.Warn("inventory file is corrupted, resetting",
		slog.String("backup", backup), slog.Any("error", cause))

	if err := afero.WriteFile(r.fs, backup, raw, 0o644); err != nil {
		r.logger.Warn("could not keep a copy of the corrupted file", slog.Any("error", err))
	}

	r.mem.Clear()
	if err := r.Save(); err != nil {
		r.logger.Warn("could not reset inventory file", slog.Any("error", err))
	}
}

// Save writes the whole inventory, sorted by code, to the backing file.
func (r *FileProductRepository) Save() error {
	data, err := encodeSnapshot(r.mem.List())
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersist, err)
	}
	if err := writeFileAtomic(r.fs, r.path, data); err != nil {
		r.logger.Error("could not save inventory", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Add inserts a product and saves. When only the save fails the product stays in
// memory and an ErrPersist error is returned.
func (r *FileProductRepository) Add(code, name string, price float64, quantity int) error {
	if err := r.mem.Add(code, name, price, quantity); err != nil {
		return err
	}
	return r.Save()
}

// Delete removes a product and saves.
func (r *FileProductRepository) Delete(code string) error {
	if err := r.mem.Delete(code); err != nil {
		return err
	}
	return r.Save()
}

// Update changes the supplied fields of a product and saves. A rejected update
// changes nothing and does not write the file.
func (r *FileProductRepository) Update(code string, fields ProductUpdate) error {
	if err := r.mem.Update(code, fields); err != nil {
		return err
	}
	return r.Save()
}

func (r *FileProductRepository) Get(code string) (models.Product, error) {
	return r.mem.Get(code)
}

func (r *FileProductRepository) List() []models.Product {
	return r.mem.List()
}

func (r *FileProductRepository) Exists(code string) bool {
	return r.mem.Exists(code)
}

func (r *FileProductRepository) TotalValue() float64 {
	return r.mem.TotalValue()
}

func (r *FileProductRepository) Filter(pf ProductFilter) ([]models.Product, int) {
	return r.mem.Filter(pf)
}
