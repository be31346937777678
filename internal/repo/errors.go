package repo

import "errors"

var (
	// ErrProductNotFound is returned when no product exists for a code.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateCode is returned by Add when the code is already taken.
	ErrDuplicateCode = errors.New("product code already exists")
	// ErrEmptyCode is returned when a code is empty after trimming.
	ErrEmptyCode = errors.New("product code is empty")
	// ErrInvalidNumber is returned when a price or quantity is not a usable number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrNegativePrice is returned when a supplied price is below zero.
	ErrNegativePrice = errors.New("price cannot be negative")
	// ErrNegativeQuantity is returned when a supplied quantity is below zero.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// ErrPersist is returned when the inventory could not be written to disk.
	// The in-memory change that triggered the write is kept.
	ErrPersist = errors.New("could not persist inventory")
	// ErrLoadFailed is returned when the backing file could not be read.
	ErrLoadFailed = errors.New("could not load inventory")
	// ErrCorruptFile is returned when the backing file is not a valid snapshot.
	// The original bytes are preserved next to it with the CorruptSuffix.
	ErrCorruptFile = errors.New("inventory file is corrupted")
)
