package repo

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError describes a rejected input field. It unwraps to one of the
// package sentinel errors so callers can match it with errors.Is.
type ValidationError struct {
	Field       string
	Description string
	err         error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

func (e ValidationError) Unwrap() error {
	return e.err
}

type productInput struct {
	Code     string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	Quantity int     `validate:"gte=0"`
}

type updateInput struct {
	Code     string   `validate:"required"`
	Price    *float64 `validate:"omitnil,gte=0"`
	Quantity *int     `validate:"omitnil,gte=0"`
}

var fieldErrors = map[string]error{
	"Code":     ErrEmptyCode,
	"Price":    ErrNegativePrice,
	"Quantity": ErrNegativeQuantity,
}

func validateProduct(in productInput) error {
	if !finite(in.Price) {
		return ValidationError{Field: "Price", Description: "price must be a number", err: ErrInvalidNumber}
	}
	return translate(validate.Struct(in))
}

func validateUpdate(in updateInput) error {
	if in.Price != nil && !finite(*in.Price) {
		return ValidationError{Field: "Price", Description: "price must be a number", err: ErrInvalidNumber}
	}
	return translate(validate.Struct(in))
}

// translate turns validator field errors into ValidationErrors, joined in field order.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		sentinel, ok := fieldErrors[fe.Field()]
		if !ok {
			sentinel = ErrInvalidNumber
		}
		errs = append(errs, ValidationError{Field: fe.Field(), Description: sentinel.Error(), err: sentinel})
	}
	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
