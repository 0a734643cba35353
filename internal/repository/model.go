package repository

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Item is a single catalog entry as persisted in the data file.
type Item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// ItemInput is a candidate item submitted for creation; the store assigns the id.
// Price is a pointer so a missing price can be told apart from a zero price.
type ItemInput struct {
	Name     string   `json:"name" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
}

// Validate checks the candidate against the item invariants.
// Every failure wraps ErrInvalidItem.
func (in ItemInput) Validate(v *validator.Validate) error {
	if v != nil {
		if err := v.Struct(in); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidItem, describeValidation(err))
		}
	}
	if in.Price != nil && (math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0)) {
		return fmt.Errorf("%w: price must be a finite number", ErrInvalidItem)
	}
	return nil
}

func (in ItemInput) toItem(id int64) Item {
	return Item{ID: id, Name: in.Name, Category: in.Category, Price: *in.Price}
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" "+fe.Tag())
	}
	return strings.Join(fields, ", ")
}
