// Package field defines the crop record model and the area and input
// quantity calculators.
package field

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/farmtech/fieldbook/internal/apperr"
	"github.com/farmtech/fieldbook/internal/catalog"
)

// Area converts a rectangular field's dimensions in meters to hectares.
func Area(length, width float64) (float64, error) {
	if length <= 0 {
		return 0, fmt.Errorf("field: length %v: %w", length, apperr.ErrInvalidDimension)
	}
	if width <= 0 {
		return 0, fmt.Errorf("field: width %v: %w", width, apperr.ErrInvalidDimension)
	}
	return length * width / 10000, nil
}

// TotalInput computes the total quantity of an input for a field of the
// given area in hectares.
func TotalInput(area, amountPerHa float64) float64 {
	return area * amountPerHa
}

// Measurement is the applied quantity of one input kind on one field.
// A record that carries no measurement for a kind did not apply it.
type Measurement struct {
	Name        string
	AmountPerHa float64
	TotalAmount float64
	Unit        string
}

// Record is one field planting: crop type, dimensions and the inputs
// applied to it. Area is always derived from the dimensions; the one
// exception is import, which trusts the stored value as-is for
// round-trip fidelity. Inputs keys are a subset of the catalog's kinds
// for Type and iterate in catalog declaration order.
type Record struct {
	Type    string
	Length  float64 // meters
	Width   float64 // meters
	Area    float64 // hectares
	NumRows int
	Inputs  *orderedmap.OrderedMap[string, Measurement]
}

// NewRecord builds a record with a derived area and no inputs yet.
func NewRecord(cropType string, length, width float64, numRows int) (Record, error) {
	area, err := Area(length, width)
	if err != nil {
		return Record{}, err
	}
	if numRows < 0 {
		return Record{}, fmt.Errorf("field: num rows %d: %w", numRows, apperr.ErrBadValue)
	}
	return Record{
		Type:    cropType,
		Length:  length,
		Width:   width,
		Area:    area,
		NumRows: numRows,
		Inputs:  orderedmap.New[string, Measurement](),
	}, nil
}

// AddInput records amountPerHa of the given input kind and derives its
// field total. An amount of zero means the input is not applied and
// leaves the record untouched.
func (r *Record) AddInput(kind string, info catalog.InputKind, amountPerHa float64) error {
	if amountPerHa < 0 {
		return fmt.Errorf("field: %s amount %v: %w", kind, amountPerHa, apperr.ErrBadValue)
	}
	if amountPerHa == 0 {
		return nil
	}
	r.Inputs.Set(kind, Measurement{
		Name:        info.Name,
		AmountPerHa: amountPerHa,
		TotalAmount: TotalInput(r.Area, amountPerHa),
		Unit:        info.Unit,
	})
	return nil
}

// Validate checks the structural invariants of a record.
func (r Record) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.Length, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.Width, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.NumRows, validation.Min(0)),
	)
}
