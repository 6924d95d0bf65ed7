package dto

import (
	"github.com/shipwise/shipwise/internal/domain/calcmethod"
	ierr "github.com/shipwise/shipwise/internal/errors"
	"github.com/shipwise/shipwise/internal/types"
	"github.com/shipwise/shipwise/internal/validator"
	"github.com/shopspring/decimal"
)

// ValidateMethodRequest carries a form-collected calculation method for the
// full submission pass.
type ValidateMethodRequest struct {
	Method calcmethod.MethodInput `json:"method" validate:"required"`
}

func (r *ValidateMethodRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Method.Type.Validate()
}

// ValidateRangeFieldRequest carries a single-field live validation call:
// the whole schedule as the form holds it, plus which field was edited.
type ValidateRangeFieldRequest struct {
	Ranges    []calcmethod.TierRangeInput `json:"ranges" validate:"required"`
	Index     int                         `json:"index" validate:"gte=0"`
	Field     types.RangeField            `json:"field" validate:"required,oneof=min max value"`
	Dimension types.CalculationType       `json:"dimension" validate:"required"`
}

func (r *ValidateRangeFieldRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Dimension.Validate(); err != nil {
		return err
	}
	if !r.Dimension.IsTiered() {
		return ierr.NewErrorf("dimension %s carries no tier schedule", r.Dimension).
			WithHint("Live range validation applies to tiered methods only").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ViolationsResponse is the outcome of a validation pass. Blocking mirrors
// whether any violation carries error severity.
type ViolationsResponse struct {
	Violations types.Violations `json:"violations"`
	Blocking   bool             `json:"blocking"`
}

func NewViolationsResponse(violations types.Violations) ViolationsResponse {
	return ViolationsResponse{
		Violations: violations,
		Blocking:   violations.HasBlocking(),
	}
}

// ResolveFeeRequest asks for the fee a method yields for a measurement. The
// method arrives as the raw structure the storage layer holds.
type ResolveFeeRequest struct {
	Method      map[string]interface{} `json:"method" validate:"required"`
	Measurement decimal.Decimal        `json:"measurement"`
	Order       types.OrderContext     `json:"order"`
}

func (r *ResolveFeeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToCalculationMethod interprets the raw method structure, failing hard on a
// malformed or unknown type tag.
func (r *ResolveFeeRequest) ToCalculationMethod() (*calcmethod.CalculationMethod, error) {
	rawType, ok := r.Method["type"].(string)
	if !ok || rawType == "" {
		return nil, ierr.NewError("calculation method has no type tag").
			WithHint("Calculation method type is required").
			Mark(ierr.ErrInvalidOperation)
	}
	return calcmethod.FromMap(r.Method, types.CalculationType(rawType))
}

// ResolveFeeResponse is the computed fee amount.
type ResolveFeeResponse struct {
	Amount decimal.Decimal `json:"amount"`
}
