package termstructure

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// rowValidate checks the struct tags on Row.
// Initialized in init() with the custom "finite" tag.
var rowValidate *validator.Validate

func init() {
	rowValidate = validator.New()
	_ = rowValidate.RegisterValidation("finite", validateFinite)
}

// validateFinite rejects NaN and infinite floats, which would otherwise
// slip past gt/lt comparisons in surprising ways.
func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate reports the first problem found in the table, wrapped in
// ErrInvalidInput. Rows must be consecutive maturities 1..N and every
// maturity from 2 on must carry a yield volatility.
func (t Table) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty term structure", ErrInvalidInput)
	}

	for k, row := range t {
		if err := rowValidate.Struct(row); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fe := verrs[0]
				return fmt.Errorf("%w: maturity %d: field %s failed %q %s",
					ErrInvalidInput, row.Maturity, fe.Field(), fe.Tag(), fe.Param())
			}
			return fmt.Errorf("%w: maturity %d: %v", ErrInvalidInput, row.Maturity, err)
		}
		if row.Maturity != k+1 {
			return fmt.Errorf("%w: row %d has maturity %d, want %d",
				ErrInvalidInput, k, row.Maturity, k+1)
		}
		if row.Maturity > 1 && row.YieldVol == nil {
			return fmt.Errorf("%w: maturity %d: yield volatility is required",
				ErrInvalidInput, row.Maturity)
		}
	}
	return nil
}
