package termstructure

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML sequence of rows and validates it.
//
//	- maturity: 1
//	  yield: 0.10
//	  bond_price: 0.9091
//	- maturity: 2
//	  yield: 0.11
//	  bond_price: 0.8116
//	  yield_vol: 0.10
func Decode(r io.Reader) (Table, error) {
	var t Table
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidInput, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
