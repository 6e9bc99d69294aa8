package game

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Rules holds the numeric constants shared by every mirror of a board.
type Rules struct {
	MaxValue     int // Cap on a cell's charge
	InitialValue int // Charge of an opening placement
	Threshold    int // Charge at which a cell explodes
}

func NewStandardRules() Rules {
	return Rules{
		MaxValue:     5,
		InitialValue: 5,
		Threshold:    4,
	}
}

// Fragment returns the charge an exploding cell of the given value sends to each neighbor.
func (r Rules) Fragment(value int) int {
	return value - r.Threshold + 1
}

func (r Rules) Validate() error {
	var result *multierror.Error
	if r.Threshold < 2 {
		result = multierror.Append(result, fmt.Errorf("threshold %d must be at least 2", r.Threshold))
	}
	if r.MaxValue < r.Threshold {
		result = multierror.Append(result, fmt.Errorf("max value %d is below threshold %d", r.MaxValue, r.Threshold))
	}
	if r.InitialValue < 1 || r.InitialValue > r.MaxValue {
		result = multierror.Append(result, fmt.Errorf("initial value %d must be within [1, %d]", r.InitialValue, r.MaxValue))
	}
	return result.ErrorOrNil()
}
