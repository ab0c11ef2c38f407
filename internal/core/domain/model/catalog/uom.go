package catalog

import (
	"errors"
	"strings"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrUoMIsNotConstructed = errors.New("UoM must be created via NewUoM constructor")

// UoM is a unit of measure. Units of the same category convert into each other through
// their factor, which is the number of units equal to one reference unit of the category
// (Units = 1, Dozens = 1/12).
type UoM struct {
	id         kernel.UUID
	name       string
	categoryID kernel.UUID
	factor     kernel.Quantity
	guard      guard.ConstructorGuard
}

func NewUoM(id kernel.UUID, name string, categoryID kernel.UUID, factor kernel.Quantity) (UoM, error) {
	if err := errors.Join(id.Validate(), categoryID.Validate()); err != nil {
		return UoM{}, err
	}
	if strings.TrimSpace(name) == "" {
		return UoM{}, errs.NewValueIsRequiredError("uom name")
	}
	if !factor.IsPositive() {
		return UoM{}, errs.NewValueIsOutOfRangeError("uom factor", factor.String(), "0 (exclusive)", "unbounded")
	}

	return UoM{
		id:         id,
		name:       name,
		categoryID: categoryID,
		factor:     factor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (u UoM) Validate() error {
	return u.guard.Validate(ErrUoMIsNotConstructed)
}

func (u UoM) ID() kernel.UUID { return u.id }
func (u UoM) Name() string { return u.name }
func (u UoM) CategoryID() kernel.UUID { return u.categoryID }
func (u UoM) Factor() kernel.Quantity { return u.factor }
func (u UoM) IsEqual(other UoM) bool { return u.id.IsEqual(other.id) }
func (u UoM) SameCategory(other UoM) bool { return u.categoryID.IsEqual(other.categoryID) }

// Convert expresses qty, given in u, in the target unit. The second result is false when
// the two units belong to different categories; qty is then returned untouched.
//
// Example:
//
//	dozens.Convert(kernel.QuantityFromInt(2), units) // 24, true
func (u UoM) Convert(qty kernel.Quantity, target UoM) (kernel.Quantity, bool) {
	if !u.SameCategory(target) {
		return qty, false
	}
	if u.IsEqual(target) {
		return qty, true
	}
	return qty.Div(u.factor).Mul(target.factor), true
}
