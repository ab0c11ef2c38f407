package catalog

import (
	"errors"
	"fmt"
	"strings"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// Location is a stock location. parentPath is the slash separated chain of ancestor
// keys ending with the location's own key, e.g. "1/7/12/".
type Location struct {
	id         kernel.UUID
	name       string
	barcode    string
	parentPath string
	guard      guard.ConstructorGuard
}

func NewLocation(id kernel.UUID, name string, barcode string, parentPath string) (*Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("location name")
	}
	if parentPath == "" || !strings.HasSuffix(parentPath, "/") {
		return nil, errs.NewValueIsInvalidErrorWithCause("parent path", fmt.Errorf("%q must end with a slash", parentPath))
	}

	return &Location{
		id:         id,
		name:       name,
		barcode:    barcode,
		parentPath: parentPath,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l *Location) ID() kernel.UUID { return l.id }
func (l *Location) Name() string { return l.name }
func (l *Location) Barcode() string { return l.barcode }
func (l *Location) ParentPath() string { return l.parentPath }

// IsChildOf reports whether l is other or one of its descendants.
func (l *Location) IsChildOf(other *Location) bool {
	if l == nil || other == nil {
		return false
	}
	return strings.HasPrefix(l.parentPath, other.parentPath)
}

func (l *Location) IsEqual(other *Location) bool {
	return l != nil && other != nil && l.id.IsEqual(other.id)
}
