package session

import (
	"errors"

	"picking/internal/core/domain/model/catalog"
)

// Locations are the location trees a session classifies scanned locations against.
// Default is the default product destination and may be nil.
type Locations struct {
	Source      *catalog.Location
	Destination *catalog.Location
	Default     *catalog.Location
}

func (l Locations) Validate() error {
	return errors.Join(l.Source.Validate(), l.Destination.Validate())
}
