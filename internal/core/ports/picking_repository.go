package ports

import (
	"context"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
)

type PickingRepository interface {
	Add(ctx context.Context, doc *picking.Document) error

	Update(ctx context.Context, doc *picking.Document) error

	Get(ctx context.Context, id kernel.UUID) (*picking.Document, error)

	// PickingTypeConfig returns the scanning policy of an operation type together
	// with its default source and destination locations.
	PickingTypeConfig(ctx context.Context, pickingTypeID kernel.UUID) (PickingType, error)

	// NextName reserves the next document name of the operation type.
	NextName(ctx context.Context, pickingTypeID kernel.UUID) (string, error)
}

// PickingType is what a new document of an operation type starts from.
type PickingType struct {
	Config           picking.Config
	SourceLocationID kernel.UUID
	DestLocationID   kernel.UUID
}
