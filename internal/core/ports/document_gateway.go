package ports

import (
	"context"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
)

// DocumentGateway performs the document level operations a scanning session triggers.
type DocumentGateway interface {
	Load(ctx context.Context, id kernel.UUID) (*picking.Document, error)

	Save(ctx context.Context, doc *picking.Document) error

	// Validate finalizes doc and returns the validated document. Failures are
	// errs.ValidationError; doc itself is left untouched.
	Validate(ctx context.Context, doc *picking.Document) (*picking.Document, error)

	// OpenSuccessor creates the next document of the same operation type, carrying
	// lastScannedBarcode. It returns nil when no successor can be opened.
	OpenSuccessor(ctx context.Context, doc *picking.Document, lastScannedBarcode string) (*picking.Document, error)

	// PutInPack creates a package, named name or generated when empty, and closes the
	// done lines of doc into it.
	PutInPack(ctx context.Context, doc *picking.Document, name string, packageType *catalog.PackageType) (*catalog.Package, error)
}
