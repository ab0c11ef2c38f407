package ports

import (
	"context"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
)

// PrefilledQuant is the package and owner suggested for a product, lot or serial
// based on where it is in stock.
type PrefilledQuant struct {
	Package *catalog.Package
	Owner   *catalog.Owner
}

// BarcodeCatalog resolves scanned codes and reads the catalog records a scan needs.
type BarcodeCatalog interface {
	// Parse classifies raw. An unrecognized code is not an error: it comes back with
	// Match false. A code that cannot be read returns an errs.ParseError.
	Parse(ctx context.Context, raw string, filters barcode.Filters) (barcode.Data, error)

	// GetByBarcode looks raw up as one record kind only, ignoring any filter.
	GetByBarcode(ctx context.Context, raw string, kind barcode.Kind) (barcode.Data, error)

	Product(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	Location(ctx context.Context, id kernel.UUID) (*catalog.Location, error)

	Quants(ctx context.Context, ids []kernel.UUID) ([]*catalog.Quant, error)

	PrefilledOwnerPackage(ctx context.Context, productID kernel.UUID, lotID *kernel.UUID, lotName string) (PrefilledQuant, error)
}

// CatalogRepository adds the catalog writes performed when documents are packed or
// validated.
type CatalogRepository interface {
	BarcodeCatalog

	AddLot(ctx context.Context, lot *catalog.Lot) error

	AddPackage(ctx context.Context, pkg *catalog.Package, packageTypeID *kernel.UUID) error

	NextPackageName(ctx context.Context) (string, error)
}
