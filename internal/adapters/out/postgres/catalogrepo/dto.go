// Package catalogrepo persists the catalog records a scan can resolve to: products and
// their units, packagings, lots, owners, packages, package types, locations and quants.
// It also implements barcode classification on top of those tables.
package catalogrepo

import (
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type UoMDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(64);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Factor     decimal.Decimal `gorm:"type:numeric(20,6);not null"`
}

func (UoMDTO) TableName() string {
	return "uoms"
}

// ProductDTO keeps the primary barcode in its own indexed column; alternative codes
// printed on older labels live in AltBarcodes.
type ProductDTO struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name                string         `gorm:"type:varchar(255);not null"`
	Barcode             string         `gorm:"type:varchar(128);index"`
	AltBarcodes         pq.StringArray `gorm:"type:text[]"`
	Tracking            string         `gorm:"type:varchar(16);not null"`
	UoMID               uuid.UUID      `gorm:"column:uom_id;type:uuid;not null"`
	UoM                 UoMDTO         `gorm:"foreignKey:UoMID"`
	InventoryLocationID *uuid.UUID     `gorm:"type:uuid"`
}

func (ProductDTO) TableName() string {
	return "products"
}

type LocationDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Barcode    string    `gorm:"type:varchar(128);index"`
	ParentPath string    `gorm:"type:varchar(1024);not null;index"`
}

func (LocationDTO) TableName() string {
	return "locations"
}

type PackagingDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Barcode   string          `gorm:"type:varchar(128);not null;uniqueIndex"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty       decimal.Decimal `gorm:"type:numeric(20,6);not null"`
}

func (PackagingDTO) TableName() string {
	return "packagings"
}

type LotDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_lot_product_name"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lot_product_name"`
}

func (LotDTO) TableName() string {
	return "lots"
}

type OwnerDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

func (OwnerDTO) TableName() string {
	return "owners"
}

type PackageTypeDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Barcode string    `gorm:"type:varchar(128);index"`
}

func (PackageTypeDTO) TableName() string {
	return "package_types"
}

type PackageDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	LocationID    *uuid.UUID `gorm:"type:uuid;index"`
	PackageTypeID *uuid.UUID `gorm:"type:uuid"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

type QuantDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LotID      *uuid.UUID      `gorm:"type:uuid;index"`
	PackageID  *uuid.UUID      `gorm:"type:uuid;index"`
	OwnerID    *uuid.UUID      `gorm:"type:uuid"`
	Quantity   decimal.Decimal `gorm:"type:numeric(20,6);not null"`
}

func (QuantDTO) TableName() string {
	return "quants"
}

// SequenceDTO numbers generated records such as package names.
type SequenceDTO struct {
	Code       string `gorm:"type:varchar(64);primaryKey"`
	Prefix     string `gorm:"type:varchar(32);not null"`
	Padding    int    `gorm:"type:int;not null"`
	NextNumber int    `gorm:"type:int;not null"`
}

func (SequenceDTO) TableName() string {
	return "sequences"
}

// Models lists every table of the package, in migration order.
func Models() []any {
	return []any{
		&UoMDTO{}, &ProductDTO{}, &LocationDTO{}, &PackagingDTO{}, &LotDTO{},
		&OwnerDTO{}, &PackageTypeDTO{}, &PackageDTO{}, &QuantDTO{}, &SequenceDTO{},
	}
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// UoMToDomain, ProductToDomain and LotToDomain are shared with repositories that
// preload catalog rows through their own associations.
func UoMToDomain(dto UoMDTO) (catalog.UoM, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.UoM{}, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return catalog.UoM{}, err
	}
	return catalog.NewUoM(id, dto.Name, categoryID, kernel.QuantityFromDecimal(dto.Factor))
}

func ProductToDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tracking, err := catalog.ParseTracking(dto.Tracking)
	if err != nil {
		return nil, err
	}
	uom, err := UoMToDomain(dto.UoM)
	if err != nil {
		return nil, err
	}
	p, err := catalog.NewProduct(id, dto.Name, dto.Barcode, tracking, uom)
	if err != nil {
		return nil, err
	}
	if dto.InventoryLocationID != nil {
		locID, locErr := kernel.UUIDFromBytes(dto.InventoryLocationID[:])
		if locErr != nil {
			return nil, locErr
		}
		p = p.WithInventoryLocation(locID)
	}
	return p, nil
}

func locationToDomain(dto LocationDTO) (*catalog.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewLocation(id, dto.Name, dto.Barcode, dto.ParentPath)
}

func packagingToDomain(dto PackagingDTO) (*catalog.Packaging, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewPackaging(id, dto.Name, dto.Barcode, productID, kernel.QuantityFromDecimal(dto.Qty))
}

func LotToDomain(dto LotDTO) (*catalog.Lot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewLot(id, dto.Name, productID)
}

func lotFromDomain(lot *catalog.Lot) LotDTO {
	return LotDTO{ID: lot.ID().Bytes(), Name: lot.Name(), ProductID: lot.ProductID().Bytes()}
}

func ownerToDomain(dto OwnerDTO) (*catalog.Owner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewOwner(id, dto.Name)
}

func packageTypeToDomain(dto PackageTypeDTO) (*catalog.PackageType, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return catalog.NewPackageType(id, dto.Name, dto.Barcode)
}

// packageToDomain needs the ids of the quants the package holds, read separately.
func packageToDomain(dto PackageDTO, quantIDs []uuid.UUID) (*catalog.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernelPtr(dto.LocationID)
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.UUID, 0, len(quantIDs))
	for _, raw := range quantIDs {
		qid, qErr := kernel.UUIDFromBytes(raw[:])
		if qErr != nil {
			return nil, qErr
		}
		ids = append(ids, qid)
	}
	return catalog.NewPackage(id, dto.Name, locationID, ids)
}

func packageFromDomain(pkg *catalog.Package, packageTypeID *kernel.UUID) PackageDTO {
	return PackageDTO{
		ID:            pkg.ID().Bytes(),
		Name:          pkg.Name(),
		LocationID:    uuidPtr(pkg.LocationID()),
		PackageTypeID: uuidPtr(packageTypeID),
	}
}
