// Package pickingrepo persists picking documents, their lines and the operation types
// documents are created from.
package pickingrepo

import (
	"picking/internal/adapters/out/postgres/catalogrepo"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PickingTypeDTO is an operation type: the scanning policy copied into every document
// of the type, its default locations and the sequence naming its documents.
type PickingTypeDTO struct {
	ID                         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                       string     `gorm:"type:varchar(255);not null"`
	SequencePrefix             string     `gorm:"type:varchar(32);not null"`
	NextNumber                 int        `gorm:"type:int;not null;default:1"`
	DefaultSourceLocationID    uuid.UUID  `gorm:"type:uuid;not null"`
	DefaultDestLocationID      uuid.UUID  `gorm:"type:uuid;not null"`
	RestrictScanSourceLocation bool       `gorm:"not null;default:false"`
	RestrictScanDestLocation   string     `gorm:"type:varchar(16);not null;default:'no'"`
	RestrictPutInPack          string     `gorm:"type:varchar(32);not null;default:'no'"`
	RestrictScanProduct        bool       `gorm:"not null;default:false"`
	MaxLines                   int        `gorm:"type:int;not null;default:0"`
	DefaultProductBarcode      string     `gorm:"type:varchar(128)"`
	DefaultProductID           *uuid.UUID `gorm:"type:uuid"`
	DefaultLocationID          *uuid.UUID `gorm:"type:uuid"`
	GroupTrackingLot           bool       `gorm:"not null;default:false"`
	GroupTrackingOwner         bool       `gorm:"not null;default:false"`
	UseCreateLots              bool       `gorm:"not null"`
	UseExistingLots            bool       `gorm:"not null"`
	MoveEntirePackages         bool       `gorm:"not null;default:false"`
}

func (PickingTypeDTO) TableName() string {
	return "picking_types"
}

type DocumentDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name               string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Status             string         `gorm:"type:varchar(16);not null;index"`
	PickingTypeID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	PickingType        PickingTypeDTO `gorm:"foreignKey:PickingTypeID"`
	SourceLocationID   uuid.UUID      `gorm:"type:uuid;not null"`
	DestLocationID     uuid.UUID      `gorm:"type:uuid;not null"`
	LastScannedBarcode string         `gorm:"type:varchar(255)"`
	Lines              []LineDTO      `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
}

func (DocumentDTO) TableName() string {
	return "picking_documents"
}

// LineDTO preloads the catalog rows a line is rebuilt from. Those associations are
// read only; writes always omit them.
type LineDTO struct {
	ID              uuid.UUID              `gorm:"type:uuid;primaryKey"`
	DocumentID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID              `gorm:"type:uuid;not null"`
	Product         catalogrepo.ProductDTO `gorm:"foreignKey:ProductID"`
	UoMID           uuid.UUID              `gorm:"column:uom_id;type:uuid;not null"`
	UoM             catalogrepo.UoMDTO     `gorm:"foreignKey:UoMID"`
	QtyDone         decimal.Decimal        `gorm:"type:numeric(20,6);not null"`
	ReservedQty     decimal.Decimal        `gorm:"type:numeric(20,6);not null"`
	LotID           *uuid.UUID             `gorm:"type:uuid"`
	Lot             *catalogrepo.LotDTO    `gorm:"foreignKey:LotID"`
	LotName         string                 `gorm:"type:varchar(255)"`
	LocationID      uuid.UUID              `gorm:"type:uuid;not null"`
	DestLocationID  uuid.UUID              `gorm:"type:uuid;not null"`
	PackageID       *uuid.UUID             `gorm:"type:uuid"`
	ResultPackageID *uuid.UUID             `gorm:"type:uuid"`
	OwnerID         *uuid.UUID             `gorm:"type:uuid"`
	Sequence        int                    `gorm:"type:int;not null"`
}

func (LineDTO) TableName() string {
	return "picking_lines"
}

// Models lists every table of the package, in migration order.
func Models() []any {
	return []any{&PickingTypeDTO{}, &DocumentDTO{}, &LineDTO{}}
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

// fromDomain converts a document to its row and line rows. The picking type row is
// not part of the aggregate and is left empty.
func fromDomain(doc *picking.Document) DocumentDTO {
	docID := doc.ID().Bytes()
	lines := make([]LineDTO, 0, doc.LineCount())
	for _, l := range doc.Lines() {
		s := l.State()
		var lotID *uuid.UUID
		if s.Lot != nil {
			raw := s.Lot.ID().Bytes()
			lotID = &raw
		}
		lines = append(lines, LineDTO{
			ID:              s.ID.Bytes(),
			DocumentID:      docID,
			ProductID:       s.Product.ID().Bytes(),
			UoMID:           s.UoM.ID().Bytes(),
			QtyDone:         s.QtyDone.Decimal(),
			ReservedQty:     s.ReservedQty.Decimal(),
			LotID:           lotID,
			LotName:         s.LotName,
			LocationID:      s.LocationID.Bytes(),
			DestLocationID:  s.DestLocationID.Bytes(),
			PackageID:       uuidPtr(s.PackageID),
			ResultPackageID: uuidPtr(s.ResultPackageID),
			OwnerID:         uuidPtr(s.OwnerID),
			Sequence:        s.Sequence,
		})
	}

	return DocumentDTO{
		ID:                 docID,
		Name:               doc.Name(),
		Status:             doc.Status().String(),
		PickingTypeID:      doc.Config().PickingTypeID.Bytes(),
		SourceLocationID:   doc.SourceLocationID().Bytes(),
		DestLocationID:     doc.DestLocationID().Bytes(),
		LastScannedBarcode: doc.LastScannedBarcode(),
		Lines:              lines,
	}
}

// toDomain rebuilds a document from a row preloaded with its picking type and lines.
func toDomain(dto DocumentDTO) (*picking.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := picking.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	cfg, err := configToDomain(dto.PickingType)
	if err != nil {
		return nil, err
	}
	sourceID, err := kernel.UUIDFromBytes(dto.SourceLocationID[:])
	if err != nil {
		return nil, err
	}
	destID, err := kernel.UUIDFromBytes(dto.DestLocationID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*picking.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		l, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, l)
	}

	return picking.RestoreDocument(id, dto.Name, status, cfg, sourceID, destID, lines, dto.LastScannedBarcode)
}

func lineToDomain(dto LineDTO) (*picking.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	product, err := catalogrepo.ProductToDomain(dto.Product)
	if err != nil {
		return nil, err
	}
	uom, err := catalogrepo.UoMToDomain(dto.UoM)
	if err != nil {
		return nil, err
	}
	var lot *catalog.Lot
	if dto.Lot != nil {
		if lot, err = catalogrepo.LotToDomain(*dto.Lot); err != nil {
			return nil, err
		}
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	destID, err := kernel.UUIDFromBytes(dto.DestLocationID[:])
	if err != nil {
		return nil, err
	}
	packageID, err := kernelPtr(dto.PackageID)
	if err != nil {
		return nil, err
	}
	resultPackageID, err := kernelPtr(dto.ResultPackageID)
	if err != nil {
		return nil, err
	}
	ownerID, err := kernelPtr(dto.OwnerID)
	if err != nil {
		return nil, err
	}

	return picking.RestoreLine(picking.LineState{
		ID:              id,
		Product:         product,
		UoM:             uom,
		QtyDone:         kernel.QuantityFromDecimal(dto.QtyDone),
		ReservedQty:     kernel.QuantityFromDecimal(dto.ReservedQty),
		Lot:             lot,
		LotName:         dto.LotName,
		LocationID:      locationID,
		DestLocationID:  destID,
		PackageID:       packageID,
		ResultPackageID: resultPackageID,
		OwnerID:         ownerID,
		Sequence:        dto.Sequence,
	})
}

func configToDomain(dto PickingTypeDTO) (picking.Config, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return picking.Config{}, err
	}
	destPolicy, err := picking.ParseDestPolicy(dto.RestrictScanDestLocation)
	if err != nil {
		return picking.Config{}, err
	}
	packPolicy, err := picking.ParsePackPolicy(dto.RestrictPutInPack)
	if err != nil {
		return picking.Config{}, err
	}
	defaultProductID, err := kernelPtr(dto.DefaultProductID)
	if err != nil {
		return picking.Config{}, err
	}
	defaultLocationID, err := kernelPtr(dto.DefaultLocationID)
	if err != nil {
		return picking.Config{}, err
	}

	cfg := picking.Config{
		PickingTypeID:              id,
		RestrictScanSourceLocation: dto.RestrictScanSourceLocation,
		RestrictScanDestLocation:   destPolicy,
		RestrictPutInPack:          packPolicy,
		RestrictScanProduct:        dto.RestrictScanProduct,
		MaxLines:                   dto.MaxLines,
		DefaultProductBarcode:      dto.DefaultProductBarcode,
		DefaultProductID:           defaultProductID,
		DefaultLocationID:          defaultLocationID,
		GroupTrackingLot:           dto.GroupTrackingLot,
		GroupTrackingOwner:         dto.GroupTrackingOwner,
		UseCreateLots:              dto.UseCreateLots,
		UseExistingLots:            dto.UseExistingLots,
		MoveEntirePackages:         dto.MoveEntirePackages,
	}
	return cfg, cfg.Validate()
}

func pickingTypeToPort(dto PickingTypeDTO) (ports.PickingType, error) {
	cfg, err := configToDomain(dto)
	if err != nil {
		return ports.PickingType{}, err
	}
	sourceID, err := kernel.UUIDFromBytes(dto.DefaultSourceLocationID[:])
	if err != nil {
		return ports.PickingType{}, err
	}
	destID, err := kernel.UUIDFromBytes(dto.DefaultDestLocationID[:])
	if err != nil {
		return ports.PickingType{}, err
	}
	return ports.PickingType{Config: cfg, SourceLocationID: sourceID, DestLocationID: destID}, nil
}
