package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const packageSequence = "package"

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCatalogRepository(db *gorm.DB, tracker aggregateTracker) *GormCatalogRepository {
	return &GormCatalogRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCatalogRepository) Product(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).Preload("UoM").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}
	return ProductToDomain(dto)
}

func (r *GormCatalogRepository) Location(ctx context.Context, id kernel.UUID) (*catalog.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", id.String())
		}
		return nil, err
	}
	return locationToDomain(dto)
}

// Quants returns the quants found among ids, in no particular order. Missing ids are
// skipped: a quant may have been consumed since its package was read.
func (r *GormCatalogRepository) Quants(ctx context.Context, ids []kernel.UUID) ([]*catalog.Quant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []QuantDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.quantsToDomain(ctx, dtos)
}

// PrefilledOwnerPackage suggests the package and owner of the largest quant of the
// product (and lot) in stock. Either may be nil.
func (r *GormCatalogRepository) PrefilledOwnerPackage(
	ctx context.Context,
	productID kernel.UUID,
	lotID *kernel.UUID,
	lotName string,
) (ports.PrefilledQuant, error) {
	if err := productID.Validate(); err != nil {
		return ports.PrefilledQuant{}, err
	}

	query := r.db.WithContext(ctx).
		Table("quants").
		Select("quants.*").
		Where("quants.product_id = ? AND quants.quantity > 0", productID.Bytes())
	switch {
	case lotID != nil:
		query = query.Where("quants.lot_id = ?", lotID.Bytes())
	case lotName != "":
		query = query.Joins("JOIN lots ON lots.id = quants.lot_id").Where("lots.name = ?", lotName)
	}

	var dtos []QuantDTO
	if err := query.Order("quants.quantity DESC, quants.id").Limit(1).Find(&dtos).Error; err != nil {
		return ports.PrefilledQuant{}, err
	}
	if len(dtos) == 0 {
		return ports.PrefilledQuant{}, nil
	}

	var result ports.PrefilledQuant
	if dtos[0].PackageID != nil {
		pkg, err := r.packageByID(ctx, *dtos[0].PackageID)
		if err != nil {
			return ports.PrefilledQuant{}, err
		}
		result.Package = pkg
	}
	if dtos[0].OwnerID != nil {
		var owner OwnerDTO
		if err := r.db.WithContext(ctx).First(&owner, "id = ?", *dtos[0].OwnerID).Error; err != nil {
			return ports.PrefilledQuant{}, err
		}
		o, err := ownerToDomain(owner)
		if err != nil {
			return ports.PrefilledQuant{}, err
		}
		result.Owner = o
	}
	return result, nil
}

func (r *GormCatalogRepository) AddLot(ctx context.Context, lot *catalog.Lot) error {
	if lot == nil {
		return errs.NewValueIsRequiredError("lot")
	}

	dto := lotFromDomain(lot)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(lot.ID(), lot)
	return nil
}

func (r *GormCatalogRepository) AddPackage(ctx context.Context, pkg *catalog.Package, packageTypeID *kernel.UUID) error {
	if pkg == nil {
		return errs.NewValueIsRequiredError("package")
	}

	dto := packageFromDomain(pkg, packageTypeID)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

// NextPackageName reserves the next name of the package sequence, creating the
// sequence on first use.
func (r *GormCatalogRepository) NextPackageName(ctx context.Context) (string, error) {
	db := r.db.WithContext(ctx)
	if err := db.Exec(`
		INSERT INTO sequences (code, prefix, padding, next_number)
		VALUES (?, 'PACK', 7, 1)
		ON CONFLICT (code) DO NOTHING
	`, packageSequence).Error; err != nil {
		return "", err
	}

	var seq SequenceDTO
	if err := db.Raw(`
		UPDATE sequences
		SET next_number = next_number + 1
		WHERE code = ?
		RETURNING code, prefix, padding, next_number - 1 AS next_number
	`, packageSequence).Scan(&seq).Error; err != nil {
		return "", err
	}
	if seq.Code == "" {
		return "", errs.NewObjectNotFoundError("sequence", packageSequence)
	}
	return fmt.Sprintf("%s%0*d", seq.Prefix, seq.Padding, seq.NextNumber), nil
}

func (r *GormCatalogRepository) packageByID(ctx context.Context, id uuid.UUID) (*catalog.Package, error) {
	var dto PackageDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}
	return r.packageToDomain(ctx, dto)
}

func (r *GormCatalogRepository) packageToDomain(ctx context.Context, dto PackageDTO) (*catalog.Package, error) {
	var quantIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&QuantDTO{}).
		Where("package_id = ? AND quantity > 0", dto.ID).
		Order("id").
		Pluck("id", &quantIDs).Error; err != nil {
		return nil, err
	}
	return packageToDomain(dto, quantIDs)
}

// quantsToDomain loads the products, lots and owners the quants refer to with one
// query per table.
func (r *GormCatalogRepository) quantsToDomain(ctx context.Context, dtos []QuantDTO) ([]*catalog.Quant, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	var productIDs, lotIDs, ownerIDs []uuid.UUID
	for _, q := range dtos {
		productIDs = append(productIDs, q.ProductID)
		if q.LotID != nil {
			lotIDs = append(lotIDs, *q.LotID)
		}
		if q.OwnerID != nil {
			ownerIDs = append(ownerIDs, *q.OwnerID)
		}
	}

	db := r.db.WithContext(ctx)
	var productDTOs []ProductDTO
	if err := db.Preload("UoM").Where("id IN ?", productIDs).Find(&productDTOs).Error; err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(productDTOs))
	for _, dto := range productDTOs {
		p, err := ProductToDomain(dto)
		if err != nil {
			return nil, err
		}
		products[dto.ID] = p
	}

	lots := make(map[uuid.UUID]*catalog.Lot)
	if len(lotIDs) > 0 {
		var lotDTOs []LotDTO
		if err := db.Where("id IN ?", lotIDs).Find(&lotDTOs).Error; err != nil {
			return nil, err
		}
		for _, dto := range lotDTOs {
			l, err := LotToDomain(dto)
			if err != nil {
				return nil, err
			}
			lots[dto.ID] = l
		}
	}

	owners := make(map[uuid.UUID]*catalog.Owner)
	if len(ownerIDs) > 0 {
		var ownerDTOs []OwnerDTO
		if err := db.Where("id IN ?", ownerIDs).Find(&ownerDTOs).Error; err != nil {
			return nil, err
		}
		for _, dto := range ownerDTOs {
			o, err := ownerToDomain(dto)
			if err != nil {
				return nil, err
			}
			owners[dto.ID] = o
		}
	}

	quants := make([]*catalog.Quant, 0, len(dtos))
	for _, dto := range dtos {
		q, err := quantToDomain(dto, products, lots, owners)
		if err != nil {
			return nil, err
		}
		quants = append(quants, q)
	}
	return quants, nil
}

func quantToDomain(
	dto QuantDTO,
	products map[uuid.UUID]*catalog.Product,
	lots map[uuid.UUID]*catalog.Lot,
	owners map[uuid.UUID]*catalog.Owner,
) (*catalog.Quant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	product, ok := products[dto.ProductID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", dto.ProductID.String())
	}
	locationID, err := kernel.UUIDFromBytes(dto.LocationID[:])
	if err != nil {
		return nil, err
	}
	packageID, err := kernelPtr(dto.PackageID)
	if err != nil {
		return nil, err
	}

	var lot *catalog.Lot
	if dto.LotID != nil {
		lot = lots[*dto.LotID]
	}
	var owner *catalog.Owner
	if dto.OwnerID != nil {
		owner = owners[*dto.OwnerID]
	}
	return catalog.NewQuant(id, product, locationID, lot, packageID, owner, kernel.QuantityFromDecimal(dto.Quantity))
}
