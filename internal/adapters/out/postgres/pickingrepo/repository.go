package pickingrepo

import (
	"context"
	"errors"
	"fmt"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPickingRepository implements ports.PickingRepository using GORM.
type GormPickingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPickingRepository(db *gorm.DB, tracker aggregateTracker) *GormPickingRepository {
	return &GormPickingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new document with its lines.
func (r *GormPickingRepository) Add(ctx context.Context, doc *picking.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&dto).Error; err != nil {
			return err
		}
		if len(dto.Lines) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&dto.Lines).Error
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(doc.ID(), doc)
	return nil
}

// Update replaces the stored document: header fields are overwritten, lines are
// upserted and lines no longer in the document are deleted.
func (r *GormPickingRepository) Update(ctx context.Context, doc *picking.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	dto := fromDomain(doc)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&DocumentDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
			"name":                 dto.Name,
			"status":               dto.Status,
			"source_location_id":   dto.SourceLocationID,
			"dest_location_id":     dto.DestLocationID,
			"last_scanned_barcode": dto.LastScannedBarcode,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("document", doc.ID().String())
		}

		keep := make([]uuid.UUID, 0, len(dto.Lines))
		for _, l := range dto.Lines {
			keep = append(keep, l.ID)
		}
		stale := tx.Where("document_id = ?", dto.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&LineDTO{}).Error; err != nil {
			return err
		}

		if len(dto.Lines) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&dto.Lines).Error
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(doc.ID(), doc)
	return nil
}

// Get retrieves a document by ID with its lines in creation order.
func (r *GormPickingRepository) Get(ctx context.Context, id kernel.UUID) (*picking.Document, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DocumentDTO
	err := r.db.WithContext(ctx).
		Preload("PickingType").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		Preload("Lines.Product.UoM").
		Preload("Lines.UoM").
		Preload("Lines.Lot").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("document", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPickingRepository) PickingTypeConfig(ctx context.Context, pickingTypeID kernel.UUID) (ports.PickingType, error) {
	if err := pickingTypeID.Validate(); err != nil {
		return ports.PickingType{}, err
	}

	var dto PickingTypeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", pickingTypeID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.PickingType{}, errs.NewObjectNotFoundError("picking type", pickingTypeID.String())
		}
		return ports.PickingType{}, err
	}
	return pickingTypeToPort(dto)
}

// NextName reserves the next document number of the operation type, e.g. WH/OUT/00012.
func (r *GormPickingRepository) NextName(ctx context.Context, pickingTypeID kernel.UUID) (string, error) {
	if err := pickingTypeID.Validate(); err != nil {
		return "", err
	}

	var reserved struct {
		SequencePrefix string
		NextNumber     int
	}
	result := r.db.WithContext(ctx).Raw(`
		UPDATE picking_types
		SET next_number = next_number + 1
		WHERE id = ?
		RETURNING sequence_prefix, next_number - 1 AS next_number
	`, pickingTypeID.Bytes()).Scan(&reserved)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", errs.NewObjectNotFoundError("picking type", pickingTypeID.String())
	}
	return fmt.Sprintf("%s%05d", reserved.SequencePrefix, reserved.NextNumber), nil
}
