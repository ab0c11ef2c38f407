package queries

import (
	"context"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOpenDocumentsQueryHandler reads documents straight from the database, without
// loading the aggregates.
type ListOpenDocumentsQueryHandler struct {
	db *gorm.DB
}

func NewListOpenDocumentsQueryHandler(db *gorm.DB) ListOpenDocumentsQueryHandler {
	return ListOpenDocumentsQueryHandler{db: db}
}

// Handle returns open documents sorted by name.
func (h ListOpenDocumentsQueryHandler) Handle(
	ctx context.Context,
	query ListOpenDocumentsQuery,
) ([]ListOpenDocumentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var typeFilter *uuid.UUID
	if query.PickingTypeID() != nil {
		raw := query.PickingTypeID().Bytes()
		typeFilter = &raw
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.status,
			t.id,
			t.name,
			COUNT(l.id)
		FROM picking_documents d
		JOIN picking_types t ON t.id = d.picking_type_id
		LEFT JOIN picking_lines l ON l.document_id = d.id
		WHERE d.status IN (?, ?)
			AND (CAST(? AS uuid) IS NULL OR d.picking_type_id = ?)
		GROUP BY d.id, d.name, d.status, t.id, t.name
		ORDER BY d.name
	`, picking.StatusDraft.String(), picking.StatusReady.String(), typeFilter, typeFilter).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]ListOpenDocumentsQueryResponse, 0)
	for rows.Next() {
		var resp ListOpenDocumentsQueryResponse
		var id, typeID uuid.UUID

		if err = rows.Scan(&id, &resp.Name, &resp.Status, &typeID, &resp.PickingTypeName, &resp.LineCount); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.PickingTypeID, err = kernel.UUIDFromBytes(typeID[:]); err != nil {
			return nil, err
		}
		docs = append(docs, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}
