package queries

import (
	"errors"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/guard"
)

var ErrListOpenDocumentsQueryIsNotConstructed = errors.New(
	"ListOpenDocumentsQuery must be created via NewListOpenDocumentsQuery constructor",
)

// ListOpenDocumentsQuery lists the documents an operator can open a session on, that
// is the draft and ready ones, optionally of one operation type only.
//
// Example:
//
//	query := NewListOpenDocumentsQuery(nil)
//	docs, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, d := range docs {
//	    fmt.Printf("%s: %d lines\n", d.Name, d.LineCount)
//	}
type ListOpenDocumentsQuery struct {
	pickingTypeID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewListOpenDocumentsQuery(pickingTypeID *kernel.UUID) ListOpenDocumentsQuery {
	return ListOpenDocumentsQuery{pickingTypeID: pickingTypeID, guard: guard.NewConstructorGuard()}
}

func (q ListOpenDocumentsQuery) PickingTypeID() *kernel.UUID { return q.pickingTypeID }

func (q ListOpenDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrListOpenDocumentsQueryIsNotConstructed)
}

type ListOpenDocumentsQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Status          string
	PickingTypeID   kernel.UUID
	PickingTypeName string
	LineCount       int
}
