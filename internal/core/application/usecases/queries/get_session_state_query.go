// Package queries contains read operations. Queries return read models shaped for
// the scanning client and never change state.
package queries

import (
	"errors"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/guard"
)

var ErrGetSessionStateQueryIsNotConstructed = errors.New(
	"GetSessionStateQuery must be created via NewGetSessionStateQuery constructor",
)

// GetSessionStateQuery reads what the scanning screen of a session shows.
//
// Example:
//
//	query, err := NewGetSessionStateQuery(sessionID)
//	if err != nil {
//	    return err
//	}
//	state, err := handler.Handle(ctx, query)
type GetSessionStateQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSessionStateQuery(sessionID kernel.UUID) (GetSessionStateQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetSessionStateQuery{}, err
	}
	return GetSessionStateQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSessionStateQuery) SessionID() kernel.UUID { return q.sessionID }

func (q GetSessionStateQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionStateQueryIsNotConstructed)
}

// LineView is one document line as displayed.
type LineView struct {
	ID              kernel.UUID
	ProductID       kernel.UUID
	ProductName     string
	UoM             string
	QtyDone         string
	ReservedQty     string
	TrackingNumber  string
	LocationID      kernel.UUID
	DestLocationID  kernel.UUID
	PackageID       *kernel.UUID
	ResultPackageID *kernel.UUID
	Selected        bool
}

// GetSessionStateQueryResponse lists the lines ungrouped, sorted by product and
// tracking number, together with the prompt for the next scan.
type GetSessionStateQueryResponse struct {
	SessionID      kernel.UUID
	DocumentID     kernel.UUID
	DocumentName   string
	Status         string
	Lines          []LineView
	SelectedLineID *kernel.UUID
	PendingPackage string
	Location       string
	Instruction    Instruction
	Dirty          bool
	Rollovers      int
}

// Instruction is the prompt telling the operator what to scan next.
type Instruction struct {
	Class   string
	Icon    string
	Message string
}
