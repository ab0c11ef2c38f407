// Package commands contains the operations that change a scanning session or the
// documents behind it. Commands are built through constructors and validated by their
// handlers; document writes run inside a unit of work.
package commands

import (
	"context"

	"picking/internal/core/ports"
)

// Unit of Work interfaces give handlers transactional access to the repositories.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CatalogRepoFactory provides access to the catalog within a transaction.
	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	// PickingRepoFactory provides access to documents within a transaction.
	PickingRepoFactory interface {
		PickingRepository() ports.PickingRepository
	}

	// UoW spans documents and the catalog records created with them, such as lots
	// registered at validation or packages created by put in pack.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.PickingRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CatalogRepoFactory
		PickingRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
