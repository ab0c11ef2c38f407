package commands

import (
	"context"
	"errors"
	"fmt"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/pkg/errs"
)

// DocumentGateway persists and finalizes documents for scanning sessions. Every
// operation runs in its own unit of work and leaves the passed document untouched
// when it fails.
type DocumentGateway struct {
	uowFactory UoWFactory
}

func NewDocumentGateway(uowFactory UoWFactory) DocumentGateway {
	return DocumentGateway{uowFactory: uowFactory}
}

func (g DocumentGateway) Load(ctx context.Context, id kernel.UUID) (*picking.Document, error) {
	return g.uowFactory.Create().PickingRepository().Get(ctx, id)
}

func (g DocumentGateway) Save(ctx context.Context, doc *picking.Document) error {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PickingRepository().Update(ctx, doc); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// Validate marks a copy of doc done and stores it. Default product lines are moved
// to the inventory location of their product first, and their new serial names are
// registered as lots.
func (g DocumentGateway) Validate(ctx context.Context, doc *picking.Document) (*picking.Document, error) {
	work := doc.Clone()

	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogRepo := uow.CatalogRepository()
	for _, l := range work.PrepareForValidation() {
		lot, err := catalog.NewLot(kernel.NewUUID(), l.LotName(), l.Product().ID())
		if err != nil {
			return nil, errs.NewValidationErrorWithCause(doc.ID().String(), "invalid serial number", err)
		}
		if err = catalogRepo.AddLot(ctx, lot); err != nil {
			return nil, err
		}
		if err = l.AssignLot(lot); err != nil {
			return nil, errs.NewValidationErrorWithCause(doc.ID().String(), "invalid serial number", err)
		}
	}

	if err := work.MarkDone(); err != nil {
		return nil, err
	}
	if err := uow.PickingRepository().Update(ctx, work); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return work, nil
}

// OpenSuccessor creates a draft document of the same operation type that carries
// lastScannedBarcode. It returns nil when the operation type is gone.
func (g DocumentGateway) OpenSuccessor(ctx context.Context, doc *picking.Document, lastScannedBarcode string) (*picking.Document, error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PickingRepository()
	pickingType, err := repo.PickingTypeConfig(ctx, doc.Config().PickingTypeID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	name, err := repo.NextName(ctx, doc.Config().PickingTypeID)
	if err != nil {
		return nil, err
	}
	next, err := picking.NewDocument(kernel.NewUUID(), name, pickingType.Config, pickingType.SourceLocationID, pickingType.DestLocationID)
	if err != nil {
		return nil, fmt.Errorf("successor of %s: %w", doc.Name(), err)
	}
	next.CarryBarcode(lastScannedBarcode)

	if err = repo.Add(ctx, next); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

// PutInPack creates a package and closes the done, unpacked lines of doc into it.
// An empty name takes the next generated package name.
func (g DocumentGateway) PutInPack(
	ctx context.Context,
	doc *picking.Document,
	name string,
	packageType *catalog.PackageType,
) (*catalog.Package, error) {
	uow := g.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalogRepo := uow.CatalogRepository()
	if name == "" {
		generated, err := catalogRepo.NextPackageName(ctx)
		if err != nil {
			return nil, err
		}
		name = generated
	}
	pkg, err := catalog.NewPackage(kernel.NewUUID(), name, nil, nil)
	if err != nil {
		return nil, err
	}

	work := doc.Clone()
	if _, err = work.PutInPack(pkg.ID()); err != nil {
		return nil, err
	}

	var packageTypeID *kernel.UUID
	if packageType != nil {
		id := packageType.ID()
		packageTypeID = &id
	}
	if err = catalogRepo.AddPackage(ctx, pkg, packageTypeID); err != nil {
		return nil, err
	}
	if err = uow.PickingRepository().Update(ctx, work); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if _, err = doc.PutInPack(pkg.ID()); err != nil {
		return nil, err
	}
	return pkg, nil
}
