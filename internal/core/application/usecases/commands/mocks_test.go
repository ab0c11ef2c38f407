package commands_test

import (
	"context"

	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Add(ctx context.Context, s *session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Acquire(ctx context.Context, id kernel.UUID) (*session.Session, func(), error) {
	args := m.Called(ctx, id)
	switch s := args.Get(0).(type) {
	case *session.Session:
		return s, func() {}, args.Error(1)
	case func() *session.Session:
		return s(), func() {}, args.Error(1)
	}
	return nil, nil, args.Error(1)
}

func (m *MockSessionRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) IDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockDocumentGateway struct{ mock.Mock }

func (m *MockDocumentGateway) Load(ctx context.Context, id kernel.UUID) (*picking.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picking.Document), args.Error(1)
}

func (m *MockDocumentGateway) Save(ctx context.Context, doc *picking.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentGateway) Validate(ctx context.Context, doc *picking.Document) (*picking.Document, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picking.Document), args.Error(1)
}

func (m *MockDocumentGateway) OpenSuccessor(ctx context.Context, doc *picking.Document, raw string) (*picking.Document, error) {
	args := m.Called(ctx, doc, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picking.Document), args.Error(1)
}

func (m *MockDocumentGateway) PutInPack(
	ctx context.Context,
	doc *picking.Document,
	name string,
	packageType *catalog.PackageType,
) (*catalog.Package, error) {
	args := m.Called(ctx, doc, name, packageType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Package), args.Error(1)
}

type MockBarcodeCatalog struct{ mock.Mock }

func (m *MockBarcodeCatalog) Parse(ctx context.Context, raw string, filters barcode.Filters) (barcode.Data, error) {
	args := m.Called(ctx, raw, filters)
	return args.Get(0).(barcode.Data), args.Error(1)
}

func (m *MockBarcodeCatalog) GetByBarcode(ctx context.Context, raw string, kind barcode.Kind) (barcode.Data, error) {
	args := m.Called(ctx, raw, kind)
	return args.Get(0).(barcode.Data), args.Error(1)
}

func (m *MockBarcodeCatalog) Product(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockBarcodeCatalog) Location(ctx context.Context, id kernel.UUID) (*catalog.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Location), args.Error(1)
}

func (m *MockBarcodeCatalog) Quants(ctx context.Context, ids []kernel.UUID) ([]*catalog.Quant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Quant), args.Error(1)
}

func (m *MockBarcodeCatalog) PrefilledOwnerPackage(
	ctx context.Context,
	productID kernel.UUID,
	lotID *kernel.UUID,
	lotName string,
) (ports.PrefilledQuant, error) {
	args := m.Called(ctx, productID, lotID, lotName)
	return args.Get(0).(ports.PrefilledQuant), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, sessionID kernel.UUID, notice session.Notice) {
	m.Called(ctx, sessionID, notice)
}

func (m *MockNotifier) ConfirmDialog(ctx context.Context, sessionID kernel.UUID, title string, body string) {
	m.Called(ctx, sessionID, title, body)
}

type MockStateObserver struct{ mock.Mock }

func (m *MockStateObserver) StateChanged(ctx context.Context, snapshot session.Snapshot) {
	m.Called(ctx, snapshot)
}

type MockPickingRepository struct{ mock.Mock }

func (m *MockPickingRepository) Add(ctx context.Context, doc *picking.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockPickingRepository) Update(ctx context.Context, doc *picking.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockPickingRepository) Get(ctx context.Context, id kernel.UUID) (*picking.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*picking.Document), args.Error(1)
}

func (m *MockPickingRepository) PickingTypeConfig(ctx context.Context, id kernel.UUID) (ports.PickingType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.PickingType), args.Error(1)
}

func (m *MockPickingRepository) NextName(ctx context.Context, id kernel.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockCatalogRepository struct {
	MockBarcodeCatalog
}

func (m *MockCatalogRepository) AddLot(ctx context.Context, lot *catalog.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockCatalogRepository) AddPackage(ctx context.Context, pkg *catalog.Package, packageTypeID *kernel.UUID) error {
	args := m.Called(ctx, pkg, packageTypeID)
	return args.Error(0)
}

func (m *MockCatalogRepository) NextPackageName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CatalogRepository() ports.CatalogRepository {
	args := m.Called()
	return args.Get(0).(ports.CatalogRepository)
}

func (m *MockUoW) PickingRepository() ports.PickingRepository {
	args := m.Called()
	return args.Get(0).(ports.PickingRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}
