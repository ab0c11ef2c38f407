package services_test

import (
	"context"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockBarcodeCatalog struct {
	mock.Mock
}

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
	if p, ok := args.Get(0).(*catalog.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBarcodeCatalog) Location(ctx context.Context, id kernel.UUID) (*catalog.Location, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*catalog.Location); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBarcodeCatalog) Quants(ctx context.Context, ids []kernel.UUID) ([]*catalog.Quant, error) {
	args := m.Called(ctx, ids)
	if q, ok := args.Get(0).([]*catalog.Quant); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
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
