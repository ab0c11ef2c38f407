package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	stock  *catalog.Location
	output *catalog.Location
	cable  *catalog.Product
	modem  *catalog.Product
	router *catalog.Product
	cfg    picking.Config

	doc     *picking.Document
	session *session.Session

	sessions *MockSessionRepository
	gateway  *MockDocumentGateway
	catalog  *MockBarcodeCatalog
	notifier *MockNotifier
	observer *MockStateObserver
}

func newFixture(t *testing.T, configure ...func(*picking.Config)) *fixture {
	t.Helper()
	f := &fixture{
		sessions: &MockSessionRepository{},
		gateway:  &MockDocumentGateway{},
		catalog:  &MockBarcodeCatalog{},
		notifier: &MockNotifier{},
		observer: &MockStateObserver{},
	}

	var err error
	f.stock, err = catalog.NewLocation(kernel.NewUUID(), "WH/Stock", "WH-STOCK", "/WH/Stock/")
	require.NoError(t, err)
	f.output, err = catalog.NewLocation(kernel.NewUUID(), "WH/Output", "WH-OUTPUT", "/WH/Output/")
	require.NoError(t, err)

	units, err := catalog.NewUoM(kernel.NewUUID(), "Units", kernel.NewUUID(), kernel.One)
	require.NoError(t, err)
	f.cable, err = catalog.NewProduct(kernel.NewUUID(), "Cable", "CABLE", catalog.TrackingNone, units)
	require.NoError(t, err)
	f.modem, err = catalog.NewProduct(kernel.NewUUID(), "Modem", "MODEM", catalog.TrackingNone, units)
	require.NoError(t, err)
	f.router, err = catalog.NewProduct(kernel.NewUUID(), "Router", "DP1", catalog.TrackingSerial, units)
	require.NoError(t, err)

	routerID := f.router.ID()
	f.cfg = picking.Config{
		PickingTypeID:         kernel.NewUUID(),
		UseCreateLots:         true,
		UseExistingLots:       true,
		DefaultProductBarcode: "DP1",
		DefaultProductID:      &routerID,
	}
	for _, c := range configure {
		c(&f.cfg)
	}

	f.doc = f.newDocument(t, "WH/OUT/00001")
	f.session, err = session.NewSession(kernel.NewUUID(), f.doc, session.Locations{Source: f.stock, Destination: f.output}, time.Now())
	require.NoError(t, err)

	f.sessions.On("Acquire", mock.Anything, f.session.ID()).Return(f.session, nil)
	f.notifier.On("Notify", mock.Anything, f.session.ID(), mock.Anything).Return()
	f.notifier.On("ConfirmDialog", mock.Anything, f.session.ID(), mock.Anything, mock.Anything).Return()
	f.observer.On("StateChanged", mock.Anything, mock.Anything).Return()
	return f
}

func (f *fixture) newDocument(t *testing.T, name string) *picking.Document {
	t.Helper()
	doc, err := picking.NewDocument(kernel.NewUUID(), name, f.cfg, f.stock.ID(), f.output.ID())
	require.NoError(t, err)
	return doc
}

func (f *fixture) addLine(t *testing.T, product *catalog.Product, done int64) *picking.Line {
	t.Helper()
	l, err := picking.NewLine(kernel.NewUUID(), product, product.UoM(), f.stock.ID(), f.output.ID())
	require.NoError(t, err)
	require.NoError(t, l.SetQtyDone(kernel.QuantityFromInt(done)))
	require.NoError(t, f.doc.AddLine(l))
	return l
}

// knows makes the catalog recognize product codes and ignore everything else.
func (f *fixture) knows(products ...*catalog.Product) {
	for _, p := range products {
		f.catalog.On("Parse", mock.Anything, p.Barcode(), mock.Anything).
			Return(barcode.Data{Match: true, Product: p}, nil)
	}
	f.catalog.On("Parse", mock.Anything, mock.Anything, mock.Anything).Return(barcode.Data{}, nil)
}

func (f *fixture) handler() commands.ProcessScanCommandHandler {
	return commands.NewProcessScanCommandHandler(
		f.sessions, f.gateway, f.catalog, f.notifier,
		discardLogger(),
		f.observer,
	)
}

func (f *fixture) scan(t *testing.T, raw string) (commands.ScanResult, error) {
	t.Helper()
	cmd, err := commands.NewProcessScanCommand(f.session.ID(), raw, time.Now())
	require.NoError(t, err)
	return f.handler().Handle(t.Context(), cmd)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
