package catalogrepo_test

import (
	"context"
	"testing"
	"time"

	"picking/internal/adapters/out/postgres/catalogrepo"
	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CatalogRepositoryIntegrationTestSuite checks barcode classification and catalog
// lookups against a real PostgreSQL database.
type CatalogRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *catalogrepo.GormCatalogRepository
	tracker    *MockAggregateTracker

	unitsID   uuid.UUID
	stockID   uuid.UUID
	cableID   uuid.UUID
	cheeseID  uuid.UUID
	routerID  uuid.UUID
	palletID  uuid.UUID
	packageID uuid.UUID
	quantID   uuid.UUID
	ownerID   uuid.UUID
	lotID     uuid.UUID
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(catalogrepo.Models()...))
}

func (suite *CatalogRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE uoms, products, locations, packagings, lots, owners, package_types, packages, quants, sequences",
	).Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = catalogrepo.NewGormCatalogRepository(suite.db, suite.tracker)
	suite.seed()
}

func (suite *CatalogRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) seed() {
	suite.unitsID = uuid.New()
	suite.stockID = uuid.New()
	suite.cableID = uuid.New()
	suite.cheeseID = uuid.New()
	suite.routerID = uuid.New()
	suite.palletID = uuid.New()
	suite.packageID = uuid.New()
	suite.quantID = uuid.New()
	suite.ownerID = uuid.New()
	suite.lotID = uuid.New()

	kg := uuid.New()
	rows := []any{
		&catalogrepo.UoMDTO{ID: suite.unitsID, Name: "Units", CategoryID: uuid.New(), Factor: decimal.NewFromInt(1)},
		&catalogrepo.UoMDTO{ID: kg, Name: "kg", CategoryID: uuid.New(), Factor: decimal.NewFromInt(1)},
		&catalogrepo.LocationDTO{ID: suite.stockID, Name: "WH/Stock", Barcode: "WH-STOCK", ParentPath: "/WH/Stock/"},
		&catalogrepo.ProductDTO{
			ID: suite.cableID, Name: "Cable", Barcode: "CABLE", AltBarcodes: pq.StringArray{"CABLE-OLD", "4006381333931"},
			Tracking: "none", UoMID: suite.unitsID,
		},
		&catalogrepo.ProductDTO{ID: suite.cheeseID, Name: "Cheese", Barcode: "2112345000008", Tracking: "none", UoMID: kg},
		&catalogrepo.ProductDTO{ID: suite.routerID, Name: "Router", Barcode: "ROUTER", Tracking: "serial", UoMID: suite.unitsID},
		&catalogrepo.PackagingDTO{ID: uuid.New(), Name: "Box of 12", Barcode: "CABLE-BOX", ProductID: suite.cableID, Qty: decimal.NewFromInt(12)},
		&catalogrepo.LotDTO{ID: suite.lotID, Name: "SN-001", ProductID: suite.routerID},
		&catalogrepo.OwnerDTO{ID: suite.ownerID, Name: "Consignor"},
		&catalogrepo.PackageTypeDTO{ID: suite.palletID, Name: "Pallet", Barcode: "PALLET"},
		&catalogrepo.PackageDTO{ID: suite.packageID, Name: "PACK0000042", LocationID: &suite.stockID},
		&catalogrepo.QuantDTO{
			ID: suite.quantID, ProductID: suite.routerID, LocationID: suite.stockID,
			LotID: &suite.lotID, PackageID: &suite.packageID, OwnerID: &suite.ownerID, Quantity: decimal.NewFromInt(1),
		},
	}
	for _, row := range rows {
		suite.Require().NoError(suite.db.Create(row).Error)
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) parse(raw string) barcode.Data {
	data, err := suite.repository.Parse(context.Background(), raw, barcode.Filters{})
	suite.Require().NoError(err)
	return data
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_ProductByPrimaryAndAlternativeBarcode() {
	for _, raw := range []string{"CABLE", "CABLE-OLD", "4006381333931"} {
		data := suite.parse(raw)
		suite.True(data.Match, raw)
		suite.Require().NotNil(data.Product, raw)
		suite.Equal("Cable", data.Product.Name())
		suite.Equal(barcode.KindProduct, data.Kind())
	}
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_CommandCodes() {
	suite.Equal(barcode.ActionValidate, suite.parse("O-BTN.validate").Action)
	suite.Equal(barcode.ActionPutInPack, suite.parse("O-BTN.pack").Action)
	suite.Equal(barcode.ActionDiscard, suite.parse("O-BTN.discard").Action)

	_, err := suite.repository.Parse(context.Background(), "O-BTN.print", barcode.Filters{})
	suite.ErrorIs(err, errs.ErrParse)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_WeightCode() {
	// 21 12345 01250 6: 1.250 kg of cheese
	data := suite.parse("2112345012506")

	suite.Require().NotNil(data.Product)
	suite.Equal("Cheese", data.Product.Name())
	suite.Require().NotNil(data.Weight)
	suite.Equal("1.25", data.Weight.String())
	suite.Equal(barcode.KindWeight, data.Kind())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_WeightCodeWithWrongCheckDigit() {
	_, err := suite.repository.Parse(context.Background(), "2112345012504", barcode.Filters{})
	suite.ErrorIs(err, errs.ErrParse)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_PackagingLotPackageAndLocation() {
	packaging := suite.parse("CABLE-BOX")
	suite.Require().NotNil(packaging.Packaging)
	suite.Equal("12", packaging.Packaging.Qty().String())

	lot := suite.parse("SN-001")
	suite.Require().NotNil(lot.Lot)
	suite.Equal(barcode.KindLot, lot.Kind())

	pkg := suite.parse("PACK0000042")
	suite.Require().NotNil(pkg.Package)
	suite.Len(pkg.Package.QuantIDs(), 1)

	packageType := suite.parse("PALLET")
	suite.Require().NotNil(packageType.PackageType)

	loc := suite.parse("WH-STOCK")
	suite.Require().NotNil(loc.Location)
	suite.Equal("/WH/Stock/", loc.Location.ParentPath())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_LotFilterHidesLotsOfOtherProducts() {
	cableID, err := kernel.UUIDFromBytes(suite.cableID[:])
	suite.Require().NoError(err)

	data, err := suite.repository.Parse(context.Background(), "SN-001", barcode.Filters{LotProductID: &cableID})
	suite.Require().NoError(err)
	suite.False(data.Match)

	unfiltered, err := suite.repository.GetByBarcode(context.Background(), "SN-001", barcode.KindLot)
	suite.Require().NoError(err)
	suite.NotNil(unfiltered.Lot)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_UnknownCodeIsNotAnError() {
	data := suite.parse("NOPE-123")
	suite.False(data.Match)
	suite.Equal(barcode.KindUnrecognized, data.Kind())

	_, err := suite.repository.GetByBarcode(context.Background(), "NOPE-123", barcode.KindProduct)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestQuantsAndPrefill() {
	ctx := context.Background()
	quantID, err := kernel.UUIDFromBytes(suite.quantID[:])
	suite.Require().NoError(err)

	quants, err := suite.repository.Quants(ctx, []kernel.UUID{quantID, kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Require().Len(quants, 1)
	suite.Equal("Router", quants[0].Product().Name())
	suite.Equal("SN-001", quants[0].Lot().Name())
	suite.Equal("Consignor", quants[0].Owner().Name())

	routerID, err := kernel.UUIDFromBytes(suite.routerID[:])
	suite.Require().NoError(err)
	prefill, err := suite.repository.PrefilledOwnerPackage(ctx, routerID, nil, "SN-001")
	suite.Require().NoError(err)
	suite.Require().NotNil(prefill.Package)
	suite.Equal("PACK0000042", prefill.Package.Name())
	suite.Require().NotNil(prefill.Owner)

	none, err := suite.repository.PrefilledOwnerPackage(ctx, routerID, nil, "SN-999")
	suite.Require().NoError(err)
	suite.Nil(none.Package)
	suite.Nil(none.Owner)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestProductAndLocation_NotFound() {
	_, err := suite.repository.Product(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.Location(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestAddLotAndPackage() {
	ctx := context.Background()
	routerID, err := kernel.UUIDFromBytes(suite.routerID[:])
	suite.Require().NoError(err)

	lot, err := catalog.NewLot(kernel.NewUUID(), "SN-002", routerID)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", lot.ID(), lot).Once()
	suite.Require().NoError(suite.repository.AddLot(ctx, lot))

	name, err := suite.repository.NextPackageName(ctx)
	suite.Require().NoError(err)
	suite.Equal("PACK0000001", name)
	next, err := suite.repository.NextPackageName(ctx)
	suite.Require().NoError(err)
	suite.Equal("PACK0000002", next)

	pkg, err := catalog.NewPackage(kernel.NewUUID(), name, nil, nil)
	suite.Require().NoError(err)
	palletID, err := kernel.UUIDFromBytes(suite.palletID[:])
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", pkg.ID(), pkg).Once()
	suite.Require().NoError(suite.repository.AddPackage(ctx, pkg, &palletID))

	data := suite.parse("SN-002")
	suite.NotNil(data.Lot)
	data = suite.parse("PACK0000001")
	suite.Require().NotNil(data.Package)
	suite.False(data.Package.HasQuants())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CatalogRepositoryIntegrationTestSuite) TestParse_UnknownPackageName() {
	unknown := suite.parse("PACK0000099")
	suite.True(unknown.Match)
	suite.Nil(unknown.Package)
	suite.Equal("PACK0000099", unknown.PackageName)

	known := suite.parse("PACK0000042")
	suite.Require().NotNil(known.Package)
	suite.Empty(known.PackageName)

	other := suite.parse("PACK-99")
	suite.Empty(other.PackageName)
	suite.False(other.Match)
}

func TestCatalogRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositoryIntegrationTestSuite))
}
