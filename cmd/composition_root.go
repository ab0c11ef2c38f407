package cmd

import (
	"log/slog"
	"net/http"

	httpadapter "picking/internal/adapters/in/http"
	"picking/internal/adapters/out/memory"
	"picking/internal/adapters/out/metrics"
	"picking/internal/adapters/out/notifier"
	"picking/internal/adapters/out/postgres"
	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/application/usecases/queries"
	"picking/internal/core/ports"
	"picking/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// CompositionRoot owns the process wide singletons: live sessions, the notifier and
// the metrics registry. Handlers are built on demand around them.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	sessions *memory.SessionStore
	notifier *notifier.LogNotifier
	registry *prometheus.Registry
	metrics  *metrics.ScanMetrics
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		sessions:   memory.NewSessionStore(),
		notifier:   notifier.NewLogNotifier(logger),
		registry:   registry,
		metrics:    metrics.NewScanMetrics(registry),
	}
}

func (c *CompositionRoot) unitOfWorkFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) documentGateway() commands.DocumentGateway {
	return commands.NewDocumentGateway(c.unitOfWorkFactory())
}

// barcodeCatalog reads outside any transaction.
func (c *CompositionRoot) barcodeCatalog() ports.BarcodeCatalog {
	return c.uowFactory.Create().CatalogRepository()
}

func (c *CompositionRoot) CreateProcessScanCommandHandler() commands.ProcessScanCommandHandler {
	return commands.NewProcessScanCommandHandler(
		c.sessions,
		c.documentGateway(),
		c.barcodeCatalog(),
		c.notifier,
		c.logger,
		c.metrics,
	)
}

func (c *CompositionRoot) CreateOpenSessionCommandHandler() commands.OpenSessionCommandHandler {
	return commands.NewOpenSessionCommandHandler(
		c.documentGateway(),
		c.barcodeCatalog(),
		c.sessions,
		c.CreateProcessScanCommandHandler(),
	)
}

func (c *CompositionRoot) CreateCloseSessionCommandHandler() commands.CloseSessionCommandHandler {
	return commands.NewCloseSessionCommandHandler(c.sessions, c.documentGateway())
}

func (c *CompositionRoot) CreateSaveDirtySessionsCommandHandler() commands.SaveDirtySessionsCommandHandler {
	return commands.NewSaveDirtySessionsCommandHandler(c.sessions, c.documentGateway())
}

func (c *CompositionRoot) CreateCloseIdleSessionsCommandHandler() commands.CloseIdleSessionsCommandHandler {
	return commands.NewCloseIdleSessionsCommandHandler(c.sessions, c.documentGateway())
}

func (c *CompositionRoot) CreateGetSessionStateQueryHandler() queries.GetSessionStateQueryHandler {
	return queries.NewGetSessionStateQueryHandler(c.sessions)
}

func (c *CompositionRoot) CreateListOpenDocumentsQueryHandler() queries.ListOpenDocumentsQueryHandler {
	return queries.NewListOpenDocumentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateOpenSessionCommandHandler(),
		c.CreateProcessScanCommandHandler(),
		c.CreateCloseSessionCommandHandler(),
		c.CreateGetSessionStateQueryHandler(),
		c.CreateListOpenDocumentsQueryHandler(),
		c.notifier,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSaveDirtySessionsCommandHandler(),
		c.CreateCloseIdleSessionsCommandHandler(),
		jobs.Schedules{
			Autosave:           c.configs.AutosaveSchedule,
			Reaper:             c.configs.ReaperSchedule,
			SessionIdleTimeout: c.configs.SessionIdleTimeout,
		},
		c.logger,
	)
}

// MetricsHandler exposes the registry the scan metrics are recorded in.
func (c *CompositionRoot) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
