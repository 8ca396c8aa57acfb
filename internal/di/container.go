package di

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	memorycache "github.com/goliatone/go-dashboard/internal/cache"
	"github.com/goliatone/go-dashboard/internal/layout"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/internal/logging/console"
	"github.com/goliatone/go-dashboard/internal/logging/gologger"
	"github.com/goliatone/go-dashboard/internal/runtimeconfig"
	"github.com/goliatone/go-dashboard/internal/tabs"
	"github.com/goliatone/go-dashboard/internal/widgets"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Container wires module dependencies from configuration plus overrides.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB  *bun.DB
	sqlDB  *sql.DB
	ownsDB bool

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	cacheProvider interfaces.CacheProvider

	registry *widgets.Registry

	widgetDefinitionRepo widgets.DefinitionRepository
	widgetInstanceRepo   widgets.InstanceRepository
	tabRepo              tabs.Repository

	widgetSvc   widgets.Service
	tabSvc      tabs.Service
	layoutStore *layout.Store
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds an externally managed bun database.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSQLDB binds an externally managed database handle. The container wraps
// it with the dialect matching the configured driver.
func WithSQLDB(db *sql.DB) Option {
	return func(c *Container) {
		c.sqlDB = db
	}
}

// WithCache overrides the repository cache service bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCacheProvider overrides the key-value provider backing the layout store.
func WithCacheProvider(provider interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.cacheProvider = provider
	}
}

// WithLoggerProvider overrides the logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithRegistry overrides the widget catalog registry.
func WithRegistry(registry *widgets.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithWidgetService overrides the default widget service binding.
func WithWidgetService(svc widgets.Service) Option {
	return func(c *Container) {
		c.widgetSvc = svc
	}
}

// WithTabService overrides the default tab service binding.
func WithTabService(svc tabs.Service) Option {
	return func(c *Container) {
		c.tabSvc = svc
	}
}

// WithWidgetRepositories overrides the widget persistence bindings.
func WithWidgetRepositories(definitions widgets.DefinitionRepository, instances widgets.InstanceRepository) Option {
	return func(c *Container) {
		c.widgetDefinitionRepo = definitions
		c.widgetInstanceRepo = instances
	}
}

// WithTabRepository overrides the tab persistence binding.
func WithTabRepository(repo tabs.Repository) Option {
	return func(c *Container) {
		c.tabRepo = repo
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:               cfg,
		cacheTTL:             cacheTTL,
		registry:             widgets.NewRegistry(),
		widgetDefinitionRepo: widgets.NewMemoryDefinitionRepository(),
		widgetInstanceRepo:   widgets.NewMemoryInstanceRepository(),
		tabRepo:              tabs.NewMemoryRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()

	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRegistry()

	if c.cacheProvider == nil {
		c.cacheProvider = memorycache.NewMemoryProvider()
	}

	if c.widgetSvc == nil {
		c.widgetSvc = widgets.NewService(
			c.widgetDefinitionRepo,
			c.widgetInstanceRepo,
			widgets.WithRegistry(c.registry),
			widgets.WithLogger(logging.WidgetsLogger(c.loggerProvider)),
		)
	}

	if c.tabSvc == nil {
		c.tabSvc = tabs.NewService(
			c.tabRepo,
			tabs.WithLogger(logging.TabsLogger(c.loggerProvider)),
		)
	}

	if c.layoutStore == nil {
		storeOpts := []layout.StoreOption{
			layout.WithNamespace(cfg.Layout.Namespace),
			layout.WithLogger(logging.LayoutLogger(c.loggerProvider)),
		}
		if cfg.Layout.TTL > 0 {
			storeOpts = append(storeOpts, layout.WithTTL(cfg.Layout.TTL))
		}
		c.layoutStore = layout.NewStore(c.cacheProvider, storeOpts...)
	}

	return c, nil
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil {
		return
	}
	if !c.Config.Features.Logger {
		return
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "console":
		minLevel := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &minLevel})
	case "gologger":
		// Validate already vetted level and format; a failure here means a
		// provider bug, and the module degrades to no-op logging.
		if provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		}); err == nil {
			c.loggerProvider = provider
		}
	}
}

// configureDatabase resolves the bun handle for database-backed drivers. The
// sqlite driver opens its own connection; postgres requires a host-supplied
// handle so connection pooling stays with the application.
func (c *Container) configureDatabase() error {
	if c.bunDB != nil {
		return nil
	}

	driver := strings.ToLower(strings.TrimSpace(c.Config.Storage.Driver))
	switch driver {
	case "", "memory":
		return nil
	case "sqlite":
		sqldb := c.sqlDB
		if sqldb == nil {
			opened, err := sql.Open("sqlite3", c.Config.Storage.DSN)
			if err != nil {
				return fmt.Errorf("dashboard: open sqlite: %w", err)
			}
			sqldb = opened
			c.ownsDB = true
		}
		c.sqlDB = sqldb
		c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
		return nil
	case "postgres":
		if c.sqlDB == nil {
			return fmt.Errorf("dashboard: postgres driver requires WithSQLDB or WithBunDB")
		}
		c.bunDB = bun.NewDB(c.sqlDB, pgdialect.New())
		return nil
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, driver)
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.widgetDefinitionRepo = widgets.NewBunDefinitionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.widgetInstanceRepo = widgets.NewBunInstanceRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.tabRepo = tabs.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureRegistry() {
	if c.Config.Widgets.BuiltinCatalog {
		widgets.RegisterDefaultCatalog(c.registry)
	}
	for _, def := range c.Config.Widgets.Definitions {
		entry := widgets.CatalogEntry{
			Name:      def.Name,
			Category:  def.Category,
			Component: def.Component,
			Defaults:  def.Defaults,
			Schema:    def.Schema,
		}
		if icon := strings.TrimSpace(def.Icon); icon != "" {
			entry.Icon = &icon
		}
		c.registry.Register(entry)
	}
}

// Close releases resources the container opened itself. Host-supplied
// databases are left alone.
func (c *Container) Close() error {
	if c.ownsDB && c.sqlDB != nil {
		return c.sqlDB.Close()
	}
	return nil
}

// LoggerProvider exposes the configured logger provider, which may be nil.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the resolved bun handle, nil for memory storage.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// CacheProvider exposes the key-value provider backing the layout store.
func (c *Container) CacheProvider() interfaces.CacheProvider {
	return c.cacheProvider
}

// Registry exposes the widget catalog.
func (c *Container) Registry() *widgets.Registry {
	return c.registry
}

// WidgetService returns the configured widget service.
func (c *Container) WidgetService() widgets.Service {
	return c.widgetSvc
}

// TabService returns the configured tab service.
func (c *Container) TabService() tabs.Service {
	return c.tabSvc
}

// LayoutStore returns the configured layout store.
func (c *Container) LayoutStore() *layout.Store {
	return c.layoutStore
}

// WidgetDefinitionRepository exposes the configured definition repository.
func (c *Container) WidgetDefinitionRepository() widgets.DefinitionRepository {
	return c.widgetDefinitionRepo
}

// WidgetInstanceRepository exposes the configured instance repository.
func (c *Container) WidgetInstanceRepository() widgets.InstanceRepository {
	return c.widgetInstanceRepo
}

// TabRepository exposes the configured tab repository.
func (c *Container) TabRepository() tabs.Repository {
	return c.tabRepo
}
