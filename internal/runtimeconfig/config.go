package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStorageDriverUnknown = errors.New("dashboard config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("dashboard config: storage dsn is required for database drivers")
var ErrCacheTTLInvalid = errors.New("dashboard config: cache ttl must be zero or positive")
var ErrLoggingProviderRequired = errors.New("dashboard config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("dashboard config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("dashboard config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("dashboard config: logging format is invalid")
var ErrLayoutNamespaceRequired = errors.New("dashboard config: layout namespace is required")
var ErrWidgetDefinitionNameRequired = errors.New("dashboard config: widget definition name is required")

// Config aggregates feature flags and adapter bindings for the dashboard
// module. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Enabled  bool
	Storage  StorageConfig
	Cache    CacheConfig
	Layout   LayoutConfig
	Widgets  WidgetConfig
	Tabs     TabConfig
	Features Features
	Commands CommandsConfig
	Logging  LoggingConfig
}

// StorageConfig selects the persistence backend for tabs and widget
// instances.
type StorageConfig struct {
	// Driver is one of "memory", "sqlite", or "postgres".
	Driver string
	DSN    string
}

// CacheConfig captures cache behaviour toggles. The cache backs both the
// repository read-through layer and the layout blob store.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LayoutConfig controls the grid layout store.
type LayoutConfig struct {
	// Namespace prefixes every persisted layout key.
	Namespace string
	// TTL bounds persisted layout lifetime. Zero keeps layouts forever.
	TTL time.Duration
}

// WidgetConfig controls catalog bootstrapping.
type WidgetConfig struct {
	// BuiltinCatalog loads the stock widget types on startup.
	BuiltinCatalog bool
	// Definitions are host-supplied widget types registered alongside the
	// built-in catalog.
	Definitions []WidgetDefinitionConfig
	// SyncOnStart seeds the definition store from the registry at startup.
	SyncOnStart bool
}

// WidgetDefinitionConfig mirrors the minimal RegisterDefinitionInput
// requirements.
type WidgetDefinitionConfig struct {
	Name      string
	Category  string
	Component string
	Icon      string
	Defaults  map[string]any
	Schema    map[string]any
}

// TabConfig controls tab bootstrapping.
type TabConfig struct {
	// EnsureDefault creates a starter tab when the store is empty.
	EnsureDefault bool
}

// Features toggles module functionality.
type Features struct {
	Logger   bool
	Commands bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for an embedded dashboard.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Driver: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Layout: LayoutConfig{
			Namespace: "dashboard",
		},
		Widgets: WidgetConfig{
			BuiltinCatalog: true,
			SyncOnStart:    true,
		},
		Tabs: TabConfig{
			EnsureDefault: true,
		},
		Features: Features{},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch driver {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Layout.Namespace) == "" {
		return ErrLayoutNamespaceRequired
	}
	for _, def := range cfg.Widgets.Definitions {
		if strings.TrimSpace(def.Name) == "" {
			return ErrWidgetDefinitionNameRequired
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
