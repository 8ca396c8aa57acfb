package widgetscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-dashboard/internal/commands"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/internal/widgets"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

const syncWidgetCatalogMessageType = "dashboard.widgets.catalog.sync"

// ErrWidgetsModuleDisabled is returned when a widget command runs against a
// disabled module.
var ErrWidgetsModuleDisabled = errors.New("widgets command: module disabled")

// FeatureGates exposes the runtime toggles required by widget command handlers.
type FeatureGates struct {
	WidgetsEnabled func() bool
}

func (g FeatureGates) widgetsEnabled() bool {
	if g.WidgetsEnabled == nil {
		return true
	}
	return g.WidgetsEnabled()
}

// SyncWidgetCatalogCommand seeds missing widget definitions from the registry
// catalog. Running it repeatedly converges on the same definition set.
type SyncWidgetCatalogCommand struct{}

// Type implements command.Message.
func (SyncWidgetCatalogCommand) Type() string { return syncWidgetCatalogMessageType }

// Validate implements command.Message. The sync command has no payload.
func (SyncWidgetCatalogCommand) Validate() error { return nil }

// SyncWidgetCatalogHandler wraps catalog sync operations.
type SyncWidgetCatalogHandler struct {
	inner *commands.Handler[SyncWidgetCatalogCommand]
}

// NewSyncWidgetCatalogHandler constructs a handler wired to the widget service.
func NewSyncWidgetCatalogHandler(service widgets.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncWidgetCatalogCommand]) *SyncWidgetCatalogHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, _ SyncWidgetCatalogCommand) error {
		if !gates.widgetsEnabled() {
			return ErrWidgetsModuleDisabled
		}
		if err := service.SyncCatalog(ctx); err != nil {
			return err
		}
		baseLogger.Info("widgets.command.catalog.synced")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[SyncWidgetCatalogCommand]{
		commands.WithLogger[SyncWidgetCatalogCommand](baseLogger),
		commands.WithOperation[SyncWidgetCatalogCommand]("widgets.catalog.sync"),
	}, opts...)

	return &SyncWidgetCatalogHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute conforms to command.Commander.
func (h *SyncWidgetCatalogHandler) Execute(ctx context.Context, msg SyncWidgetCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}
