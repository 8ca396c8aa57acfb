package widgetscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-dashboard/internal/commands"
	"github.com/goliatone/go-dashboard/internal/layout"
	"github.com/goliatone/go-dashboard/internal/logging"
	"github.com/goliatone/go-dashboard/internal/widgets"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
	"github.com/google/uuid"
)

const pruneTabLayoutMessageType = "dashboard.widgets.layout.prune"

// PruneTabLayoutCommand reconciles a tab's persisted layout against its
// active widget instances, dropping entries for removed widgets and
// regenerating when the layout no longer covers the tab.
type PruneTabLayoutCommand struct {
	TabID uuid.UUID `json:"tab_id"`
}

// Type implements command.Message.
func (PruneTabLayoutCommand) Type() string { return pruneTabLayoutMessageType }

// Validate ensures required fields are present.
func (m PruneTabLayoutCommand) Validate() error {
	errs := validation.Errors{}
	if m.TabID == uuid.Nil {
		errs["tab_id"] = validation.NewError("dashboard.widgets.layout.prune.tab_id_required", "tab_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PruneTabLayoutHandler wraps layout reconciliation for one tab.
type PruneTabLayoutHandler struct {
	inner *commands.Handler[PruneTabLayoutCommand]
}

// NewPruneTabLayoutHandler constructs a handler wired to the widget service
// and layout store.
func NewPruneTabLayoutHandler(service widgets.Service, store *layout.Store, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[PruneTabLayoutCommand]) *PruneTabLayoutHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PruneTabLayoutCommand) error {
		if !gates.widgetsEnabled() {
			return ErrWidgetsModuleDisabled
		}

		active, err := service.ListByTab(ctx, msg.TabID, false)
		if err != nil {
			return err
		}
		entries, err := store.Load(ctx, msg.TabID, active)
		if err != nil {
			return err
		}
		if err := store.Save(ctx, msg.TabID, entries); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"tab_id":  msg.TabID,
			"entries": len(entries),
		}).Info("widgets.command.layout.pruned")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[PruneTabLayoutCommand]{
		commands.WithLogger[PruneTabLayoutCommand](baseLogger),
		commands.WithOperation[PruneTabLayoutCommand]("widgets.layout.prune"),
	}, opts...)

	return &PruneTabLayoutHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute conforms to command.Commander.
func (h *PruneTabLayoutHandler) Execute(ctx context.Context, msg PruneTabLayoutCommand) error {
	return h.inner.Execute(ctx, msg)
}
