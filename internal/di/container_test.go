package di

import (
	"testing"

	"github.com/goliatone/go-dashboard/internal/runtimeconfig"
)

func TestContainerWiresConsoleProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.LoggerProvider() == nil {
		t.Fatal("default console provider not wired")
	}
	if logger := container.LoggerProvider().GetLogger("dashboard.widgets"); logger == nil {
		t.Fatal("console provider returned nil logger")
	}
}

func TestContainerWiresGologgerProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.LoggerProvider() == nil {
		t.Fatal("gologger provider not wired")
	}
}

func TestContainerLoggingDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	t.Cleanup(func() { _ = container.Close() })

	if container.LoggerProvider() != nil {
		t.Fatal("provider wired with logging feature disabled")
	}
}
