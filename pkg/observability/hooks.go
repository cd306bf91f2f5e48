// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about configuration loading and batch runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBatchHooks(&myBatchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Batch().OnLoad(ctx, input, kind, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Config Hooks
// =============================================================================

// ConfigHooks receives events from configuration loading.
type ConfigHooks interface {
	// OnConfigLoad records a configuration load. components and relations
	// count the resolved types; both are zero when err is non-nil.
	OnConfigLoad(ctx context.Context, path string, components, relations int, duration time.Duration, err error)
}

// =============================================================================
// Batch Hooks
// =============================================================================

// BatchHooks receives events from a batch run.
type BatchHooks interface {
	// Run events
	OnBatchStart(ctx context.Context, runID string, inputs int)
	OnBatchComplete(ctx context.Context, runID string, written, skipped, failed int, duration time.Duration)

	// OnLoad records the load of one input. kind is empty when the input
	// could not be read or decoded.
	OnLoad(ctx context.Context, input, kind string, duration time.Duration, err error)

	// OnEmit records the emission of one output document.
	OnEmit(ctx context.Context, input, output string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConfigHooks is a no-op implementation of ConfigHooks.
type NoopConfigHooks struct{}

func (NoopConfigHooks) OnConfigLoad(context.Context, string, int, int, time.Duration, error) {}

// NoopBatchHooks is a no-op implementation of BatchHooks.
type NoopBatchHooks struct{}

func (NoopBatchHooks) OnBatchStart(context.Context, string, int)                             {}
func (NoopBatchHooks) OnBatchComplete(context.Context, string, int, int, int, time.Duration) {}
func (NoopBatchHooks) OnLoad(context.Context, string, string, time.Duration, error)          {}
func (NoopBatchHooks) OnEmit(context.Context, string, string, int, time.Duration, error)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	configHooks ConfigHooks = NoopConfigHooks{}
	batchHooks  BatchHooks  = NoopBatchHooks{}
	hooksMu     sync.RWMutex
)

// SetConfigHooks registers custom configuration hooks.
// This should be called once at application startup before any configuration is loaded.
func SetConfigHooks(h ConfigHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		configHooks = h
	}
}

// SetBatchHooks registers custom batch hooks.
// This should be called once at application startup before any batch runs.
func SetBatchHooks(h BatchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		batchHooks = h
	}
}

// Config returns the registered configuration hooks.
func Config() ConfigHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return configHooks
}

// Batch returns the registered batch hooks.
func Batch() BatchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return batchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	configHooks = NoopConfigHooks{}
	batchHooks = NoopBatchHooks{}
}
