// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about simulation runs and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSimulationHooks(&mySimHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Simulation().OnRunStart(ctx, runID, steps)
//	// ... run simulation ...
//	observability.Simulation().OnRunComplete(ctx, runID, modules, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// SimulationHooks receives events from simulation runs.
type SimulationHooks interface {
	// OnRunStart records the beginning of a run of the given length.
	OnRunStart(ctx context.Context, runID string, steps int)

	// OnStep records one completed growth step. founded reports whether the
	// step created a new module rather than extending one.
	OnStep(ctx context.Context, runID string, step int, founded bool)

	// OnRunComplete records the end of a run with the final module count.
	OnRunComplete(ctx context.Context, runID string, modules int, duration time.Duration, err error)
}

// RenderHooks receives events from artifact rendering.
type RenderHooks interface {
	// OnRenderStart records the beginning of rendering for the given formats.
	OnRenderStart(ctx context.Context, formats []string)

	// OnRenderComplete records the end of rendering.
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Defaults
// =============================================================================

type noopSimulationHooks struct{}

func (noopSimulationHooks) OnRunStart(context.Context, string, int)                          {}
func (noopSimulationHooks) OnStep(context.Context, string, int, bool)                        {}
func (noopSimulationHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

type noopRenderHooks struct{}

func (noopRenderHooks) OnRenderStart(context.Context, []string)                          {}
func (noopRenderHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// =============================================================================
// Registration
// =============================================================================

var (
	mu        sync.RWMutex
	simHooks  SimulationHooks = noopSimulationHooks{}
	rendHooks RenderHooks     = noopRenderHooks{}
)

// SetSimulationHooks registers simulation hooks. Pass nil to restore no-ops.
func SetSimulationHooks(h SimulationHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		simHooks = noopSimulationHooks{}
		return
	}
	simHooks = h
}

// Simulation returns the registered simulation hooks, never nil.
func Simulation() SimulationHooks {
	mu.RLock()
	defer mu.RUnlock()
	return simHooks
}

// SetRenderHooks registers render hooks. Pass nil to restore no-ops.
func SetRenderHooks(h RenderHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		rendHooks = noopRenderHooks{}
		return
	}
	rendHooks = h
}

// Render returns the registered render hooks, never nil.
func Render() RenderHooks {
	mu.RLock()
	defer mu.RUnlock()
	return rendHooks
}
