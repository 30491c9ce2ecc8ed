package observability

import (
	"context"
	"testing"
	"time"
)

type recordingSimHooks struct {
	starts, steps, completes int
}

func (r *recordingSimHooks) OnRunStart(context.Context, string, int)   { r.starts++ }
func (r *recordingSimHooks) OnStep(context.Context, string, int, bool) { r.steps++ }
func (r *recordingSimHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {
	r.completes++
}

func TestDefaultsAreNoops(t *testing.T) {
	SetSimulationHooks(nil)
	SetRenderHooks(nil)

	ctx := context.Background()
	// Must not panic.
	Simulation().OnRunStart(ctx, "run", 10)
	Simulation().OnStep(ctx, "run", 0, true)
	Simulation().OnRunComplete(ctx, "run", 5, time.Second, nil)
	Render().OnRenderStart(ctx, []string{"svg"})
	Render().OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
}

func TestSetSimulationHooks(t *testing.T) {
	rec := &recordingSimHooks{}
	SetSimulationHooks(rec)
	defer SetSimulationHooks(nil)

	ctx := context.Background()
	Simulation().OnRunStart(ctx, "run", 2)
	Simulation().OnStep(ctx, "run", 0, false)
	Simulation().OnStep(ctx, "run", 1, true)
	Simulation().OnRunComplete(ctx, "run", 3, time.Millisecond, nil)

	if rec.starts != 1 || rec.steps != 2 || rec.completes != 1 {
		t.Errorf("recorded %d/%d/%d, want 1/2/1", rec.starts, rec.steps, rec.completes)
	}
}

func TestSetNilRestoresNoop(t *testing.T) {
	SetSimulationHooks(&recordingSimHooks{})
	SetSimulationHooks(nil)
	if _, ok := Simulation().(noopSimulationHooks); !ok {
		t.Error("nil registration should restore the no-op hooks")
	}
}
