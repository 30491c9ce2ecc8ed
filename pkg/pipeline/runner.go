package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sproutsim/sprout/pkg/graph"
	"github.com/sproutsim/sprout/pkg/observability"
	"github.com/sproutsim/sprout/pkg/render/nodelink"
	"github.com/sproutsim/sprout/pkg/sim"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this run in logs and hook events.
	RunID string

	// Snapshot is the final tree state with derived scores.
	Snapshot graph.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Steps        int
	ModuleCount  int
	MaxDepth     int
	SimulateTime time.Duration
	RenderTime   time.Duration
}

// Runner executes the simulate → snapshot → render pipeline.
//
// The Runner is stateless except for its logger; it stores no run results.
// Multiple goroutines can use the same Runner with different options, since
// every Execute call builds its own simulation instance.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Simulate
	simStart := time.Now()
	snapshot, err := r.Simulate(ctx, result.RunID, opts)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	result.Snapshot = snapshot
	result.Stats.Steps = opts.Steps
	result.Stats.ModuleCount = len(snapshot.Nodes)
	result.Stats.SimulateTime = time.Since(simStart)
	for _, n := range snapshot.Nodes {
		if n.Depth > result.Stats.MaxDepth {
			result.Stats.MaxDepth = n.Depth
		}
	}

	r.Logger.Info("simulated growth",
		"run", result.RunID,
		"steps", opts.Steps,
		"modules", result.Stats.ModuleCount,
		"max_depth", result.Stats.MaxDepth,
		"duration", result.Stats.SimulateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, snapshot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Simulate grows a fresh tree for the configured number of steps and
// returns its snapshot. The context is checked between steps so a canceled
// run stops promptly.
func (r *Runner) Simulate(ctx context.Context, runID string, opts Options) (graph.Snapshot, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return graph.Snapshot{}, err
	}
	params, err := opts.ResolveParams()
	if err != nil {
		return graph.Snapshot{}, err
	}

	simOpts := []sim.Option{sim.WithSeed(opts.Seed)}
	if opts.RootLabel != "" {
		simOpts = append(simOpts, sim.WithRootLabel(opts.RootLabel))
	}
	s, err := sim.New(params, simOpts...)
	if err != nil {
		return graph.Snapshot{}, err
	}

	start := time.Now()
	hooks := observability.Simulation()
	hooks.OnRunStart(ctx, runID, opts.Steps)

	runErr := func() error {
		for step := 0; step < opts.Steps; step++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out, err := s.Grow()
			if err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
			hooks.OnStep(ctx, runID, step, out.Founded)
		}
		return nil
	}()
	hooks.OnRunComplete(ctx, runID, s.Len(), time.Since(start), runErr)
	if runErr != nil {
		return graph.Snapshot{}, runErr
	}

	return graph.FromTree(s.Tree(), params)
}

// Render produces the requested artifacts from a snapshot.
func (r *Runner) Render(ctx context.Context, snapshot graph.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	dot := ""
	needDOT := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(snapshot, nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	var renderErr error
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := graph.Marshal(snapshot)
			if err != nil {
				renderErr = fmt.Errorf("marshal snapshot: %w", err)
			} else {
				artifacts[format] = data
			}
		case FormatDOT:
			artifacts[format] = []byte(needDOT())
		case FormatSVG:
			data, err := nodelink.RenderSVG(needDOT())
			if err != nil {
				renderErr = fmt.Errorf("render svg: %w", err)
			} else {
				artifacts[format] = data
			}
		case FormatPNG:
			data, err := nodelink.RenderPNG(needDOT())
			if err != nil {
				renderErr = fmt.Errorf("render png: %w", err)
			} else {
				artifacts[format] = data
			}
		}
		if renderErr != nil {
			break
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, renderErr
	}
	return artifacts, nil
}
