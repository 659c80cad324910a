package session

import (
	"context"
	"sync"

	"h3vector/internal/debug"
	"h3vector/internal/grid"
	"h3vector/internal/sampler"
	"h3vector/internal/stats"
)

// Generate samples and summarizes synchronously. Any failure yields an
// empty result carrying the error.
func Generate(ctx context.Context, provider grid.Provider, params Params) Result {
	r := Result{Params: params}

	cells, err := sampler.Sample(ctx, provider, params.Resolution, params.Region)
	if err != nil {
		r.Err = err
		return r
	}

	st, err := stats.Compute(provider, cells, params.Resolution)
	if err != nil {
		r.Err = err
		return r
	}

	r.Cells = cells
	r.Stats = st
	return r
}

// Generator runs generations on a worker goroutine. Starting a generation
// cancels the one in flight; a cancelled generation delivers nothing.
type Generator struct {
	provider grid.Provider
	results  chan Result
	done     chan struct{}

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
	wg         sync.WaitGroup
	closed     bool
}

// NewGenerator creates a generator over provider
func NewGenerator(provider grid.Provider) *Generator {
	return &Generator{
		provider: provider,
		results:  make(chan Result, 1),
		done:     make(chan struct{}),
	}
}

// Results returns the channel finished generations are delivered on
func (g *Generator) Results() <-chan Result {
	return g.results
}

// Start begins a generation and returns its id. Ids increase with every call.
func (g *Generator) Start(params Params) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.generation++
	gen := g.generation
	if g.closed {
		return gen
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		r := Generate(ctx, g.provider, params)
		r.Generation = gen
		if ctx.Err() != nil {
			debug.Log("generation %d superseded", gen)
			return
		}
		if r.Err != nil {
			debug.L().Error("generation failed", "generation", gen, "resolution", params.Resolution, "region", params.Region.Name, "err", r.Err)
		} else {
			debug.Log("generation %d: %d cells at res %d in %s", gen, len(r.Cells), params.Resolution, params.Region.Name)
		}

		select {
		case g.results <- r:
		case <-ctx.Done():
		case <-g.done:
		}
	}()

	return gen
}

// Close cancels any running generation and waits for the worker to exit
func (g *Generator) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	if g.cancel != nil {
		g.cancel()
	}
	close(g.done)
	g.mu.Unlock()

	g.wg.Wait()
}
