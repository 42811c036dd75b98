// Package query manages the lifecycle of interactive queries: debounced
// evaluation while the user types, and stale-result suppression when a
// newer query supersedes an in-flight one.
package query

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/openstage/directory-server/internal/rank"
)

// DefaultDebounceInterval is how long input must settle before a query is
// evaluated.
const DefaultDebounceInterval = 250 * time.Millisecond

// DeliverFunc receives the outcome of one settled query evaluation. It is
// called from the controller's timer goroutine; implementations must not
// call back into the controller synchronously.
type DeliverFunc func(raw string, res *rank.Result, err error)

// Options configures a Controller.
type Options struct {
	// DebounceInterval is the settle delay before evaluation. Zero means
	// DefaultDebounceInterval.
	DebounceInterval time.Duration
	// Search is passed through to every engine evaluation. Zero value
	// means rank.DefaultOptions.
	Search rank.Options
	Logger *slog.Logger
}

func (o *Options) setDefaults() {
	if o.DebounceInterval <= 0 {
		o.DebounceInterval = DefaultDebounceInterval
	}
	if o.Search.MaxSecondary <= 0 {
		o.Search = rank.DefaultOptions()
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}

// Controller debounces query input against a ranking engine. Each SetQuery
// restarts the settle timer; only the value that survives the full interval
// is evaluated, and an evaluation that finishes after a newer one has
// delivered is dropped rather than delivered out of order.
type Controller struct {
	opts    Options
	deliver DeliverFunc

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	engine     *rank.Engine
	timer      *time.Timer
	generation uint64
	// delivered is the highest generation whose result reached the
	// callback. An older evaluation finishing late is dropped; input
	// arriving while an evaluation runs does not cancel its delivery.
	delivered uint64
	stopped   bool
}

// New builds a Controller around an engine. The engine may be swapped later
// with SetEngine; deliver must be non-nil.
func New(engine *rank.Engine, deliver DeliverFunc, opts Options) *Controller {
	opts.setDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		opts:    opts,
		deliver: deliver,
		ctx:     ctx,
		cancel:  cancel,
		engine:  engine,
	}
}

// SetQuery records the latest input and restarts the settle timer. Calls
// made while a previous query is still settling supersede it.
func (c *Controller) SetQuery(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	c.generation++
	gen := c.generation

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.opts.DebounceInterval, func() {
		c.evaluate(gen, raw)
	})
}

// Flush evaluates the given query immediately, bypassing the settle timer.
// Any pending debounced evaluation is superseded.
func (c *Controller) Flush(raw string) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.evaluate(gen, raw)
}

// SetEngine swaps the engine, invalidating any in-flight evaluation against
// the old corpus. Used on corpus reload.
func (c *Controller) SetEngine(engine *rank.Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.engine = engine
}

// Stop cancels any pending evaluation. The controller cannot be restarted.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancel()
}

func (c *Controller) evaluate(gen uint64, raw string) {
	c.mu.Lock()
	if c.stopped || gen != c.generation {
		c.mu.Unlock()
		return
	}
	engine := c.engine
	c.mu.Unlock()

	res, err := engine.Search(c.ctx, raw, c.opts.Search)

	// Deliver unless a newer evaluation already delivered. A keystroke
	// arriving mid-search only supersedes this result once its own
	// evaluation completes; it never cancels a finished one.
	c.mu.Lock()
	if c.stopped || gen <= c.delivered {
		c.mu.Unlock()
		c.opts.Logger.Debug("dropped stale query result", "query", raw)
		return
	}
	c.delivered = gen
	c.mu.Unlock()

	c.deliver(raw, res, err)
}
