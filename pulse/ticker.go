package pulse

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/fsim/kanban"
	"github.com/teranos/fsim/logger"
)

// TickFunc receives the snapshot of every day the ticker simulates.
type TickFunc func(kanban.Snapshot)

// Ticker advances a session one day per interval until stopped or until
// MaxDays have been simulated.
type Ticker struct {
	session  *Session
	onTick   TickFunc
	interval time.Duration
	maxDays  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
	pulseLog *zap.SugaredLogger // Logger with Pulse symbol pre-attached

	mu    sync.Mutex
	ticks int
}

// TickerConfig contains configuration for the auto-advance ticker
type TickerConfig struct {
	Interval time.Duration // Time between simulated days (default: 1 second)
	MaxDays  int           // Stop after this many days; 0 runs until Stop
}

// DefaultTickerConfig returns sensible defaults
func DefaultTickerConfig() TickerConfig {
	return TickerConfig{Interval: time.Second}
}

// NewTicker creates a ticker bound to ctx. onTick may be nil.
func NewTicker(ctx context.Context, session *Session, cfg TickerConfig, onTick TickFunc, log *zap.SugaredLogger) *Ticker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTickerConfig().Interval
	}
	if log == nil {
		log = logger.Logger
	}
	if onTick == nil {
		onTick = func(kanban.Snapshot) {}
	}
	tickerCtx, cancel := context.WithCancel(ctx)

	return &Ticker{
		session:  session,
		onTick:   onTick,
		interval: cfg.Interval,
		maxDays:  cfg.MaxDays,
		ctx:      tickerCtx,
		cancel:   cancel,
		done:     make(chan struct{}),
		pulseLog: logger.AddPulseSymbol(log.Named("pulse.ticker")),
	}
}

// Start begins the ticker loop
func (t *Ticker) Start() {
	t.wg.Add(1)
	go t.run()
	t.pulseLog.Infow("Pulse ticker started", "interval", t.interval, "max_days", t.maxDays)
}

// Stop cancels the loop and waits for the in-flight day to finish.
func (t *Ticker) Stop() {
	t.cancel()
	t.wg.Wait()
	t.pulseLog.Infow("Pulse ticker stopped", "ticks", t.Ticks())
}

// Done is closed when the loop exits, whether stopped or finished.
func (t *Ticker) Done() <-chan struct{} { return t.done }

// Ticks is the number of days simulated by this ticker.
func (t *Ticker) Ticks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticks
}

func (t *Ticker) run() {
	defer t.wg.Done()
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			snap := t.session.Step()
			t.onTick(snap)

			t.mu.Lock()
			t.ticks++
			n := t.ticks
			t.mu.Unlock()

			if t.maxDays > 0 && n >= t.maxDays {
				t.pulseLog.Infow("Pulse ticker reached day limit", logger.FieldDay, snap.Day)
				return
			}
		}
	}
}
