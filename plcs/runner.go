package plcs

import (
	"context"
	"time"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/clocks"
	"github.com/reusee/ladder/logs"
	"github.com/reusee/ladder/remotes"
	"github.com/reusee/ladder/syncs"
	"golang.org/x/time/rate"
)

// Runner drives the scan loop of one program. Control operations run
// between scans.
type Runner struct {
	program *Program
	sem     syncs.Semaphore
	period  time.Duration
	recheck *rate.Limiter
	logger  logs.Logger

	nistPeriod time.Duration
	syncClock  func(ctx context.Context) (time.Duration, error)
}

var _ remotes.Source = new(Runner)

func NewRunner(program *Program, period, recheck time.Duration, logger logs.Logger) *Runner {
	if period <= 0 {
		period = 10 * time.Millisecond
	}
	if recheck <= 0 {
		recheck = 30 * time.Second
	}
	return &Runner{
		program: program,
		sem:     syncs.NewSemaphore(1),
		period:  period,
		recheck: rate.NewLimiter(rate.Every(recheck), 1),
		logger:  logger,
	}
}

// SyncClock corrects the wall clock every period with a daytime server.
func (r *Runner) SyncClock(system *clocks.System, dial clocks.DialContext, addr string, period time.Duration) {
	r.nistPeriod = period
	r.syncClock = func(ctx context.Context) (time.Duration, error) {
		return system.Sync(ctx, dial, addr)
	}
}

// Do runs fn with exclusive access to the program.
func (r *Runner) Do(ctx context.Context, fn func(*Program) error) error {
	if err := r.sem.AcquireContext(ctx); err != nil {
		return err
	}
	defer r.sem.Release()
	return fn(r.program)
}

// Step runs one scan and retries disabled remotes when due.
func (r *Runner) Step(ctx context.Context) error {
	return r.Do(ctx, func(p *Program) error {
		p.Scan(ctx)
		if r.recheck.AllowN(p.env.Clock.Now(), 1) {
			p.CheckRemotes(ctx)
		}
		return nil
	})
}

// Run scans every period until ctx is done. Limit bounds the number of
// scans; zero runs forever.
func (r *Runner) Run(ctx context.Context, limit uint64) error {
	if r.syncClock != nil && r.nistPeriod > 0 {
		syncCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			r.syncClockLoop(syncCtx)
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()
	for n := uint64(0); limit == 0 || n < limit; n++ {
		if err := r.Step(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (r *Runner) syncClockLoop(ctx context.Context) {
	ticker := time.NewTicker(r.nistPeriod)
	defer ticker.Stop()
	for {
		timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		offset, err := r.syncClock(timeoutCtx)
		cancel()
		if err != nil {
			r.logger.WarnContext(ctx, "clock sync failed", "error", err)
		} else {
			r.logger.DebugContext(ctx, "clock synced", "offset", offset)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RemoteRecord serves peers between scans.
func (r *Runner) RemoteRecord(id string) (kind cells.Kind, value string, ok bool) {
	r.Do(context.Background(), func(p *Program) error {
		kind, value, ok = p.RemoteRecord(id)
		return nil
	})
	return
}

func (r *Runner) Status(ctx context.Context) (ret []ObjectStatus, err error) {
	err = r.Do(ctx, func(p *Program) error {
		ret = p.Status()
		return nil
	})
	return
}
