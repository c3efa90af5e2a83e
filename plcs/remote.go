package plcs

import (
	"context"
	"time"

	"github.com/reusee/ladder/cells"
	"github.com/reusee/ladder/remotes"
	"golang.org/x/time/rate"
)

// Remote mirrors objects of a peer program. Its proxies stay empty until the
// first init reply; a failed exchange disables it until CheckRemotes succeeds.
type Remote struct {
	Network string
	Addr    string
	Refresh time.Duration

	client      *remotes.Client
	limiter     *rate.Limiter
	disabled    bool
	initialized bool
	lastScan    uint64
	// proxies in creation order
	proxies []Handle

	connected *cells.Cell
}

func newRemote(env Env, network, addr string, refresh time.Duration) *Remote {
	if refresh <= 0 {
		refresh = env.RemoteRefresh
	}
	if refresh <= 0 {
		refresh = time.Second
	}
	return &Remote{
		Network: network,
		Addr:    addr,
		Refresh: refresh,
		client: &remotes.Client{
			Dial:    env.Dial,
			Network: network,
			Addr:    addr,
			Timeout: env.RemoteTimeout,
			Retries: env.RemoteRetries,
		},
		limiter:   rate.NewLimiter(rate.Every(refresh), 1),
		connected: cells.New(cells.KindBool),
	}
}

func (r *Remote) Disabled() bool {
	return r.disabled
}

// RemoteChild is a local proxy for one object of the peer.
type RemoteChild struct {
	Parent   Handle
	RemoteID string

	shadow *cells.Cell
}

func (p *Program) remoteOf(o *Object) *Remote {
	if o.Kind == KindRemoteChild {
		return p.objects[o.remoteChild.Parent].remote
	}
	return o.remote
}

func (p *Program) proxyIDs(r *Remote) []string {
	ids := make([]string, 0, len(r.proxies))
	for _, h := range r.proxies {
		ids = append(ids, p.objects[h].remoteChild.RemoteID)
	}
	return ids
}

// refreshRemote runs at most one exchange per scan, further limited to the
// accessor's refresh period.
func (p *Program) refreshRemote(ctx context.Context, o *Object) {
	r := o.remote
	if r.disabled || r.lastScan == p.scans {
		return
	}
	r.lastScan = p.scans
	if len(r.proxies) == 0 {
		return
	}
	if !r.limiter.AllowN(p.env.Clock.Now(), 1) {
		return
	}
	if err := p.exchangeRemote(ctx, o); err != nil {
		r.disabled = true
		r.connected.SetBool(false)
		r.client.Close()
		p.env.Logger.WarnContext(ctx, "remote disabled",
			"remote", o.ID,
			"addr", r.Addr,
			"error", err,
		)
	}
}

func (p *Program) exchangeRemote(ctx context.Context, o *Object) error {
	r := o.remote
	ids := p.proxyIDs(r)

	init := !r.initialized
	var records []remotes.Record
	var err error
	if init {
		records, err = r.client.Init(ctx, ids)
	} else {
		records, err = r.client.Update(ctx, ids)
	}
	if err != nil {
		return err
	}

	byID := make(map[string]remotes.Record, len(records))
	for _, record := range records {
		byID[record.ID] = record
	}
	for _, h := range r.proxies {
		child := p.objects[h].remoteChild
		record, ok := byID[child.RemoteID]
		if !ok {
			continue
		}
		if child.shadow == nil {
			if !init {
				continue
			}
			child.shadow = cells.New(record.Kind)
		}
		child.shadow.SetString(record.Value)
	}

	r.initialized = true
	r.connected.SetBool(true)
	return nil
}

// CheckRemotes retries every disabled accessor once and re-enables those that
// answer an init request.
func (p *Program) CheckRemotes(ctx context.Context) {
	for _, o := range p.objects {
		if o.Kind != KindRemote && o.Kind != KindCAN {
			continue
		}
		r := o.remote
		if !r.disabled {
			continue
		}
		r.initialized = false
		if err := p.exchangeRemote(ctx, o); err != nil {
			r.client.Close()
			p.env.Logger.DebugContext(ctx, "remote still down",
				"remote", o.ID,
				"error", err,
			)
			continue
		}
		r.disabled = false
		p.env.Logger.InfoContext(ctx, "remote enabled",
			"remote", o.ID,
		)
	}
}
