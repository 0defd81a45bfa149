package session

import (
	"context"
	"sync"
	"time"
)

// Poller re-fetches one project's status on a fixed cadence and feeds each
// result back into its owning session. A session holds at most one poller,
// and each poller belongs to exactly one session epoch.
type Poller struct {
	session   *Session
	transport Transport
	projectID string
	epoch     int
	interval  time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
	done     chan struct{}
}

func newPoller(s *Session, transport Transport, projectID string, epoch int, interval time.Duration) *Poller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Poller{
		session:   s,
		transport: transport,
		projectID: projectID,
		epoch:     epoch,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Start launches the poll loop.
func (p *Poller) Start() {
	go p.run()
}

func (p *Poller) run() {
	defer close(p.done)
	defer p.cancel()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			// The fetch runs inline, so a tick firing while a fetch is
			// still outstanding is dropped by the ticker, never queued.
			status, err := p.transport.FetchStatus(p.ctx, p.projectID)
			if err != nil {
				if p.ctx.Err() != nil {
					return
				}
				p.session.notePollError(p.epoch, err)
				continue
			}
			if !p.session.applyPoll(p.epoch, status) {
				return
			}
		}
	}
}

// Stop cancels the pending timer and any in-flight fetch. Idempotent.
func (p *Poller) Stop() {
	p.stopOnce.Do(p.cancel)
}

// Done is closed once the poll loop has fully exited.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}
