package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/connect-inmobiliaria/crm-service/internal/service"
	"github.com/connect-inmobiliaria/crm-service/internal/session"
)

// BadgePoller refreshes the new-lead badge on every unlocked session at a
// fixed cadence. Ticks run sequentially on a single goroutine, so a slow
// count never stacks overlapping queries.
type BadgePoller struct {
	leads    *service.LeadService
	sessions *session.Manager
	interval time.Duration
	logger   *zap.Logger
}

// NewBadgePoller constructs the poller.
func NewBadgePoller(leads *service.LeadService, sessions *session.Manager, interval time.Duration, logger *zap.Logger) *BadgePoller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &BadgePoller{leads: leads, sessions: sessions, interval: interval, logger: logger}
}

// Run polls until the context is cancelled. Intended to run as a goroutine.
func (p *BadgePoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("badge poller started", zap.Duration("interval", p.interval))
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("badge poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick skips the count entirely while no session is unlocked; the badge only
// renders inside the back office.
func (p *BadgePoller) tick(ctx context.Context) {
	if !p.sessions.HasUnlocked() {
		return
	}
	count := p.leads.NewLeadCount(ctx)
	p.sessions.SetBadgeForUnlocked(count)
}
