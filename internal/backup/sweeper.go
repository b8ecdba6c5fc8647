package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// sweepParser accepts 5-field cron expressions plus descriptors like @daily.
var sweepParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Sweeper prunes old backups on a cron schedule.
type Sweeper struct {
	Guard     *Guard
	Schedule  string
	Retention time.Duration
}

// Run blocks until ctx is cancelled, pruning on each scheduled fire. A first
// sweep runs immediately so a long-idle machine catches up on startup.
func (s *Sweeper) Run(ctx context.Context) error {
	sched, err := sweepParser.Parse(s.Schedule)
	if err != nil {
		return fmt.Errorf("backup: parse sweep schedule %q: %w", s.Schedule, err)
	}

	s.sweep()
	for {
		next := sched.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	removed, err := s.Guard.Prune(s.Retention)
	if err != nil {
		log.WithError(err).Warn("backup sweep failed")
		return
	}
	if removed > 0 {
		log.WithField("removed", removed).Info("pruned old backups")
	}
}
