package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	log "github.com/sirupsen/logrus"
)

// RecapScheduler periodically sweeps all groups and generates the daily
// recap for any day that has crossed into revealed without a cached summary
// yet. Reveal is a function of the clock, not only of writes, so the sweep
// runs on a timer rather than on submission events.
type RecapScheduler struct {
	groups GroupService
	recaps RecapService
	policy *RevealPolicy
	sched  gocron.Scheduler
}

// NewRecapScheduler creates a new recap scheduler
func NewRecapScheduler(groups GroupService, recaps RecapService, policy *RevealPolicy) *RecapScheduler {
	return &RecapScheduler{
		groups: groups,
		recaps: recaps,
		policy: policy,
	}
}

// Start begins the sweep loop
func (s *RecapScheduler) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			s.sweep(context.Background(), time.Now())
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	s.sched = sched
	return nil
}

// Stop shuts the sweep loop down
func (s *RecapScheduler) Stop() error {
	if s.sched == nil {
		return nil
	}
	return s.sched.Shutdown()
}

// sweep generates and attaches recaps for today's newly revealed boards
func (s *RecapScheduler) sweep(ctx context.Context, now time.Time) {
	groups, err := s.groups.Groups(ctx)
	if err != nil {
		log.WithError(err).Error("Recap sweep failed to list groups")
		return
	}

	day := DayKey(now, s.policy.Location())

	for _, group := range groups {
		board, err := s.groups.GetBoard(ctx, group.Slug, day, now)
		if err != nil {
			log.WithError(err).WithField("group", group.Slug).Error("Recap sweep failed to load board")
			continue
		}
		if !board.Revealed || board.Summary != "" || len(board.Entries) == 0 {
			continue
		}

		recap, err := s.recaps.GenerateDailyRecap(ctx, group.Name, day, board.Entries)
		if err != nil {
			// Not retried here; the next sweep or a user-triggered
			// regeneration picks it up
			if !errors.Is(err, ErrRecapUnavailable) {
				log.WithError(err).WithField("group", group.Slug).Error("Recap generation failed")
			}
			continue
		}

		if err := s.groups.AttachSummary(ctx, group.Slug, day, recap); err != nil {
			log.WithError(err).WithField("group", group.Slug).Error("Failed to attach recap")
			continue
		}

		log.WithFields(log.Fields{
			"group": group.Slug,
			"day":   day,
		}).Info("Daily recap attached")
	}
}
