// Package scheduler advances poll statuses on a fixed interval and archives
// polls once they close.
package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rankchoice/vote/internal/models"
	"github.com/rankchoice/vote/internal/polls"
	"github.com/rankchoice/vote/internal/storage"
	"github.com/rankchoice/vote/pkg/logger"
)

// Archiver stores a closed poll snapshot under key.
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte) error
}

// PollAdvancer applies due status transitions.
type PollAdvancer interface {
	Advance(ctx context.Context, now time.Time) ([]polls.Transition, error)
}

// VoterLister returns the voters registered for a poll.
type VoterLister interface {
	ListByPoll(ctx context.Context, pollID string) ([]*models.Voter, error)
}

// Snapshot is the archived form of a closed poll.
type Snapshot struct {
	Poll     *models.Poll    `json:"poll"`
	Voters   []*models.Voter `json:"voters"`
	ClosedAt time.Time       `json:"closedAt"`
}

type Scheduler struct {
	polls    PollAdvancer
	voters   VoterLister
	archiver Archiver
	interval time.Duration
	now      func() time.Time
	log      *logger.Logger
}

// New builds a Scheduler. A nil archiver disables archiving.
func New(p PollAdvancer, v VoterLister, a Archiver, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Scheduler{
		polls:    p,
		voters:   v,
		archiver: a,
		interval: interval,
		now:      time.Now,
		log:      logger.Named("scheduler"),
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Infof("starting, interval %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Infof("stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	if _, err := s.Tick(ctx, s.now()); err != nil {
		s.log.Errorf("sweep: %v", err)
	}
}

// Tick runs one sweep at now and returns the applied transitions. Archive
// failures are reported but do not undo the transition.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) ([]polls.Transition, error) {
	moved, err := s.polls.Advance(ctx, now)
	errs := []error{err}
	for _, t := range moved {
		if t.Poll.Status != models.PollStatusClosed || s.archiver == nil {
			continue
		}
		if aerr := s.archive(ctx, t.Poll, now); aerr != nil {
			s.log.Errorf("archiving poll '%s': %v", t.Poll.ID, aerr)
			errs = append(errs, aerr)
		}
	}
	return moved, errors.Join(errs...)
}

func (s *Scheduler) archive(ctx context.Context, p *models.Poll, now time.Time) error {
	voters, err := s.voters.ListByPoll(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("list voters: %w", err)
	}
	if voters == nil {
		voters = []*models.Voter{}
	}
	data, err := json.Marshal(Snapshot{Poll: p, Voters: voters, ClosedAt: now.UTC()})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.archiver.Archive(ctx, storage.ArchiveKey(p.ID), data); err != nil {
		return err
	}
	s.log.Infof("archived poll '%s' with %d voters", p.ID, len(voters))
	return nil
}
