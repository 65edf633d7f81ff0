package polls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"github.com/rankchoice/vote/pkg/logger"
	"github.com/rankchoice/vote/pkg/metrics"
)

// Service implements the poll request handling on top of a Repository.
// Load and Save are not transactional: two concurrent updates of the same
// poll race and the last Save wins.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
	log   *logger.Logger
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now, newID: models.NewID, log: logger.Named("polls")}
}

// Transition records one status change applied by Advance.
type Transition struct {
	Poll *models.Poll
	From models.PollStatus
}

// freshLoader is implemented by repositories that sit in front of a read cache.
// LoadFresh always reads the backing store.
type freshLoader interface {
	LoadFresh(ctx context.Context, id string) (*models.Poll, error)
}

// Find returns the stored poll or a NotFound error.
func (s *Service) Find(ctx context.Context, id string) (*models.Poll, error) {
	return s.find(ctx, id, s.repo.Load)
}

// findFresh is Find without any read cache. The lifecycle guard must see the
// status the scheduler last saved.
func (s *Service) findFresh(ctx context.Context, id string) (*models.Poll, error) {
	if fl, ok := s.repo.(freshLoader); ok {
		return s.find(ctx, id, fl.LoadFresh)
	}
	return s.find(ctx, id, s.repo.Load)
}

func (s *Service) find(ctx context.Context, id string, load func(context.Context, string) (*models.Poll, error)) (*models.Poll, error) {
	p, err := load(ctx, id)
	if err != nil {
		s.logStoreError(err, "load", "finding", id)
		return nil, err
	}
	if p == nil {
		return nil, apperr.NewNotFound(fmt.Sprintf("Poll '%s' not found", id))
	}
	return p, nil
}

// Exists reports whether a poll with id is stored.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.logStoreError(err, "exists", "checking", id)
	}
	return ok, err
}

// Create persists a new Scheduled poll and returns its id. The start time
// defaults to now and the owner is taken from the request.
func (s *Service) Create(ctx context.Context, req *models.PollRequest) (string, error) {
	start := s.now()
	if req.StartTime != nil {
		start = *req.StartTime
	}
	p := &models.Poll{
		ID:          s.newID(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Status:      models.PollStatusScheduled,
		StartTime:   start,
		EndTime:     req.EndTime,
		Options:     req.Options,
	}
	if err := Validate(p); err != nil {
		metrics.PollUpdatesRejected.WithLabelValues("validation").Inc()
		s.log.Warnf("Bad request to save Poll '%s': %v", req.Name, err)
		return "", err
	}
	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		s.logStoreError(err, "save", "saving", req.Name)
		return "", err
	}
	metrics.PollsCreated.Inc()
	s.log.Infof("created poll '%s' (%s)", saved.ID, saved.Name)
	return saved.ID, nil
}

// Update applies req to a Scheduled poll and returns its id.
func (s *Service) Update(ctx context.Context, id string, req *models.PollRequest) (string, error) {
	existing, err := s.findFresh(ctx, id)
	if err != nil {
		return "", err
	}
	if err := CheckEditable(existing); err != nil {
		metrics.PollUpdatesRejected.WithLabelValues("forbidden").Inc()
		s.log.Warnf("%v", err)
		return "", err
	}
	merged := Merge(existing, req)
	if err := Validate(merged); err != nil {
		metrics.PollUpdatesRejected.WithLabelValues("validation").Inc()
		s.log.Warnf("Bad request to update Poll '%s': %v", id, err)
		return "", err
	}
	saved, err := s.repo.Save(ctx, merged)
	if err != nil {
		s.logStoreError(err, "save", "updating", id)
		return "", err
	}
	return saved.ID, nil
}

// Advance moves every open poll to the status it should have at now and
// persists each change. Save failures are collected; the sweep continues.
func (s *Service) Advance(ctx context.Context, now time.Time) ([]Transition, error) {
	open, err := s.repo.ListByStatus(ctx, models.PollStatusScheduled, models.PollStatusActive)
	if err != nil {
		s.logStoreError(err, "list", "sweeping", "*")
		return nil, err
	}
	var (
		out  []Transition
		errs []error
	)
	for _, p := range open {
		next := NextStatus(p, now)
		if next == p.Status {
			continue
		}
		updated := p.Clone()
		updated.Status = next
		saved, err := s.repo.Save(ctx, updated)
		if err != nil {
			s.logStoreError(err, "save", "advancing", p.ID)
			errs = append(errs, err)
			continue
		}
		metrics.StatusTransitions.WithLabelValues(string(next)).Inc()
		s.log.Infof("poll '%s' moved %s -> %s", p.ID, p.Status, next)
		out = append(out, Transition{Poll: saved, From: p.Status})
	}
	return out, errors.Join(errs...)
}

func (s *Service) logStoreError(err error, op, action, subject string) {
	if apperr.KindOf(err) == apperr.BadInput {
		s.log.Warnf("Bad request %s Poll '%s': %v", action, subject, err)
		return
	}
	metrics.StoreErrors.WithLabelValues("poll", op).Inc()
	s.log.Errorf("Failed to access Poll '%s': %v", subject, err)
}
