package voters

import (
	"context"
	"fmt"
	"strings"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"github.com/rankchoice/vote/pkg/logger"
	"github.com/rankchoice/vote/pkg/metrics"
)

// Service implements voter registration and ranking updates.
// As with polls, Load/Save pairs are not transactional.
type Service struct {
	repo  Repository
	newID func() string
	log   *logger.Logger
}

func NewService(r Repository) *Service {
	return &Service{repo: r, newID: models.NewID, log: logger.Named("voters")}
}

// Find returns the stored voter or a NotFound error.
func (s *Service) Find(ctx context.Context, id string) (*models.Voter, error) {
	v, err := s.repo.Load(ctx, id)
	if err != nil {
		s.logStoreError(err, "load", fmt.Sprintf("finding Voter '%s'", id))
		return nil, err
	}
	if v == nil {
		return nil, apperr.NewNotFound(fmt.Sprintf("Voter '%s' not found", id))
	}
	return v, nil
}

// Create registers a voter with no selections for pollID and returns its id.
// The poll itself is not looked up.
func (s *Service) Create(ctx context.Context, pollID string) (string, error) {
	if err := models.ValidateID(pollID); err != nil {
		s.log.Warnf("Bad request to save Voter for poll '%s': %v", pollID, err)
		return "", apperr.NewBadInput("create voter", err)
	}
	v := &models.Voter{ID: s.newID(), PollID: pollID, Selections: []models.VoterSelection{}}
	saved, err := s.repo.Save(ctx, v)
	if err != nil {
		s.logStoreError(err, "save", fmt.Sprintf("saving Voter for poll '%s'", pollID))
		return "", err
	}
	metrics.VotersCreated.Inc()
	return saved.ID, nil
}

// UpdateSelections replaces the whole selection list of voter id. The ranks
// are validated before the store is touched; all problems are returned in
// one Validation error.
func (s *Service) UpdateSelections(ctx context.Context, id string, selections []models.VoterSelection) (string, error) {
	if problems := ValidateSelections(selections); len(problems) > 0 {
		metrics.SelectionsRejected.Inc()
		return "", apperr.NewValidation(strings.Join(problems, " "))
	}
	existing, err := s.Find(ctx, id)
	if err != nil {
		return "", err
	}
	if selections == nil {
		selections = []models.VoterSelection{}
	}
	updated := &models.Voter{ID: existing.ID, PollID: existing.PollID, Selections: selections}
	saved, err := s.repo.Save(ctx, updated)
	if err != nil {
		s.logStoreError(err, "save", fmt.Sprintf("updating Voter '%s'", id))
		return "", err
	}
	return saved.ID, nil
}

// ListByPoll returns every voter registered for pollID.
func (s *Service) ListByPoll(ctx context.Context, pollID string) ([]*models.Voter, error) {
	out, err := s.repo.ListByPoll(ctx, pollID)
	if err != nil {
		s.logStoreError(err, "list", fmt.Sprintf("listing Voters of poll '%s'", pollID))
	}
	return out, err
}

func (s *Service) logStoreError(err error, op, what string) {
	if apperr.KindOf(err) == apperr.BadInput {
		s.log.Warnf("Bad request %s: %v", what, err)
		return
	}
	metrics.StoreErrors.WithLabelValues("voter", op).Inc()
	s.log.Errorf("Failed %s: %v", what, err)
}
