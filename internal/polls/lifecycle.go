package polls

import (
	"fmt"
	"time"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
)

// CheckEditable rejects any mutation of a poll that has left Scheduled.
func CheckEditable(existing *models.Poll) error {
	if existing.Status != models.PollStatusScheduled {
		return apperr.NewForbidden(fmt.Sprintf("Poll '%s' cannot be updated: it has already started or closed (status %s)", existing.ID, existing.Status))
	}
	return nil
}

// Merge builds the update candidate from the stored poll and the request.
// Name, description, end time and options always come from the request; the
// start time only when supplied. Id and owner are kept from the stored poll
// and status is forced back to Scheduled.
func Merge(existing *models.Poll, req *models.PollRequest) *models.Poll {
	start := existing.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	return &models.Poll{
		ID:          existing.ID,
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     existing.OwnerID,
		Status:      models.PollStatusScheduled,
		StartTime:   start,
		EndTime:     req.EndTime,
		Options:     req.Options,
	}
}

// NextStatus returns the status p should have at now. Closed is terminal.
func NextStatus(p *models.Poll, now time.Time) models.PollStatus {
	switch p.Status {
	case models.PollStatusClosed:
		return models.PollStatusClosed
	case models.PollStatusScheduled, models.PollStatusActive:
		if !now.Before(p.EndTime) {
			return models.PollStatusClosed
		}
		if !now.Before(p.StartTime) {
			return models.PollStatusActive
		}
	}
	return p.Status
}
