package polls

import (
	"testing"
	"time"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCheckEditable(t *testing.T) {
	p := validPoll()
	require.NoError(t, CheckEditable(p))

	for _, st := range []models.PollStatus{models.PollStatusActive, models.PollStatusClosed} {
		p.Status = st
		err := CheckEditable(p)
		require.Error(t, err)
		require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
		require.NotEmpty(t, apperr.MessageOf(err))
	}
}

func TestMerge_KeepsStartTimeWhenOmitted(t *testing.T) {
	existing := validPoll()
	newEnd := existing.EndTime.Add(24 * time.Hour)
	req := &models.PollRequest{
		Name:        "new test poll",
		Description: "new description for test poll",
		OwnerID:     models.NewID(),
		EndTime:     newEnd,
		Options:     []models.PollOption{{Name: "new opt1", Description: "desc1"}},
	}

	merged := Merge(existing, req)
	require.Equal(t, existing.ID, merged.ID)
	require.Equal(t, existing.OwnerID, merged.OwnerID, "owner never changes on update")
	require.Equal(t, existing.StartTime, merged.StartTime)
	require.Equal(t, newEnd, merged.EndTime)
	require.Equal(t, "new test poll", merged.Name)
	require.Equal(t, "new description for test poll", merged.Description)
	require.Equal(t, req.Options, merged.Options)
	require.Equal(t, models.PollStatusScheduled, merged.Status)
}

func TestMerge_ReplacesStartTimeWhenSupplied(t *testing.T) {
	existing := validPoll()
	newStart := existing.StartTime.Add(time.Hour)
	merged := Merge(existing, &models.PollRequest{Name: "n", Description: "d", StartTime: &newStart, EndTime: existing.EndTime})
	require.Equal(t, newStart, merged.StartTime)
}

func TestNextStatus(t *testing.T) {
	p := validPoll()
	before := p.StartTime.Add(-time.Minute)
	during := p.StartTime.Add(time.Minute)
	after := p.EndTime

	require.Equal(t, models.PollStatusScheduled, NextStatus(p, before))
	require.Equal(t, models.PollStatusActive, NextStatus(p, p.StartTime))
	require.Equal(t, models.PollStatusActive, NextStatus(p, during))
	require.Equal(t, models.PollStatusClosed, NextStatus(p, after))

	p.Status = models.PollStatusActive
	require.Equal(t, models.PollStatusActive, NextStatus(p, during))
	require.Equal(t, models.PollStatusClosed, NextStatus(p, after.Add(time.Hour)))

	p.Status = models.PollStatusClosed
	require.Equal(t, models.PollStatusClosed, NextStatus(p, before))
}
