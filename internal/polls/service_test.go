package polls

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"github.com/rankchoice/vote/pkg/metrics"
	"github.com/stretchr/testify/require"
)

// fakeRepo records calls and returns canned results.
type fakeRepo struct {
	loaded    *models.Poll
	loadErr   error
	saveErr   error
	saves     []*models.Poll
	listed    []*models.Poll
	saveErrOn map[string]error
}

func (f *fakeRepo) Load(ctx context.Context, id string) (*models.Poll, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loaded.Clone(), nil
}

func (f *fakeRepo) Save(ctx context.Context, p *models.Poll) (*models.Poll, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if err := f.saveErrOn[p.ID]; err != nil {
		return nil, err
	}
	f.saves = append(f.saves, p.Clone())
	return p.Clone(), nil
}

func (f *fakeRepo) Exists(ctx context.Context, id string) (bool, error) {
	return f.loaded != nil, f.loadErr
}

func (f *fakeRepo) ListByStatus(ctx context.Context, statuses ...models.PollStatus) ([]*models.Poll, error) {
	return f.listed, f.loadErr
}

var errDown = apperr.NewInternal("load poll", errors.New("connection refused"))

func fixedService(repo Repository, now time.Time, id string) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return now }
	s.newID = func() string { return id }
	return s
}

func request(start *time.Time, end time.Time) *models.PollRequest {
	return &models.PollRequest{
		Name:        "test poll",
		Description: "description for test poll",
		OwnerID:     "0b8f1c0e-7d3e-4a8b-9c43-52d0c1f2a001",
		StartTime:   start,
		EndTime:     end,
		Options:     []models.PollOption{{Name: "opt1", Description: "desc1"}, {Name: "opt2", Description: "desc2"}},
	}
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	p := validPoll()

	got, err := NewService(&fakeRepo{loaded: p}).Find(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = NewService(&fakeRepo{}).Find(ctx, p.ID)
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = NewService(&fakeRepo{loadErr: apperr.NewBadInput("load poll", errors.New("bad id"))}).Find(ctx, "x")
	require.Equal(t, apperr.BadInput, apperr.KindOf(err))

	before := testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("poll", "load"))
	_, err = NewService(&fakeRepo{loadErr: errDown}).Find(ctx, p.ID)
	require.Equal(t, apperr.Internal, apperr.KindOf(err))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StoreErrors.WithLabelValues("poll", "load")))
}

func TestCreate_Success(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	id := models.NewID()
	repo := &fakeRepo{}
	before := testutil.ToFloat64(metrics.PollsCreated)

	req := request(&start, start.Add(5*24*time.Hour))
	got, err := fixedService(repo, now, id).Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, id, got)
	require.Len(t, repo.saves, 1)

	saved := repo.saves[0]
	require.Equal(t, &models.Poll{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		Status:      models.PollStatusScheduled,
		StartTime:   start,
		EndTime:     req.EndTime,
		Options:     req.Options,
	}, saved)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.PollsCreated))
}

func TestCreate_DefaultsStartTimeToNow(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	_, err := fixedService(repo, now, models.NewID()).Create(context.Background(), request(nil, now.Add(time.Hour)))
	require.NoError(t, err)
	require.Equal(t, now, repo.saves[0].StartTime)
}

func TestCreate_ValidatesEndTimeBeforeStore(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	_, err := fixedService(repo, now, models.NewID()).Create(context.Background(), request(nil, now))
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
	require.Empty(t, repo.saves, "store must not be touched")
}

func TestCreate_BlankOwnerRejected(t *testing.T) {
	now := time.Now()
	repo := &fakeRepo{}
	req := request(nil, now.Add(time.Hour))
	req.OwnerID = " "
	_, err := fixedService(repo, now, models.NewID()).Create(context.Background(), req)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
	require.Empty(t, repo.saves)
}

func TestCreate_StoreFailures(t *testing.T) {
	now := time.Now()
	req := request(nil, now.Add(time.Hour))

	_, err := fixedService(&fakeRepo{saveErr: errDown}, now, models.NewID()).Create(context.Background(), req)
	require.Equal(t, apperr.Internal, apperr.KindOf(err))

	bad := apperr.NewBadInput("save poll", errors.New("bad"))
	_, err = fixedService(&fakeRepo{saveErr: bad}, now, models.NewID()).Create(context.Background(), req)
	require.Equal(t, apperr.BadInput, apperr.KindOf(err))
}

func TestUpdate_Success(t *testing.T) {
	existing := validPoll()
	existing.Options = nil
	newEnd := existing.EndTime.Add(24 * time.Hour)
	req := &models.PollRequest{
		Name:        "new test poll",
		Description: "new description for test poll",
		OwnerID:     models.NewID(),
		EndTime:     newEnd,
		Options:     []models.PollOption{{Name: "new opt1", Description: "desc1"}, {Name: "new opt2", Description: "desc2"}},
	}
	repo := &fakeRepo{loaded: existing}

	id, err := NewService(repo).Update(context.Background(), existing.ID, req)
	require.NoError(t, err)
	require.Equal(t, existing.ID, id)
	require.Equal(t, []*models.Poll{{
		ID:          existing.ID,
		Name:        "new test poll",
		Description: "new description for test poll",
		OwnerID:     existing.OwnerID,
		Status:      models.PollStatusScheduled,
		StartTime:   existing.StartTime,
		EndTime:     newEnd,
		Options:     req.Options,
	}}, repo.saves)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	_, err := NewService(repo).Update(context.Background(), models.NewID(), request(nil, time.Now().Add(time.Hour)))
	require.Equal(t, apperr.NotFound, apperr.KindOf(err))
	require.Empty(t, repo.saves)
}

func TestUpdate_LoadFailures(t *testing.T) {
	req := request(nil, time.Now().Add(time.Hour))

	_, err := NewService(&fakeRepo{loadErr: errDown}).Update(context.Background(), models.NewID(), req)
	require.Equal(t, apperr.Internal, apperr.KindOf(err))

	_, err = NewService(&fakeRepo{loadErr: apperr.NewBadInput("load poll", errors.New("bad id"))}).Update(context.Background(), "x", req)
	require.Equal(t, apperr.BadInput, apperr.KindOf(err))
}

func TestUpdate_ForbiddenPastScheduled(t *testing.T) {
	for _, st := range []models.PollStatus{models.PollStatusActive, models.PollStatusClosed} {
		existing := validPoll()
		existing.Status = st
		repo := &fakeRepo{loaded: existing}

		// a perfectly valid payload is still refused
		start := existing.StartTime
		_, err := NewService(repo).Update(context.Background(), existing.ID, request(&start, existing.EndTime))
		require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
		require.NotEmpty(t, apperr.MessageOf(err))
		require.Empty(t, repo.saves)

		// and so is an invalid one
		_, err = NewService(repo).Update(context.Background(), existing.ID, &models.PollRequest{})
		require.Equal(t, apperr.Forbidden, apperr.KindOf(err))
	}
}

func TestUpdate_InvalidName(t *testing.T) {
	existing := validPoll()
	repo := &fakeRepo{loaded: existing}
	req := request(nil, existing.EndTime.Add(time.Hour))
	req.Name = ""

	_, err := NewService(repo).Update(context.Background(), existing.ID, req)
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
	require.Empty(t, repo.saves)
}

func TestUpdate_MergedTimeRangeRevalidated(t *testing.T) {
	existing := validPoll()
	repo := &fakeRepo{loaded: existing}
	// omitted start keeps the stored one, which is after this end time
	_, err := NewService(repo).Update(context.Background(), existing.ID, request(nil, existing.StartTime.Add(-time.Hour)))
	require.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestAdvance(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	upcoming := validPoll()
	upcoming.StartTime = now.Add(time.Hour)
	upcoming.EndTime = now.Add(2 * time.Hour)

	started := validPoll()
	started.StartTime = now.Add(-time.Hour)
	started.EndTime = now.Add(time.Hour)

	ended := validPoll()
	ended.Status = models.PollStatusActive
	ended.StartTime = now.Add(-2 * time.Hour)
	ended.EndTime = now.Add(-time.Hour)

	repo := &fakeRepo{listed: []*models.Poll{upcoming, started, ended}}
	got, err := NewService(repo).Advance(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, started.ID, got[0].Poll.ID)
	require.Equal(t, models.PollStatusScheduled, got[0].From)
	require.Equal(t, models.PollStatusActive, got[0].Poll.Status)
	require.Equal(t, ended.ID, got[1].Poll.ID)
	require.Equal(t, models.PollStatusClosed, got[1].Poll.Status)
	require.Len(t, repo.saves, 2)
}

func TestAdvance_ContinuesPastSaveFailure(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	a := validPoll()
	a.StartTime, a.EndTime = now.Add(-2*time.Hour), now.Add(-time.Hour)
	b := validPoll()
	b.StartTime, b.EndTime = now.Add(-2*time.Hour), now.Add(-time.Hour)

	repo := &fakeRepo{listed: []*models.Poll{a, b}, saveErrOn: map[string]error{a.ID: errDown}}
	got, err := NewService(repo).Advance(context.Background(), now)
	require.Error(t, err)
	require.Equal(t, apperr.Internal, apperr.KindOf(err))
	require.Len(t, got, 1)
	require.Equal(t, b.ID, got[0].Poll.ID)
}

func TestAdvance_ListFailure(t *testing.T) {
	_, err := NewService(&fakeRepo{loadErr: errDown}).Advance(context.Background(), time.Now())
	require.Error(t, err)
}
