package polls

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rankchoice/vote/internal/models"
	"github.com/rankchoice/vote/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CachedRepository is a Redis read-through cache in front of another Repository.
// Polls are stored as JSON under "<prefix><id>". Save writes through to the
// inner store and then drops the cached copy. Redis failures never fail a
// request; they fall back to the inner store. A fill can race a concurrent
// Save and leave a stale copy for up to ttl, so status checks use LoadFresh.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *logger.Logger
}

// NewCachedRepository wraps inner. A non-positive ttl defaults to one minute.
func NewCachedRepository(inner Repository, client *redis.Client, ttl time.Duration) *CachedRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedRepository{inner: inner, client: client, ttl: ttl, prefix: "poll:", log: logger.Named("poll-cache")}
}

func (c *CachedRepository) key(id string) string {
	return c.prefix + id
}

func (c *CachedRepository) Load(ctx context.Context, id string) (*models.Poll, error) {
	b, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var p models.Poll
		if jerr := json.Unmarshal(b, &p); jerr == nil {
			return &p, nil
		}
		c.log.Warnf("dropping undecodable cache entry for poll '%s'", id)
		_ = c.client.Del(ctx, c.key(id)).Err()
	case !errors.Is(err, redis.Nil):
		c.log.Warnf("cache read for poll '%s' failed: %v", id, err)
	}

	p, err := c.inner.Load(ctx, id)
	if err != nil || p == nil {
		return p, err
	}
	if b, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, c.key(id), b, c.ttl).Err(); err != nil {
			c.log.Warnf("cache fill for poll '%s' failed: %v", id, err)
		}
	}
	return p, nil
}

// LoadFresh reads the inner store and leaves the cache untouched.
func (c *CachedRepository) LoadFresh(ctx context.Context, id string) (*models.Poll, error) {
	return c.inner.Load(ctx, id)
}

func (c *CachedRepository) Save(ctx context.Context, p *models.Poll) (*models.Poll, error) {
	saved, err := c.inner.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := c.client.Del(ctx, c.key(p.ID)).Err(); err != nil {
		c.log.Warnf("cache invalidation for poll '%s' failed: %v", p.ID, err)
	}
	return saved, nil
}

func (c *CachedRepository) Exists(ctx context.Context, id string) (bool, error) {
	if n, err := c.client.Exists(ctx, c.key(id)).Result(); err == nil && n > 0 {
		return true, nil
	}
	return c.inner.Exists(ctx, id)
}

// ListByStatus always reads the inner store; sweeps must see current state.
func (c *CachedRepository) ListByStatus(ctx context.Context, statuses ...models.PollStatus) ([]*models.Poll, error) {
	return c.inner.ListByStatus(ctx, statuses...)
}
