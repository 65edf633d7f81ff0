// Package bootstrap wires the stores shared by the API server and the scheduler.
package bootstrap

import (
	"context"
	"time"

	"github.com/rankchoice/vote/internal/config"
	"github.com/rankchoice/vote/internal/database"
	"github.com/rankchoice/vote/internal/polls"
	"github.com/rankchoice/vote/internal/voters"
	"github.com/rankchoice/vote/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores holds the repositories selected for the current configuration.
type Stores struct {
	Polls  polls.Repository
	Voters voters.Repository
	Redis  *redis.Client
	Mongo  *mongo.Client

	// Durable is false when the in-memory repositories are in use.
	Durable bool
}

// Open connects to MongoDB and Redis as configured. Without a Mongo URI, or
// when Mongo cannot be reached, in-memory repositories are used. Redis is
// optional: when reachable it fronts the poll repository with a cache.
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	log := logger.Named("bootstrap")
	s := &Stores{}

	if addr := cfg.Redis.Addr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = client.Close()
		} else {
			log.Infof("connected to Redis: %s", addr)
			s.Redis = client
		}
	}

	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts, time.Second)
		if err != nil {
			log.Warnf("%v; using memory-backed repositories", err)
		} else {
			db := client.Database(cfg.MongoDB.Database)
			pr, err := polls.NewMongoRepository(ctx, db.Collection("polls"))
			if err != nil {
				_ = client.Disconnect(context.Background())
				return nil, err
			}
			vr, err := voters.NewMongoRepository(ctx, db.Collection("voters"))
			if err != nil {
				_ = client.Disconnect(context.Background())
				return nil, err
			}
			s.Mongo, s.Polls, s.Voters, s.Durable = client, pr, vr, true
			log.Infof("using MongoDB database %q", cfg.MongoDB.Database)
		}
	}
	if s.Polls == nil {
		s.Polls, s.Voters = polls.NewMemoryRepository(), voters.NewMemoryRepository()
	}
	if s.Redis != nil {
		s.Polls = polls.NewCachedRepository(s.Polls, s.Redis, cfg.Redis.PollTTL)
	}
	return s, nil
}

// Ping reports whether MongoDB is reachable. Memory stores are always ready.
func (s *Stores) Ping(ctx context.Context) error {
	if s.Mongo == nil {
		return nil
	}
	return s.Mongo.Ping(ctx, nil)
}

// PingRedis reports whether Redis is reachable.
func (s *Stores) PingRedis(ctx context.Context) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Ping(ctx).Err()
}

// Close releases the connections opened by Open.
func (s *Stores) Close(ctx context.Context) {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.Mongo != nil {
		_ = s.Mongo.Disconnect(ctx)
	}
}
