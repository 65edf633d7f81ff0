package polls

import (
	"context"
	"errors"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines persistence operations for polls.
// Load returns (nil, nil) when the poll does not exist.
type Repository interface {
	Load(ctx context.Context, id string) (*models.Poll, error)
	Save(ctx context.Context, p *models.Poll) (*models.Poll, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByStatus(ctx context.Context, statuses ...models.PollStatus) ([]*models.Poll, error)
}

// MongoRepository implements Repository on a Mongo collection keyed by _id.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository wraps col and ensures the status index used by the scheduler sweep.
func NewMongoRepository(ctx context.Context, col *mongo.Collection) (*MongoRepository, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "status", Value: 1}, {Key: "endTime", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, apperr.NewInternal("create poll status index", err)
	}
	return &MongoRepository{col: col}, nil
}

func (r *MongoRepository) Load(ctx context.Context, id string) (*models.Poll, error) {
	if err := models.ValidateID(id); err != nil {
		return nil, apperr.NewBadInput("load poll", err)
	}
	var p models.Poll
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.NewInternal("load poll", err)
	}
	return &p, nil
}

func (r *MongoRepository) Save(ctx context.Context, p *models.Poll) (*models.Poll, error) {
	if err := models.ValidateID(p.ID); err != nil {
		return nil, apperr.NewBadInput("save poll", err)
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return nil, apperr.NewInternal("save poll", err)
	}
	return p, nil
}

func (r *MongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	if err := models.ValidateID(id); err != nil {
		return false, apperr.NewBadInput("check poll", err)
	}
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, apperr.NewInternal("check poll", err)
	}
	return n > 0, nil
}

func (r *MongoRepository) ListByStatus(ctx context.Context, statuses ...models.PollStatus) ([]*models.Poll, error) {
	cur, err := r.col.Find(ctx, bson.M{"status": bson.M{"$in": statuses}})
	if err != nil {
		return nil, apperr.NewInternal("list polls", err)
	}
	defer cur.Close(ctx)
	out := []*models.Poll{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.NewInternal("list polls", err)
	}
	return out, nil
}
