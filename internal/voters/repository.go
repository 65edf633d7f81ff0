package voters

import (
	"context"
	"errors"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines persistence operations for voters.
// Load returns (nil, nil) when the voter does not exist.
type Repository interface {
	Load(ctx context.Context, id string) (*models.Voter, error)
	Save(ctx context.Context, v *models.Voter) (*models.Voter, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListByPoll(ctx context.Context, pollID string) ([]*models.Voter, error)
}

// MongoRepository implements Repository using a Mongo collection
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository wraps col and ensures an index on pollId.
func NewMongoRepository(ctx context.Context, col *mongo.Collection) (*MongoRepository, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "pollId", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, apperr.NewInternal("create voter poll index", err)
	}
	return &MongoRepository{col: col}, nil
}

func (r *MongoRepository) Load(ctx context.Context, id string) (*models.Voter, error) {
	if err := models.ValidateID(id); err != nil {
		return nil, apperr.NewBadInput("load voter", err)
	}
	var v models.Voter
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperr.NewInternal("load voter", err)
	}
	if v.Selections == nil {
		v.Selections = []models.VoterSelection{}
	}
	return &v, nil
}

func (r *MongoRepository) Save(ctx context.Context, v *models.Voter) (*models.Voter, error) {
	if err := models.ValidateID(v.ID); err != nil {
		return nil, apperr.NewBadInput("save voter", err)
	}
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v, options.Replace().SetUpsert(true)); err != nil {
		return nil, apperr.NewInternal("save voter", err)
	}
	return v, nil
}

func (r *MongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	if err := models.ValidateID(id); err != nil {
		return false, apperr.NewBadInput("check voter", err)
	}
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, apperr.NewInternal("check voter", err)
	}
	return n > 0, nil
}

func (r *MongoRepository) ListByPoll(ctx context.Context, pollID string) ([]*models.Voter, error) {
	if err := models.ValidateID(pollID); err != nil {
		return nil, apperr.NewBadInput("list voters", err)
	}
	cur, err := r.col.Find(ctx, bson.M{"pollId": pollID})
	if err != nil {
		return nil, apperr.NewInternal("list voters", err)
	}
	defer cur.Close(ctx)
	out := []*models.Voter{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.NewInternal("list voters", err)
	}
	return out, nil
}
