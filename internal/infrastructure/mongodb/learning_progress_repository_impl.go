package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	"github.com/sakilait22310750/skillsync/internal/domain/repository"
)

type LearningProgressRepository struct {
	coll *mongo.Collection
}

func NewLearningProgressRepository(db *mongo.Database) *LearningProgressRepository {
	return &LearningProgressRepository{coll: db.Collection("learning_progress")}
}

func (r *LearningProgressRepository) Insert(ctx context.Context, p *entity.LearningProgress) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *LearningProgressRepository) FindByID(ctx context.Context, id string) (*entity.LearningProgress, error) {
	var p entity.LearningProgress
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LearningProgressRepository) FindByUser(ctx context.Context, userID string) ([]entity.LearningProgress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	records := []entity.LearningProgress{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *LearningProgressRepository) Update(ctx context.Context, p *entity.LearningProgress) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrProgressNotFound
	}
	return nil
}

func (r *LearningProgressRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrProgressNotFound
	}
	return nil
}

var _ repository.LearningProgressRepository = (*LearningProgressRepository)(nil)
