package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	"github.com/sakilait22310750/skillsync/internal/domain/repository"
)

type LearningPlanRepository struct {
	coll *mongo.Collection
}

func NewLearningPlanRepository(db *mongo.Database) *LearningPlanRepository {
	return &LearningPlanRepository{coll: db.Collection("learningplans")}
}

func (r *LearningPlanRepository) Insert(ctx context.Context, p *entity.LearningPlan) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *LearningPlanRepository) FindByID(ctx context.Context, id string) (*entity.LearningPlan, error) {
	var p entity.LearningPlan
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *LearningPlanRepository) FindAll(ctx context.Context) ([]entity.LearningPlan, error) {
	return r.find(ctx, bson.M{})
}

func (r *LearningPlanRepository) FindByUser(ctx context.Context, userID string) ([]entity.LearningPlan, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *LearningPlanRepository) find(ctx context.Context, filter bson.M) ([]entity.LearningPlan, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	plans := []entity.LearningPlan{}
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *LearningPlanRepository) Update(ctx context.Context, p *entity.LearningPlan) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrPlanNotFound
	}
	return nil
}

func (r *LearningPlanRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrPlanNotFound
	}
	return nil
}

var _ repository.LearningPlanRepository = (*LearningPlanRepository)(nil)
