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

// PostRepository stores the Post aggregate in a single collection.
//
// Like/unlike/comment are issued as conditional FindOneAndUpdate calls so
// that the liked-by set and the counter always move together; two racing
// likes from the same user can never double-increment because the filter
// excludes documents that already contain the user.
type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection("posts")}
}

func (r *PostRepository) Insert(ctx context.Context, p *entity.Post) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*entity.Post, error) {
	var p entity.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) FindByAuthor(ctx context.Context, authorID string) ([]entity.Post, error) {
	return r.find(ctx, bson.M{"authorId": authorID})
}

func (r *PostRepository) FindAll(ctx context.Context) ([]entity.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]entity.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	posts := []entity.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) UpdateContent(ctx context.Context, id, content string) (*entity.Post, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"content": content}},
	)
}

func (r *PostRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) AddLike(ctx context.Context, id, userID string) (*entity.Post, bool, error) {
	p, err := r.findOneAndUpdate(ctx,
		bson.M{"_id": id, "likedBy": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"likedBy": userID},
			"$inc":      bson.M{"likesCount": 1},
		},
	)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, repository.ErrPostNotFound) {
		return nil, false, err
	}
	// Filter miss: the post is gone or the user already likes it.
	p, err = r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return p, false, nil
}

func (r *PostRepository) RemoveLike(ctx context.Context, id, userID string) (*entity.Post, bool, error) {
	p, err := r.findOneAndUpdate(ctx,
		bson.M{"_id": id, "likedBy": userID},
		bson.M{
			"$pull": bson.M{"likedBy": userID},
			"$inc":  bson.M{"likesCount": -1},
		},
	)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, repository.ErrPostNotFound) {
		return nil, false, err
	}
	p, err = r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return p, false, nil
}

func (r *PostRepository) AddComment(ctx context.Context, id string, c entity.Comment) (*entity.Post, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": c}},
	)
}

func (r *PostRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*entity.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p entity.Post
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
