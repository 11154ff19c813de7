package repository

import (
	"context"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
)

// PostRepository persists the Post aggregate.
//
// Engagement mutations (likes, comments) are expressed as single conditional
// store operations rather than fetch-mutate-save, so that concurrent
// requests against the same post cannot lose updates. Implementations must
// keep likesCount equal to the liked-by set cardinality within each
// operation.
type PostRepository interface {
	Insert(ctx context.Context, p *entity.Post) error
	FindByID(ctx context.Context, id string) (*entity.Post, error)
	// FindByAuthor and FindAll return posts newest-first.
	FindByAuthor(ctx context.Context, authorID string) ([]entity.Post, error)
	FindAll(ctx context.Context) ([]entity.Post, error)
	UpdateContent(ctx context.Context, id, content string) (*entity.Post, error)
	DeleteByID(ctx context.Context, id string) error

	// AddLike inserts userID into the liked-by set and bumps the counter as
	// one atomic operation. The returned bool is false when the user had
	// already liked the post (no state change).
	AddLike(ctx context.Context, id, userID string) (*entity.Post, bool, error)
	// RemoveLike is symmetric; false means the user was not a liker.
	RemoveLike(ctx context.Context, id, userID string) (*entity.Post, bool, error)
	// AddComment appends the comment atomically.
	AddComment(ctx context.Context, id string, c entity.Comment) (*entity.Post, error)
}
