package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	repo "github.com/sakilait22310750/skillsync/internal/domain/repository"
	"github.com/sakilait22310750/skillsync/pkg/helpers"
	"github.com/sakilait22310750/skillsync/pkg/mailer"
)

// MediaPathPrefix is the public path posts expose instead of blob ids.
const MediaPathPrefix = "/api/posts/media/"

const (
	feedCacheKey  = "posts:feed"
	postCacheKey  = "posts:view:"
	userCacheKey  = "posts:user:"
	postCacheTTL  = 30 * time.Second
	maxPostImages = 3
)

// MediaUpload is one uploaded file from a multipart request.
type MediaUpload = repo.Upload

// PostService orchestrates authorization, media rules, engagement state and
// response projection for the Post aggregate. It is the sole writer of
// posts. Redis, ES and Events are optional; a nil client disables the
// corresponding side channel.
type PostService struct {
	Posts        repo.PostRepository
	Blobs        repo.BlobStore
	Users        repo.UserRepository
	Redis        *redis.Client
	ES           *elasticsearch.Client
	ESPostsIndex string
	Events       *helpers.RabbitPublisher
	Logger       *logrus.Logger
}

func NewPostService(posts repo.PostRepository, blobs repo.BlobStore, users repo.UserRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, events *helpers.RabbitPublisher, logger *logrus.Logger) *PostService {
	return &PostService{
		Posts:        posts,
		Blobs:        blobs,
		Users:        users,
		Redis:        rdb,
		ES:           es,
		ESPostsIndex: esIndex,
		Events:       events,
		Logger:       logger,
	}
}

// resolveUser maps a token identity (email) onto the stored user.
func (s *PostService) resolveUser(ctx context.Context, identity string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, identity)
	if err != nil {
		return nil, repo.ErrUserNotFound
	}
	return u, nil
}

// CreatePost validates media rules, stores the uploads and persists the
// post. Blobs are written before the post record; if the record insert
// fails the already-stored blobs are left behind for an out-of-band sweep
// rather than rolled back.
func (s *PostService) CreatePost(ctx context.Context, authorIdentity, content string, images []MediaUpload, video *MediaUpload) (*entity.Post, error) {
	author, err := s.resolveUser(ctx, authorIdentity)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 && video != nil {
		return nil, repo.ErrConflictingMedia
	}
	if len(images) > maxPostImages {
		return nil, repo.ErrTooManyImages
	}

	post := &entity.Post{
		AuthorID:  author.ID,
		Content:   content,
		LikedBy:   []string{},
		Comments:  []entity.Comment{},
		CreatedAt: time.Now().UTC(),
	}

	if len(images) > 0 {
		ids, err := s.Blobs.StoreMany(ctx, images, author.ID)
		if err != nil {
			return nil, err
		}
		post.ImageIDs = ids
	}
	if video != nil {
		id, err := s.Blobs.Store(ctx, video.Reader, video.Filename, video.ContentType, author.ID)
		if err != nil {
			return nil, err
		}
		post.VideoID = id
	}

	if err := s.Posts.Insert(ctx, post); err != nil {
		s.Logger.WithError(err).WithField("author_id", author.ID).Error("post insert failed after media upload")
		return nil, err
	}

	s.invalidateCache(ctx, post)
	s.indexPost(ctx, post)
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	if s.Redis != nil {
		var cached entity.Post
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, postCacheKey+id, &cached); ok {
			return &cached, nil
		}
	}
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, s.Redis, postCacheKey+id, p, postCacheTTL)
	}
	return p, nil
}

func (s *PostService) ListAll(ctx context.Context) ([]entity.Post, error) {
	if s.Redis != nil {
		var cached []entity.Post
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, feedCacheKey, &cached); ok {
			return cached, nil
		}
	}
	posts, err := s.Posts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, s.Redis, feedCacheKey, posts, postCacheTTL)
	}
	return posts, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]entity.Post, error) {
	if s.Redis != nil {
		var cached []entity.Post
		if ok, _ := helpers.RedisGetJSON(ctx, s.Redis, userCacheKey+authorID, &cached); ok {
			return cached, nil
		}
	}
	posts, err := s.Posts.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, s.Redis, userCacheKey+authorID, posts, postCacheTTL)
	}
	return posts, nil
}

// ListMine resolves the caller and returns their posts.
func (s *PostService) ListMine(ctx context.Context, identity string) ([]entity.Post, error) {
	u, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.ListByAuthor(ctx, u.ID)
}

// UpdateContent edits the text body. Only the author may edit; media and
// engagement state are untouched by this path.
func (s *PostService) UpdateContent(ctx context.Context, id, callerIdentity, content string) (*entity.Post, error) {
	caller, err := s.resolveUser(ctx, callerIdentity)
	if err != nil {
		return nil, err
	}
	post, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != caller.ID {
		return nil, repo.ErrForbidden
	}
	updated, err := s.Posts.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, updated)
	s.indexPost(ctx, updated)
	return updated, nil
}

// DeletePost removes the referenced blobs first, then the record. Blob
// deletion is best-effort: a missing blob is not fatal and a failing one is
// logged and skipped so the remaining media still gets cleaned up.
func (s *PostService) DeletePost(ctx context.Context, id, callerIdentity string) error {
	caller, err := s.resolveUser(ctx, callerIdentity)
	if err != nil {
		return err
	}
	post, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.ID {
		return repo.ErrForbidden
	}

	for _, blobID := range post.BlobIDs() {
		if err := s.Blobs.Delete(ctx, blobID); err != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"post_id": id,
				"blob_id": blobID,
			}).Warn("blob delete failed, continuing")
		}
	}

	if err := s.Posts.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, post)
	s.removeFromIndex(ctx, id)
	return nil
}

// Like is idempotent: liking a post twice leaves likesCount and the
// liked-by set unchanged. The membership check and the counter increment
// run as one store operation.
func (s *PostService) Like(ctx context.Context, postID, identity string) (*entity.Post, error) {
	actor, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	post, changed, err := s.Posts.AddLike(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}
	if changed {
		s.invalidateCache(ctx, post)
		s.notifyEngagement(ctx, post, actor, mailer.KindLike, "")
	}
	return post, nil
}

// Unlike removes the caller from the liked-by set; unliking a post the
// caller never liked is a no-op.
func (s *PostService) Unlike(ctx context.Context, postID, identity string) (*entity.Post, error) {
	actor, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	post, changed, err := s.Posts.RemoveLike(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}
	if changed {
		s.invalidateCache(ctx, post)
	}
	return post, nil
}

// AddComment appends a comment; any authenticated user may comment.
func (s *PostService) AddComment(ctx context.Context, postID, identity, content string) (*entity.Post, error) {
	actor, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	comment := entity.Comment{
		AuthorID:  actor.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	post, err := s.Posts.AddComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, post)
	s.notifyEngagement(ctx, post, actor, mailer.KindComment, content)
	return post, nil
}

// GetMedia streams a stored blob back with its recorded content type.
func (s *PostService) GetMedia(ctx context.Context, blobID string) (*repo.Blob, error) {
	b, err := s.Blobs.Retrieve(ctx, blobID)
	if err != nil {
		return nil, err
	}
	if b.ContentType == "" {
		b.ContentType = "application/octet-stream"
	}
	return b, nil
}

func (s *PostService) invalidateCache(ctx context.Context, post *entity.Post) {
	if s.Redis == nil {
		return
	}
	keys := []string{feedCacheKey, postCacheKey + post.ID, userCacheKey + post.AuthorID}
	if err := helpers.RedisDel(ctx, s.Redis, keys...); err != nil {
		s.Logger.WithError(err).Warn("cache invalidation failed")
	}
}

func (s *PostService) notifyEngagement(ctx context.Context, post *entity.Post, actor *entity.User, kind, commentText string) {
	if s.Events == nil || actor.ID == post.AuthorID {
		return
	}
	author, err := s.Users.GetByID(ctx, post.AuthorID)
	if err != nil {
		s.Logger.WithError(err).WithField("post_id", post.ID).Warn("notification skipped, author lookup failed")
		return
	}
	job := mailer.NotificationJob{
		Kind:           kind,
		RecipientEmail: author.Email,
		RecipientName:  author.Name,
		ActorName:      actor.Name,
		PostID:         post.ID,
		CommentText:    commentText,
		At:             time.Now().UTC(),
	}
	if err := s.Events.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("post_id", post.ID).Warn("notification publish failed")
	}
}

func (s *PostService) indexPost(ctx context.Context, post *entity.Post) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         post.ID,
		"author_id":  post.AuthorID,
		"content":    post.Content,
		"created_at": post.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESPostsIndex, DocumentID: post.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("post_id", post.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("post_id", post.ID).Warn("es index response error")
	}
}

func (s *PostService) removeFromIndex(ctx context.Context, postID string) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESPostsIndex, DocumentID: postID}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("post_id", postID).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// SearchPosts runs a match query against the post index and hydrates the
// hits from the store so results carry full engagement state.
func (s *PostService) SearchPosts(ctx context.Context, q string, size int) ([]entity.Post, error) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return []entity.Post{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"content": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESPostsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Post, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		p, err := s.Posts.FindByID(ctx, h.ID)
		if err != nil {
			continue // index can lag behind deletes
		}
		out = append(out, *p)
	}
	return out, nil
}
