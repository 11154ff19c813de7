package application

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	repo "github.com/sakilait22310750/skillsync/internal/domain/repository"
)

// In-memory implementations backing the service tests. The post fake mirrors
// the store contract: engagement mutations are conditional and keep the
// counter in lockstep with the liked-by set under a single lock.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // by id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repo.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type memPostRepo struct {
	mu    sync.Mutex
	seq   int
	posts map[string]*entity.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[string]*entity.Post{}}
}

func clonePost(p *entity.Post) *entity.Post {
	cp := *p
	cp.ImageIDs = append([]string(nil), p.ImageIDs...)
	cp.LikedBy = append([]string{}, p.LikedBy...)
	cp.Comments = append([]entity.Comment{}, p.Comments...)
	return &cp
}

func (r *memPostRepo) Insert(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("post-%d", r.seq)
	}
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *memPostRepo) FindByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repo.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *memPostRepo) FindByAuthor(_ context.Context, authorID string) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Post{}
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, *clonePost(p))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memPostRepo) FindAll(_ context.Context) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Post{}
	for _, p := range r.posts {
		out = append(out, *clonePost(p))
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(posts []entity.Post) {
	for i := 1; i < len(posts); i++ {
		for j := i; j > 0 && posts[j].CreatedAt.After(posts[j-1].CreatedAt); j-- {
			posts[j], posts[j-1] = posts[j-1], posts[j]
		}
	}
}

func (r *memPostRepo) UpdateContent(_ context.Context, id, content string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repo.ErrPostNotFound
	}
	p.Content = content
	return clonePost(p), nil
}

func (r *memPostRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repo.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memPostRepo) AddLike(_ context.Context, id, userID string) (*entity.Post, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, false, repo.ErrPostNotFound
	}
	if p.LikedByUser(userID) {
		return clonePost(p), false, nil
	}
	p.LikedBy = append(p.LikedBy, userID)
	p.LikesCount++
	return clonePost(p), true, nil
}

func (r *memPostRepo) RemoveLike(_ context.Context, id, userID string) (*entity.Post, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, false, repo.ErrPostNotFound
	}
	for i, liker := range p.LikedBy {
		if liker == userID {
			p.LikedBy = append(p.LikedBy[:i], p.LikedBy[i+1:]...)
			p.LikesCount--
			return clonePost(p), true, nil
		}
	}
	return clonePost(p), false, nil
}

func (r *memPostRepo) AddComment(_ context.Context, id string, c entity.Comment) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repo.ErrPostNotFound
	}
	p.Comments = append(p.Comments, c)
	return clonePost(p), nil
}

type memBlobStore struct {
	mu    sync.Mutex
	seq   int
	blobs map[string]*repo.Blob
	// failDelete lists blob ids whose Delete call errors, for exercising
	// the best-effort cascade.
	failDelete map[string]bool
	// failStoreAt makes the nth Store call (1-based) error, for exercising
	// the no-batch-atomicity contract of StoreMany.
	failStoreAt int
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{blobs: map[string]*repo.Blob{}, failDelete: map[string]bool{}}
}

func (s *memBlobStore) Store(_ context.Context, r io.Reader, _ string, contentType, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.failStoreAt > 0 && s.seq == s.failStoreAt {
		return "", fmt.Errorf("store %d: backend unavailable", s.seq)
	}
	id := fmt.Sprintf("blob-%d", s.seq)
	s.blobs[id] = &repo.Blob{Data: data, ContentType: contentType}
	return id, nil
}

func (s *memBlobStore) StoreMany(ctx context.Context, items []repo.Upload, ownerID string) ([]string, error) {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		id, err := s.Store(ctx, it.Reader, it.Filename, it.ContentType, ownerID)
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memBlobStore) Retrieve(_ context.Context, id string) (*repo.Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[id]
	if !ok {
		return nil, repo.ErrBlobNotFound
	}
	return &repo.Blob{Data: append([]byte(nil), b.Data...), ContentType: b.ContentType}, nil
}

func (s *memBlobStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete[id] {
		return fmt.Errorf("delete %s: backend unavailable", id)
	}
	delete(s.blobs, id)
	return nil
}

func (s *memBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
