package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	repo "github.com/sakilait22310750/skillsync/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type postFixture struct {
	svc   *PostService
	users *memUserRepo
	posts *memPostRepo
	blobs *memBlobStore
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	users := newMemUserRepo()
	posts := newMemPostRepo()
	blobs := newMemBlobStore()
	svc := NewPostService(posts, blobs, users, nil, nil, "", nil, testLogger())
	return &postFixture{svc: svc, users: users, posts: posts, blobs: blobs}
}

func (f *postFixture) addUser(t *testing.T, email, name string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Name: name}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func upload(content string) MediaUpload {
	return MediaUpload{Reader: strings.NewReader(content), Filename: "f.bin", ContentType: "image/png"}
}

func TestCreatePostTextOnly(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hello world", nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "hello world", post.Content)
	assert.Empty(t, post.ImageIDs)
	assert.Empty(t, post.VideoID)
	assert.Equal(t, 0, post.LikesCount)
	assert.NotNil(t, post.LikedBy)
	assert.NotNil(t, post.Comments)
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	f := newPostFixture(t)
	_, err := f.svc.CreatePost(context.Background(), "ghost@example.com", "hi", nil, nil)
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}

func TestCreatePostRejectsImagesAndVideoTogether(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	video := MediaUpload{Reader: bytes.NewReader([]byte("vid")), Filename: "v.mp4", ContentType: "video/mp4"}
	_, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hi",
		[]MediaUpload{upload("img1")}, &video)
	assert.ErrorIs(t, err, repo.ErrConflictingMedia)
	assert.Equal(t, 0, f.blobs.count(), "no blob should be stored on a rejected post")
}

func TestCreatePostImageLimit(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	four := []MediaUpload{upload("1"), upload("2"), upload("3"), upload("4")}
	_, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hi", four, nil)
	assert.ErrorIs(t, err, repo.ErrTooManyImages)

	three := []MediaUpload{upload("1"), upload("2"), upload("3")}
	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hi", three, nil)
	require.NoError(t, err)
	assert.Len(t, post.ImageIDs, 3)
	assert.Equal(t, 3, f.blobs.count())
}

func TestCreatePostWithVideo(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	video := MediaUpload{Reader: bytes.NewReader([]byte("vid")), Filename: "v.mp4", ContentType: "video/mp4"}
	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "clip", nil, &video)
	require.NoError(t, err)
	assert.NotEmpty(t, post.VideoID)

	blob, err := f.svc.GetMedia(context.Background(), post.VideoID)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", blob.ContentType)
	assert.Equal(t, []byte("vid"), blob.Data)
}

func TestLikeIsIdempotent(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")
	bob := f.addUser(t, "bob@example.com", "Bob")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hi", nil, nil)
	require.NoError(t, err)

	liked, err := f.svc.Like(context.Background(), post.ID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikesCount)
	assert.Equal(t, []string{bob.ID}, liked.LikedBy)

	again, err := f.svc.Like(context.Background(), post.ID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, again.LikesCount, "second like must not change the count")
	assert.Equal(t, []string{bob.ID}, again.LikedBy)
	assert.Len(t, again.LikedBy, again.LikesCount)
}

func TestUnlikeIsIdempotent(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")
	f.addUser(t, "bob@example.com", "Bob")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hi", nil, nil)
	require.NoError(t, err)

	// Unliking before ever liking is a no-op, not an error.
	p, err := f.svc.Unlike(context.Background(), post.ID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, p.LikesCount)

	_, err = f.svc.Like(context.Background(), post.ID, "bob@example.com")
	require.NoError(t, err)

	p, err = f.svc.Unlike(context.Background(), post.ID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, p.LikesCount)
	assert.Empty(t, p.LikedBy)

	p, err = f.svc.Unlike(context.Background(), post.ID, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, p.LikesCount)
}

func TestCreatePostImageBatchFailure(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	// Second image store fails mid-batch; the post must not be created and
	// the first blob stays behind (no batch atomicity, swept out of band).
	f.blobs.failStoreAt = 2
	_, err := f.svc.CreatePost(context.Background(), "alice@example.com", "pics",
		[]MediaUpload{upload("a"), upload("b"), upload("c")}, nil)
	require.Error(t, err)
	assert.Equal(t, 1, f.blobs.count())

	posts, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestConcurrentLikesStayConsistent(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "author@example.com", "Author")

	post, err := f.svc.CreatePost(context.Background(), "author@example.com", "race me", nil, nil)
	require.NoError(t, err)

	const users = 8
	const attempts = 5
	emails := make([]string, users)
	for i := range emails {
		emails[i] = fmt.Sprintf("fan%d@example.com", i)
		f.addUser(t, emails[i], fmt.Sprintf("Fan %d", i))
	}

	// Every user likes the same post from several goroutines at once. The
	// store-level conditional update must absorb the duplicates: one entry
	// per user and a counter equal to the set size, never more.
	var wg sync.WaitGroup
	for _, email := range emails {
		for a := 0; a < attempts; a++ {
			wg.Add(1)
			go func(email string) {
				defer wg.Done()
				_, err := f.svc.Like(context.Background(), post.ID, email)
				assert.NoError(t, err)
			}(email)
		}
	}
	wg.Wait()

	got, err := f.svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, users, got.LikesCount)
	assert.Len(t, got.LikedBy, got.LikesCount)
	seen := map[string]int{}
	for _, id := range got.LikedBy {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "user %s appears more than once", id)
	}

	// Concurrent unlikes drain it back to zero without going negative.
	for _, email := range emails {
		for a := 0; a < attempts; a++ {
			wg.Add(1)
			go func(email string) {
				defer wg.Done()
				_, err := f.svc.Unlike(context.Background(), post.ID, email)
				assert.NoError(t, err)
			}(email)
		}
	}
	wg.Wait()

	got, err = f.svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikesCount)
	assert.Empty(t, got.LikedBy)
}

func TestLikeUnknownPost(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "bob@example.com", "Bob")
	_, err := f.svc.Like(context.Background(), "missing", "bob@example.com")
	assert.ErrorIs(t, err, repo.ErrPostNotFound)
}

func TestCommentsAppendInOrder(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")
	bob := f.addUser(t, "bob@example.com", "Bob")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hi", nil, nil)
	require.NoError(t, err)

	_, err = f.svc.AddComment(context.Background(), post.ID, "bob@example.com", "first")
	require.NoError(t, err)
	p, err := f.svc.AddComment(context.Background(), post.ID, "bob@example.com", "second")
	require.NoError(t, err)

	require.Len(t, p.Comments, 2)
	assert.Equal(t, "first", p.Comments[0].Content)
	assert.Equal(t, "second", p.Comments[1].Content)
	assert.Equal(t, bob.ID, p.Comments[0].AuthorID)
}

func TestUpdateContentOwnerOnly(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")
	f.addUser(t, "bob@example.com", "Bob")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "original", nil, nil)
	require.NoError(t, err)

	_, err = f.svc.UpdateContent(context.Background(), post.ID, "bob@example.com", "hijacked")
	assert.ErrorIs(t, err, repo.ErrForbidden)

	updated, err := f.svc.UpdateContent(context.Background(), post.ID, "alice@example.com", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")
	f.addUser(t, "bob@example.com", "Bob")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "hi", nil, nil)
	require.NoError(t, err)

	err = f.svc.DeletePost(context.Background(), post.ID, "bob@example.com")
	assert.ErrorIs(t, err, repo.ErrForbidden)

	require.NoError(t, f.svc.DeletePost(context.Background(), post.ID, "alice@example.com"))
	_, err = f.svc.GetPost(context.Background(), post.ID)
	assert.ErrorIs(t, err, repo.ErrPostNotFound)
}

func TestDeletePostRemovesBlobs(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "pics",
		[]MediaUpload{upload("a"), upload("b")}, nil)
	require.NoError(t, err)
	require.Len(t, post.ImageIDs, 2)

	require.NoError(t, f.svc.DeletePost(context.Background(), post.ID, "alice@example.com"))
	for _, id := range post.ImageIDs {
		_, err := f.svc.GetMedia(context.Background(), id)
		assert.ErrorIs(t, err, repo.ErrBlobNotFound)
	}
}

func TestDeletePostSurvivesBlobFailure(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "pics",
		[]MediaUpload{upload("a"), upload("b")}, nil)
	require.NoError(t, err)

	// First blob delete fails; the post removal must still go through and
	// clean up the remaining blob.
	f.blobs.failDelete[post.ImageIDs[0]] = true

	require.NoError(t, f.svc.DeletePost(context.Background(), post.ID, "alice@example.com"))
	_, err = f.svc.GetPost(context.Background(), post.ID)
	assert.ErrorIs(t, err, repo.ErrPostNotFound)

	_, err = f.svc.GetMedia(context.Background(), post.ImageIDs[1])
	assert.ErrorIs(t, err, repo.ErrBlobNotFound)
}

func TestListAllNewestFirst(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	for _, content := range []string{"one", "two", "three"} {
		_, err := f.svc.CreatePost(context.Background(), "alice@example.com", content, nil, nil)
		require.NoError(t, err)
	}

	posts, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i-1].CreatedAt.Before(posts[i].CreatedAt),
			"listing must be newest-first")
	}
	assert.Equal(t, "three", posts[0].Content)
}

func TestListByAuthorFilters(t *testing.T) {
	f := newPostFixture(t)
	alice := f.addUser(t, "alice@example.com", "Alice")
	f.addUser(t, "bob@example.com", "Bob")

	_, err := f.svc.CreatePost(context.Background(), "alice@example.com", "mine", nil, nil)
	require.NoError(t, err)
	_, err = f.svc.CreatePost(context.Background(), "bob@example.com", "theirs", nil, nil)
	require.NoError(t, err)

	posts, err := f.svc.ListByAuthor(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Content)

	mine, err := f.svc.ListMine(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Content)
}

func TestGetMediaUnknownBlob(t *testing.T) {
	f := newPostFixture(t)
	_, err := f.svc.GetMedia(context.Background(), "nope")
	assert.ErrorIs(t, err, repo.ErrBlobNotFound)
}

func TestProjectionHidesBlobIDs(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "pics",
		[]MediaUpload{upload("a"), upload("b")}, nil)
	require.NoError(t, err)

	view := ProjectPost(post)
	require.Len(t, view.ImageURLs, 2)
	for i, url := range view.ImageURLs {
		assert.Equal(t, MediaPathPrefix+post.ImageIDs[i], url)
	}
	assert.Empty(t, view.VideoURL)
	assert.Equal(t, post.AuthorID, view.UserID)
	assert.NotNil(t, view.LikedBy)
	assert.NotNil(t, view.Comments)
}

func TestProjectionVideo(t *testing.T) {
	f := newPostFixture(t)
	f.addUser(t, "alice@example.com", "Alice")

	video := MediaUpload{Reader: bytes.NewReader([]byte("v")), Filename: "v.mp4", ContentType: "video/mp4"}
	post, err := f.svc.CreatePost(context.Background(), "alice@example.com", "clip", nil, &video)
	require.NoError(t, err)

	view := ProjectPost(post)
	assert.Equal(t, MediaPathPrefix+post.VideoID, view.VideoURL)
	assert.Empty(t, view.ImageURLs)
}
