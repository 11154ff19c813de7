package application

import (
	"time"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
)

// PostView is the wire shape of a post. Blob ids never leave the service
// raw; images and video are exposed as fetchable media paths instead.
type PostView struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	Content    string        `json:"content"`
	ImageURLs  []string      `json:"imageUrls"`
	VideoURL   string        `json:"videoUrl,omitempty"`
	LikesCount int           `json:"likesCount"`
	LikedBy    []string      `json:"likedBy"`
	Comments   []CommentView `json:"comments"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type CommentView struct {
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectPost converts a stored post into its response shape.
func ProjectPost(p *entity.Post) PostView {
	v := PostView{
		ID:         p.ID,
		UserID:     p.AuthorID,
		Content:    p.Content,
		ImageURLs:  make([]string, 0, len(p.ImageIDs)),
		LikesCount: p.LikesCount,
		LikedBy:    p.LikedBy,
		Comments:   make([]CommentView, 0, len(p.Comments)),
		CreatedAt:  p.CreatedAt,
	}
	if v.LikedBy == nil {
		v.LikedBy = []string{}
	}
	for _, id := range p.ImageIDs {
		v.ImageURLs = append(v.ImageURLs, MediaPathPrefix+id)
	}
	if p.VideoID != "" {
		v.VideoURL = MediaPathPrefix + p.VideoID
	}
	for _, c := range p.Comments {
		v.Comments = append(v.Comments, CommentView{
			UserID:    c.AuthorID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	return v
}

// ProjectPosts projects a listing, preserving order.
func ProjectPosts(posts []entity.Post) []PostView {
	out := make([]PostView, 0, len(posts))
	for i := range posts {
		out = append(out, ProjectPost(&posts[i]))
	}
	return out
}
