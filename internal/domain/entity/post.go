package entity

import (
	"time"
)

// Post is the aggregate root for the post domain. Media references are
// internal blob ids and must never be serialized to clients directly;
// handlers project them into media paths first.
//
// A post carries either up to three images or a single video, never both.
// LikesCount is a cached cardinality of LikedBy and is only ever changed
// together with it in a single store operation.
type Post struct {
	ID         string    `bson:"_id,omitempty"`
	AuthorID   string    `bson:"authorId"`
	Content    string    `bson:"content,omitempty"`
	ImageIDs   []string  `bson:"imageIds,omitempty"`
	VideoID    string    `bson:"videoId,omitempty"`
	LikesCount int       `bson:"likesCount"`
	LikedBy    []string  `bson:"likedBy"`
	Comments   []Comment `bson:"comments"`
	CreatedAt  time.Time `bson:"createdAt"`
}

// Comment is embedded in its post; comments are append-only.
type Comment struct {
	AuthorID  string    `bson:"authorId"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}

// HasImages reports whether the post carries image media.
func (p *Post) HasImages() bool { return len(p.ImageIDs) > 0 }

// HasVideo reports whether the post carries video media.
func (p *Post) HasVideo() bool { return p.VideoID != "" }

// LikedByUser reports whether userID is present in the liked-by set.
func (p *Post) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// BlobIDs returns every blob referenced by the post.
func (p *Post) BlobIDs() []string {
	ids := make([]string, 0, len(p.ImageIDs)+1)
	ids = append(ids, p.ImageIDs...)
	if p.VideoID != "" {
		ids = append(ids, p.VideoID)
	}
	return ids
}
