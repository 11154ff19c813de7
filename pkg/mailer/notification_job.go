package mailer

import "time"

// Notification job kinds carried over RabbitMQ.
const (
	KindWelcome = "welcome"
	KindLike    = "like"
	KindComment = "comment"
)

// NotificationJob is the payload published by the API and consumed by the
// notify worker. RecipientEmail addresses the post author (or, for welcome
// mail, the new user); ActorName identifies who triggered the event.
type NotificationJob struct {
	Kind           string    `json:"kind"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name,omitempty"`
	ActorName      string    `json:"actor_name,omitempty"`
	PostID         string    `json:"post_id,omitempty"`
	CommentText    string    `json:"comment_text,omitempty"`
	At             time.Time `json:"at"`
}
