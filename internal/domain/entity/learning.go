package entity

import (
	"time"
)

// LearningPlan is a user-authored study plan.
type LearningPlan struct {
	ID          string   `bson:"_id,omitempty"`
	UserID      string   `bson:"userId"`
	Name        string   `bson:"name"`
	Description string   `bson:"description,omitempty"`
	Topics      []string `bson:"topics,omitempty"`
	Resources   []string `bson:"resources,omitempty"`
}

// LearningProgress tracks completion of a plan's topics. Progress is a
// derived percentage and is recomputed whenever topics change.
type LearningProgress struct {
	ID          string          `bson:"_id,omitempty"`
	UserID      string          `bson:"userId"`
	Name        string          `bson:"name"`
	Description string          `bson:"description,omitempty"`
	Topics      []ProgressTopic `bson:"topics"`
	Resources   []string        `bson:"resources,omitempty"`
	Progress    int             `bson:"progress"`
	CreatedAt   time.Time       `bson:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt"`
}

type ProgressTopic struct {
	Name      string `bson:"name"`
	Completed bool   `bson:"completed"`
}

// RecalculateProgress recomputes the completion percentage from topics.
func (lp *LearningProgress) RecalculateProgress() {
	if len(lp.Topics) == 0 {
		lp.Progress = 0
		return
	}
	completed := 0
	for _, t := range lp.Topics {
		if t.Completed {
			completed++
		}
	}
	lp.Progress = completed * 100 / len(lp.Topics)
}
