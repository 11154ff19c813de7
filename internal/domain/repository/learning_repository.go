package repository

import (
	"context"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
)

// LearningPlanRepository persists learning plans.
type LearningPlanRepository interface {
	Insert(ctx context.Context, p *entity.LearningPlan) error
	FindByID(ctx context.Context, id string) (*entity.LearningPlan, error)
	FindAll(ctx context.Context) ([]entity.LearningPlan, error)
	FindByUser(ctx context.Context, userID string) ([]entity.LearningPlan, error)
	Update(ctx context.Context, p *entity.LearningPlan) error
	DeleteByID(ctx context.Context, id string) error
}

// LearningProgressRepository persists learning progress records.
type LearningProgressRepository interface {
	Insert(ctx context.Context, p *entity.LearningProgress) error
	FindByID(ctx context.Context, id string) (*entity.LearningProgress, error)
	FindByUser(ctx context.Context, userID string) ([]entity.LearningProgress, error)
	Update(ctx context.Context, p *entity.LearningProgress) error
	DeleteByID(ctx context.Context, id string) error
}
