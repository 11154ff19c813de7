package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sakilait22310750/skillsync/internal/domain/entity"
	repo "github.com/sakilait22310750/skillsync/internal/domain/repository"
)

// LearningService manages learning plans and per-user progress trackers.
// Plans are readable by anyone; only the owner may change or remove them.
type LearningService struct {
	Plans    repo.LearningPlanRepository
	Progress repo.LearningProgressRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger
}

func NewLearningService(plans repo.LearningPlanRepository, progress repo.LearningProgressRepository, users repo.UserRepository, logger *logrus.Logger) *LearningService {
	return &LearningService{Plans: plans, Progress: progress, Users: users, Logger: logger}
}

func (s *LearningService) resolveUser(ctx context.Context, identity string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, identity)
	if err != nil {
		return nil, repo.ErrUserNotFound
	}
	return u, nil
}

func (s *LearningService) CreatePlan(ctx context.Context, identity string, plan *entity.LearningPlan) (*entity.LearningPlan, error) {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	plan.UserID = owner.ID
	if err := s.Plans.Insert(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *LearningService) GetPlan(ctx context.Context, id string) (*entity.LearningPlan, error) {
	return s.Plans.FindByID(ctx, id)
}

func (s *LearningService) ListPlans(ctx context.Context) ([]entity.LearningPlan, error) {
	return s.Plans.FindAll(ctx)
}

func (s *LearningService) ListMyPlans(ctx context.Context, identity string) ([]entity.LearningPlan, error) {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.Plans.FindByUser(ctx, owner.ID)
}

func (s *LearningService) UpdatePlan(ctx context.Context, identity, id string, in *entity.LearningPlan) (*entity.LearningPlan, error) {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	existing, err := s.Plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != owner.ID {
		return nil, repo.ErrForbidden
	}
	in.ID = existing.ID
	in.UserID = existing.UserID
	if err := s.Plans.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *LearningService) DeletePlan(ctx context.Context, identity, id string) error {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return err
	}
	existing, err := s.Plans.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != owner.ID {
		return repo.ErrForbidden
	}
	return s.Plans.DeleteByID(ctx, id)
}

// StartProgress creates a progress tracker, usually seeded from a plan's
// topics. The percent is derived from topic completion, never set directly.
func (s *LearningService) StartProgress(ctx context.Context, identity string, p *entity.LearningProgress) (*entity.LearningProgress, error) {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	p.UserID = owner.ID
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	p.RecalculateProgress()
	if err := s.Progress.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *LearningService) ListMyProgress(ctx context.Context, identity string) ([]entity.LearningProgress, error) {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	return s.Progress.FindByUser(ctx, owner.ID)
}

// UpdateProgress replaces the tracker's topics and recomputes the percent.
func (s *LearningService) UpdateProgress(ctx context.Context, identity, id string, in *entity.LearningProgress) (*entity.LearningProgress, error) {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	existing, err := s.Progress.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != owner.ID {
		return nil, repo.ErrForbidden
	}
	in.ID = existing.ID
	in.UserID = existing.UserID
	in.CreatedAt = existing.CreatedAt
	in.UpdatedAt = time.Now().UTC()
	in.RecalculateProgress()
	if err := s.Progress.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *LearningService) DeleteProgress(ctx context.Context, identity, id string) error {
	owner, err := s.resolveUser(ctx, identity)
	if err != nil {
		return err
	}
	existing, err := s.Progress.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != owner.ID {
		return repo.ErrForbidden
	}
	return s.Progress.DeleteByID(ctx, id)
}
