package service

import (
	"context"
	"strings"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/internal/util"
	"sync"
	"time"
)

// ProgressService 连续打卡、积分与徽章。日期统一按 UTC 自然日计算
type ProgressService struct {
	repo *repository.ProgressRepository
	now  func() time.Time
	mu   sync.Mutex
}

func NewProgressService(repo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{repo: repo, now: time.Now}
}

func (s *ProgressService) today() string {
	return s.now().UTC().Format(util.DateFormat)
}

func (s *ProgressService) yesterday() string {
	return s.now().UTC().AddDate(0, 0, -1).Format(util.DateFormat)
}

func (s *ProgressService) defaults() model.UserProgress {
	today := s.today()
	return model.UserProgress{
		TotalStudyTime: "0h",
		Badges:         []string{},
		LastActiveDate: today,
		CreatedAt:      today,
	}
}

// load 首次读取时写入默认值
func (s *ProgressService) load(ctx context.Context, scope *repository.Scope) (model.UserProgress, error) {
	progress, ok, err := s.repo.Load(ctx, scope)
	if err != nil {
		return model.UserProgress{}, err
	}
	if ok {
		return progress, nil
	}
	progress = s.defaults()
	if err := s.repo.Save(ctx, scope, progress); err != nil {
		return model.UserProgress{}, err
	}
	return progress, nil
}

func (s *ProgressService) Get(ctx context.Context, scope *repository.Scope) (model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, scope)
}

func (s *ProgressService) Update(ctx context.Context, scope *repository.Scope, patch model.ProgressPatch) (model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(ctx, scope, patch)
}

func (s *ProgressService) update(ctx context.Context, scope *repository.Scope, patch model.ProgressPatch) (model.UserProgress, error) {
	current, err := s.load(ctx, scope)
	if err != nil {
		return model.UserProgress{}, err
	}
	updated := patch.Apply(current)
	if err := s.repo.Save(ctx, scope, updated); err != nil {
		return model.UserProgress{}, err
	}
	return updated, nil
}

// UpdateStreak 同一天重复调用不做修改
func (s *ProgressService) UpdateStreak(ctx context.Context, scope *repository.Scope) (model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.load(ctx, scope)
	if err != nil {
		return model.UserProgress{}, err
	}

	today := s.today()
	if progress.LastActiveDate == today {
		return progress, nil
	}

	streak := 1
	if progress.LastActiveDate == s.yesterday() {
		streak = progress.Streak + 1
	}

	return s.update(ctx, scope, model.ProgressPatch{
		Streak:         &streak,
		LastActiveDate: &today,
	})
}

func (s *ProgressService) AddPoints(ctx context.Context, scope *repository.Scope, points int) (model.UserProgress, error) {
	if points < 0 {
		return model.UserProgress{}, util.NewValidationError("points", "must not be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.load(ctx, scope)
	if err != nil {
		return model.UserProgress{}, err
	}
	total := progress.Points + points
	return s.update(ctx, scope, model.ProgressPatch{Points: &total})
}

func (s *ProgressService) AddBadge(ctx context.Context, scope *repository.Scope, name string) (model.UserProgress, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.UserProgress{}, util.NewValidationError("name", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	progress, err := s.load(ctx, scope)
	if err != nil {
		return model.UserProgress{}, err
	}
	if progress.HasBadge(name) {
		return progress, nil
	}
	badges := append(append([]string{}, progress.Badges...), name)
	return s.update(ctx, scope, model.ProgressPatch{Badges: &badges})
}
