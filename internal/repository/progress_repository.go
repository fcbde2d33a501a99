package repository

import (
	"context"
	"encoding/json"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/util"
	"study_scholar_backend/pkg/logger"

	"go.uber.org/zap"
)

// ProgressRepository 单例进度记录
type ProgressRepository struct {
	Key string
}

func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{Key: util.CollectionProgress}
}

// Load 返回已保存的进度；不存在或已损坏时 ok 为 false
func (r *ProgressRepository) Load(ctx context.Context, scope *Scope) (model.UserProgress, bool, error) {
	var progress model.UserProgress

	raw, ok, err := scope.Store.Get(ctx, r.Key)
	if err != nil || !ok {
		return progress, false, err
	}

	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		logger.Log.Warn("progress document is corrupt, reinitializing",
			zap.String("device", scope.DeviceID), zap.Error(err))
		return model.UserProgress{}, false, nil
	}
	if progress.Badges == nil {
		progress.Badges = []string{}
	}
	return progress, true, nil
}

func (r *ProgressRepository) Save(ctx context.Context, scope *Scope, progress model.UserProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return scope.Store.Set(ctx, r.Key, string(data))
}
