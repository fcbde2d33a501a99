package repository

import (
	"context"
	"encoding/json"
	"study_scholar_backend/internal/util"
	"study_scholar_backend/pkg/logger"
	"sync"

	"go.uber.org/zap"
)

type Record interface {
	GetID() string
}

// Collection 一个键下保存的完整 JSON 数组。每次写操作都是整体读取、内存修改、整体写回。
// 同一进程内的写操作串行执行；跨进程仍是整文档 last-write-wins。
type Collection[T Record] struct {
	Key string
	mu  sync.Mutex
}

func NewCollection[T Record](key string) *Collection[T] {
	return &Collection[T]{Key: key}
}

func (c *Collection[T]) load(ctx context.Context, scope *Scope) ([]T, error) {
	raw, ok, err := scope.Store.Get(ctx, c.Key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Log.Warn("collection document is corrupt, treating as empty",
			zap.String("collection", c.Key),
			zap.String("device", scope.DeviceID),
			zap.Error(err))
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (c *Collection[T]) save(ctx context.Context, scope *Scope, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return scope.Store.Set(ctx, c.Key, string(data))
}

// List 按插入顺序返回全部记录
func (c *Collection[T]) List(ctx context.Context, scope *Scope) ([]T, error) {
	return c.load(ctx, scope)
}

func (c *Collection[T]) Find(ctx context.Context, scope *Scope, id string) (*T, error) {
	records, err := c.load(ctx, scope)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].GetID() == id {
			return &records[i], nil
		}
	}
	return nil, util.ErrNotFound
}

func (c *Collection[T]) Append(ctx context.Context, scope *Scope, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx, scope)
	if err != nil {
		return err
	}
	records = append(records, record)
	return c.save(ctx, scope, records)
}

// Remove 过滤掉指定 id 后整体写回，返回是否有记录被删除
func (c *Collection[T]) Remove(ctx context.Context, scope *Scope, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx, scope)
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(records))
	for _, r := range records {
		if r.GetID() != id {
			kept = append(kept, r)
		}
	}
	if err := c.save(ctx, scope, kept); err != nil {
		return false, err
	}
	return len(kept) != len(records), nil
}
