package kvstore

import (
	"fmt"
	"io"
	"study_scholar_backend/internal/config"
)

// Open 按 store.type 创建后端并加上键前缀，返回的 closer 用于释放连接
func Open(cfg *config.Config) (Store, io.Closer, error) {
	var (
		base   Store
		closer io.Closer
	)

	switch cfg.Store.Type {
	case config.StoreMemory, "":
		m := NewMemoryStore()
		base, closer = m, m
	case config.StoreRedis:
		rdb, err := InitRedis(&cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis: %w", err)
		}
		r := NewRedisStore(rdb)
		base, closer = r, r
	case config.StoreMySQL:
		db, err := InitDB(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("init database: %w", err)
		}
		s := NewSQLStore(db)
		base, closer = s, s
	default:
		return nil, nil, fmt.Errorf("unknown store type %q", cfg.Store.Type)
	}

	return Namespace(base, cfg.Store.KeyPrefix), closer, nil
}
