package service

import (
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/pkg/kvstore"
	"time"
)

func newScope() *repository.Scope {
	return repository.NewScope(kvstore.NewMemoryStore(), "test")
}

func fixedClock(ts string) func() time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
