package repository

import (
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/util"
)

type MockTestRepository struct {
	*Collection[model.GeneratedTest]
}

func NewMockTestRepository() *MockTestRepository {
	return &MockTestRepository{Collection: NewCollection[model.GeneratedTest](util.CollectionTests)}
}
