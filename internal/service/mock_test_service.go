package service

import (
	"context"
	"fmt"
	"strings"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/internal/util"
	"study_scholar_backend/pkg/logger"
	"study_scholar_backend/pkg/monitoring"
	"study_scholar_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

type MockTestService struct {
	repo   *repository.MockTestRepository
	client GenerationClient
	now    func() time.Time
}

func NewMockTestService(repo *repository.MockTestRepository, client GenerationClient) *MockTestService {
	return &MockTestService{repo: repo, client: client, now: time.Now}
}

func ValidateGenerateRequest(req model.GenerateTestRequest) error {
	fields := []struct {
		name  string
		value string
	}{
		{"subject", req.Subject},
		{"className", req.ClassName},
		{"chapter", req.Chapter},
		{"topics", req.Topics},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return util.NewValidationError(f.name, "is required")
		}
	}
	if req.MaxMarks <= 0 {
		return util.NewValidationError("maxMarks", "must be a positive integer")
	}
	return nil
}

// ValidateTestData 入口处校验远程返回的试卷结构，不信任服务端
func ValidateTestData(data *model.TestData) error {
	if data == nil {
		return fmt.Errorf("missing testData")
	}
	if len(data.Sections) == 0 {
		return fmt.Errorf("testData has no sections")
	}
	for i, section := range data.Sections {
		if strings.TrimSpace(section.Name) == "" {
			return fmt.Errorf("section %d has no name", i+1)
		}
		if len(section.Questions) == 0 {
			return fmt.Errorf("section %q has no questions", section.Name)
		}
		seen := make(map[int]bool, len(section.Questions))
		for j, q := range section.Questions {
			if strings.TrimSpace(q.Question) == "" {
				return fmt.Errorf("section %q question %d has no text", section.Name, j+1)
			}
			if q.Marks <= 0 {
				return fmt.Errorf("section %q question %d has non-positive marks", section.Name, q.Number)
			}
			if seen[q.Number] {
				return fmt.Errorf("section %q repeats question number %d", section.Name, q.Number)
			}
			seen[q.Number] = true
		}
	}
	return nil
}

// Generate 校验 -> 远程生成 -> 结构校验 -> 保存。任何一步失败都不会写入记录
func (s *MockTestService) Generate(ctx context.Context, scope *repository.Scope, req model.GenerateTestRequest) (*model.GeneratedTest, error) {
	if err := ValidateGenerateRequest(req); err != nil {
		monitoring.GenerationCounter.WithLabelValues(monitoring.OutcomeValidation).Inc()
		return nil, err
	}

	ctx, span := tracing.Tracer.Start(ctx, "mock_test.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("subject", req.Subject),
		attribute.String("chapter", req.Chapter),
		attribute.Int("max_marks", req.MaxMarks),
	)

	test, err := s.generate(ctx, req)
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues(monitoring.OutcomeFailure).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.repo.Append(ctx, scope, *test); err != nil {
		monitoring.GenerationCounter.WithLabelValues(monitoring.OutcomeFailure).Inc()
		span.RecordError(err)
		return nil, err
	}

	monitoring.GenerationCounter.WithLabelValues(monitoring.OutcomeSuccess).Inc()
	logger.Log.Info("mock test generated",
		zap.String("device", scope.DeviceID),
		zap.String("id", test.ID),
		zap.Int("questions", test.QuestionCount()))
	return test, nil
}

func (s *MockTestService) generate(ctx context.Context, req model.GenerateTestRequest) (*model.GeneratedTest, error) {
	start := time.Now()
	envelope, err := s.client.Generate(ctx, req)
	monitoring.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if util.IsGeneration(err) {
			return nil, err
		}
		return nil, util.NewGenerationError(genericGenerationFailure, err)
	}

	if envelope == nil || !envelope.Success {
		message := genericGenerationFailure
		if envelope != nil && envelope.Error != "" {
			message = envelope.Error
		}
		return nil, util.NewGenerationError(message, nil)
	}

	if err := ValidateTestData(envelope.TestData); err != nil {
		return nil, util.NewGenerationError("Invalid test structure returned by generation service", err)
	}

	title := strings.TrimSpace(envelope.TestData.Title)
	if title == "" {
		title = req.Subject + " - " + req.Chapter
	}

	metadata := envelope.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{
			"subject":   req.Subject,
			"className": req.ClassName,
			"chapter":   req.Chapter,
			"topics":    req.Topics,
			"maxMarks":  req.MaxMarks,
		}
	}

	test := &model.GeneratedTest{
		ID:          util.NewID(),
		Title:       title,
		Subject:     req.Subject,
		ClassName:   req.ClassName,
		Chapter:     req.Chapter,
		Topics:      req.Topics,
		MaxMarks:    req.MaxMarks,
		Sections:    envelope.TestData.Sections,
		GeneratedAt: s.now().UTC().Format(time.RFC3339Nano),
		Metadata:    metadata,
	}

	// 题目总分超过满分时照常保存，仅记录告警
	if total := test.TotalMarks(); total > test.MaxMarks {
		logger.Log.Warn("generated test exceeds maximum marks",
			zap.Int("totalMarks", total), zap.Int("maxMarks", test.MaxMarks))
	}

	return test, nil
}

func (s *MockTestService) List(ctx context.Context, scope *repository.Scope) ([]model.GeneratedTest, error) {
	return s.repo.List(ctx, scope)
}

func (s *MockTestService) Get(ctx context.Context, scope *repository.Scope, id string) (*model.GeneratedTest, error) {
	return s.repo.Find(ctx, scope, id)
}

func (s *MockTestService) Delete(ctx context.Context, scope *repository.Scope, id string) error {
	removed, err := s.repo.Remove(ctx, scope, id)
	if err != nil {
		return err
	}
	if !removed {
		return util.ErrNotFound
	}
	return nil
}

// Export 返回下载文件名和纯文本内容
func (s *MockTestService) Export(ctx context.Context, scope *repository.Scope, id string) (string, string, error) {
	test, err := s.repo.Find(ctx, scope, id)
	if err != nil {
		return "", "", err
	}
	return ExportFileName(test), RenderTestText(test), nil
}
