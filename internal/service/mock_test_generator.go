package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

const examinerSystemPrompt = "You are an expert educator who creates high-quality examination papers. Always respond with valid JSON only, no additional text."

var (
	errGenerateFailed    = errors.New("Failed to generate test")
	errInvalidAIResponse = errors.New("Invalid AI response format")
)

var codeFencePattern = regexp.MustCompile("```json\\n?|\\n?```")

// MockTestGenerator 出卷服务的服务端实现：拼装提示词、调用大模型、解析 JSON
type MockTestGenerator struct {
	completer Completer
	now       func() time.Time
}

func NewMockTestGenerator(completer Completer) *MockTestGenerator {
	return &MockTestGenerator{completer: completer, now: time.Now}
}

func BuildMockTestPrompt(req model.GenerateTestRequest) string {
	var b strings.Builder
	b.WriteString("Generate a comprehensive mock test paper with the following specifications:\n")
	fmt.Fprintf(&b, "- Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "- Class: %s\n", req.ClassName)
	fmt.Fprintf(&b, "- Chapter: %s\n", req.Chapter)
	fmt.Fprintf(&b, "- Topics: %s\n", req.Topics)
	fmt.Fprintf(&b, "- Maximum Marks: %d\n\n", req.MaxMarks)
	b.WriteString(`Create a well-structured test paper with:
1. Multiple Choice Questions (MCQs) - 40% of marks
2. Short Answer Questions - 30% of marks
3. Long Answer Questions - 30% of marks

Include diagrams descriptions where relevant (especially for Science and Math).
Format the output as a structured JSON with sections, questions, options (for MCQs), marks allocation, and diagram descriptions.

Return JSON format:
{
  "title": "Test title",
  "sections": [
    {
      "name": "Section A - Multiple Choice Questions",
      "questions": [
        {
          "number": 1,
          "question": "Question text",
          "options": ["A) ...", "B) ...", "C) ...", "D) ..."],
          "correctAnswer": "A",
          "marks": 1,
          "diagram": "Description of diagram if needed"
        }
      ]
    }
  ]
}`)
	return b.String()
}

// CleanModelJSON 去掉模型输出中的 markdown 代码块标记
func CleanModelJSON(content string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(content, ""))
}

// Generate 失败时返回错误，由调用方包装成 success=false 的响应
func (g *MockTestGenerator) Generate(ctx context.Context, req model.GenerateTestRequest) (*model.GenerationEnvelope, error) {
	content, err := g.completer.Complete(ctx, examinerSystemPrompt, BuildMockTestPrompt(req))
	if err != nil {
		logger.Log.Error("AI API error", zap.Error(err))
		if errors.Is(err, ErrAIKeyMissing) {
			return nil, err
		}
		return nil, errGenerateFailed
	}

	var testData model.TestData
	if err := json.Unmarshal([]byte(CleanModelJSON(content)), &testData); err != nil {
		logger.Log.Error("Failed to parse AI response", zap.String("content", content), zap.Error(err))
		return nil, errInvalidAIResponse
	}

	return &model.GenerationEnvelope{
		Success:  true,
		TestData: &testData,
		Metadata: map[string]interface{}{
			"subject":     req.Subject,
			"className":   req.ClassName,
			"chapter":     req.Chapter,
			"topics":      req.Topics,
			"maxMarks":    req.MaxMarks,
			"generatedAt": g.now().UTC().Format(time.RFC3339Nano),
		},
	}, nil
}
