package service

import (
	"context"
	"fmt"
	"strings"
	"study_scholar_backend/internal/config"
	"sync"

	"google.golang.org/genai"
)

// GeminiService 直接调用 Gemini API，客户端在首次使用时创建
type GeminiService struct {
	mu     sync.Mutex
	config config.AIConfig
	client *genai.Client
}

func NewGeminiService(cfg config.AIConfig) *GeminiService {
	return &GeminiService{config: cfg}
}

func (s *GeminiService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.APIKey != s.config.APIKey {
		s.client = nil
	}
	s.config = cfg
}

func (s *GeminiService) ensureClient(ctx context.Context) (*genai.Client, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config.APIKey == "" {
		return nil, "", ErrAIKeyMissing
	}

	model := strings.TrimPrefix(s.config.Model, "google/")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	if s.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  s.config.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create GenAI client: %w", err)
		}
		s.client = client
	}
	return s.client, model, nil
}

func (s *GeminiService) Complete(ctx context.Context, system, prompt string) (string, error) {
	client, model, err := s.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("GenAI returned no content")
	}
	return text, nil
}
