package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"study_scholar_backend/internal/config"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/util"
	"study_scholar_backend/pkg/logger"

	"go.uber.org/zap"
)

const genericGenerationFailure = "Failed to generate test"

// GenerationClient 调用出卷服务，返回其原始响应包
type GenerationClient interface {
	Generate(ctx context.Context, req model.GenerateTestRequest) (*model.GenerationEnvelope, error)
}

// HTTPGenerationClient 通过 HTTPS POST 调用远程出卷服务，不重试
type HTTPGenerationClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPGenerationClient(cfg config.GeneratorConfig) *HTTPGenerationClient {
	return &HTTPGenerationClient{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

func (c *HTTPGenerationClient) Generate(ctx context.Context, req model.GenerateTestRequest) (*model.GenerationEnvelope, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, util.NewGenerationError(genericGenerationFailure, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, util.NewGenerationError(genericGenerationFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, util.NewGenerationError(genericGenerationFailure, err)
	}

	var envelope model.GenerationEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logger.Log.Warn("generation service returned unreadable body",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", truncate(body, 512)))
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, util.NewGenerationError(
				genericGenerationFailure,
				fmt.Errorf("generation service status %d", resp.StatusCode),
			)
		}
		return nil, util.NewGenerationError("Invalid response from generation service", err)
	}

	return &envelope, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// LocalGenerationClient 在进程内直接调用 MockTestGenerator，未配置远程地址时使用
type LocalGenerationClient struct {
	generator *MockTestGenerator
}

func NewLocalGenerationClient(generator *MockTestGenerator) *LocalGenerationClient {
	return &LocalGenerationClient{generator: generator}
}

func (c *LocalGenerationClient) Generate(ctx context.Context, req model.GenerateTestRequest) (*model.GenerationEnvelope, error) {
	envelope, err := c.generator.Generate(ctx, req)
	if err != nil {
		return &model.GenerationEnvelope{Success: false, Error: err.Error()}, nil
	}
	return envelope, nil
}
