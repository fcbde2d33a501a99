package controller

import (
	"net/http"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerationController 出卷服务的 HTTP 入口，响应体沿用 {success, testData, metadata, error} 格式
type GenerationController struct {
	Generator *service.MockTestGenerator
}

func NewGenerationController(generator *service.MockTestGenerator) *GenerationController {
	return &GenerationController{Generator: generator}
}

// @Summary 生成模拟试卷（出卷服务）
// @Tags 出卷服务
// @Accept json
// @Produce json
// @Param body body model.GenerateTestRequest true "出卷参数"
// @Success 200 {object} model.GenerationEnvelope
// @Failure 500 {object} model.GenerationEnvelope
// @Router /api/functions/generate-mock-test [post]
func (c *GenerationController) GenerateMockTest(ctx *gin.Context) {
	var req model.GenerateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, model.GenerationEnvelope{Success: false, Error: err.Error()})
		return
	}

	envelope, err := c.Generator.Generate(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, model.GenerationEnvelope{Success: false, Error: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, envelope)
}
