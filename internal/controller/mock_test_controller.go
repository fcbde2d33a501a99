package controller

import (
	"fmt"
	"net/http"
	"study_scholar_backend/internal/middleware"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/service"
	"study_scholar_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MockTestController struct {
	Service *service.MockTestService
}

func NewMockTestController(svc *service.MockTestService) *MockTestController {
	return &MockTestController{Service: svc}
}

// @Summary 生成模拟试卷
// @Description 调用出卷服务生成试卷并保存到当前设备
// @Tags 模拟试卷
// @Accept json
// @Produce json
// @Param X-Device-ID header string false "设备ID"
// @Param body body model.GenerateTestRequest true "出卷参数"
// @Success 201 {object} util.Response
// @Router /api/mock-tests [post]
func (c *MockTestController) Generate(ctx *gin.Context) {
	var req model.GenerateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.Generate(ctx.Request.Context(), middleware.GetScope(ctx), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, test)
}

// @Summary 获取已保存的模拟试卷
// @Tags 模拟试卷
// @Produce json
// @Param X-Device-ID header string false "设备ID"
// @Success 200 {object} util.Response
// @Router /api/mock-tests [get]
func (c *MockTestController) List(ctx *gin.Context) {
	tests, err := c.Service.List(ctx.Request.Context(), middleware.GetScope(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": tests, "total": len(tests)})
}

// @Summary 获取模拟试卷详情
// @Tags 模拟试卷
// @Produce json
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/mock-tests/{id} [get]
func (c *MockTestController) Get(ctx *gin.Context) {
	test, err := c.Service.Get(ctx.Request.Context(), middleware.GetScope(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// @Summary 导出模拟试卷
// @Description 以纯文本附件形式下载试卷
// @Tags 模拟试卷
// @Produce plain
// @Param id path string true "试卷ID"
// @Success 200 {string} string
// @Router /api/mock-tests/{id}/export [get]
func (c *MockTestController) Export(ctx *gin.Context) {
	filename, text, err := c.Service.Export(ctx.Request.Context(), middleware.GetScope(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, util.MimeTextPlainUTF, []byte(text))
}

// @Summary 删除模拟试卷
// @Tags 模拟试卷
// @Produce json
// @Param id path string true "试卷ID"
// @Success 200 {object} util.Response
// @Router /api/mock-tests/{id} [delete]
func (c *MockTestController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), middleware.GetScope(ctx), id); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": id})
}
