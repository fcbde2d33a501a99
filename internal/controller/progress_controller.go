package controller

import (
	"study_scholar_backend/internal/middleware"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/service"
	"study_scholar_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

type addPointsRequest struct {
	Points *int `json:"points" binding:"required"`
}

type addBadgeRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary 获取学习进度
// @Tags 学习进度
// @Produce json
// @Param X-Device-ID header string false "设备ID"
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) Get(ctx *gin.Context) {
	progress, err := c.Service.Get(ctx.Request.Context(), middleware.GetScope(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 更新学习进度
// @Description 浅合并，未提供的字段保持不变
// @Tags 学习进度
// @Accept json
// @Produce json
// @Param body body model.ProgressPatch true "待更新字段"
// @Success 200 {object} util.Response
// @Router /api/progress [patch]
func (c *ProgressController) Update(ctx *gin.Context) {
	var patch model.ProgressPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.Update(ctx.Request.Context(), middleware.GetScope(ctx), patch)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 记录今日活跃
// @Tags 学习进度
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/progress/streak [post]
func (c *ProgressController) UpdateStreak(ctx *gin.Context) {
	progress, err := c.Service.UpdateStreak(ctx.Request.Context(), middleware.GetScope(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 增加积分
// @Tags 学习进度
// @Accept json
// @Produce json
// @Param body body addPointsRequest true "积分"
// @Success 200 {object} util.Response
// @Router /api/progress/points [post]
func (c *ProgressController) AddPoints(ctx *gin.Context) {
	var req addPointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.AddPoints(ctx.Request.Context(), middleware.GetScope(ctx), *req.Points)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// @Summary 授予徽章
// @Description 已拥有的徽章不会重复添加
// @Tags 学习进度
// @Accept json
// @Produce json
// @Param body body addBadgeRequest true "徽章名"
// @Success 200 {object} util.Response
// @Router /api/progress/badges [post]
func (c *ProgressController) AddBadge(ctx *gin.Context) {
	var req addBadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.AddBadge(ctx.Request.Context(), middleware.GetScope(ctx), req.Name)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
