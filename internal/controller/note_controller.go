package controller

import (
	"fmt"
	"net/http"
	"study_scholar_backend/internal/middleware"
	"study_scholar_backend/internal/service"
	"study_scholar_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type NoteController struct {
	Service *service.NoteService
}

func NewNoteController(svc *service.NoteService) *NoteController {
	return &NoteController{Service: svc}
}

// @Summary 上传笔记
// @Description 支持 PDF、Word、Excel、PowerPoint
// @Tags 笔记
// @Accept multipart/form-data
// @Produce json
// @Param X-Device-ID header string false "设备ID"
// @Param file formData file true "笔记文件"
// @Success 201 {object} util.Response
// @Router /api/notes [post]
func (c *NoteController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.RespondError(ctx, &util.IOError{Op: "open upload", Err: err})
		return
	}
	defer file.Close()

	note, err := c.Service.Ingest(ctx.Request.Context(), middleware.GetScope(ctx), service.NoteUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, note.Summary())
}

// @Summary 笔记列表
// @Tags 笔记
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/notes [get]
func (c *NoteController) List(ctx *gin.Context) {
	notes, err := c.Service.List(ctx.Request.Context(), middleware.GetScope(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"items": notes, "total": len(notes)})
}

// @Summary 笔记详情
// @Tags 笔记
// @Produce json
// @Param id path string true "笔记ID"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [get]
func (c *NoteController) Get(ctx *gin.Context) {
	note, err := c.Service.Get(ctx.Request.Context(), middleware.GetScope(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, note)
}

// @Summary 下载笔记原文件
// @Tags 笔记
// @Produce octet-stream
// @Param id path string true "笔记ID"
// @Success 200 {file} file
// @Router /api/notes/{id}/download [get]
func (c *NoteController) Download(ctx *gin.Context) {
	fileName, mimeType, data, err := c.Service.Download(ctx.Request.Context(), middleware.GetScope(ctx), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, mimeType, data)
}

// @Summary 删除笔记
// @Tags 笔记
// @Produce json
// @Param id path string true "笔记ID"
// @Success 200 {object} util.Response
// @Router /api/notes/{id} [delete]
func (c *NoteController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.Service.Delete(ctx.Request.Context(), middleware.GetScope(ctx), id); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": id})
}
