package util

import (
	"errors"
	"net/http"
	"study_scholar_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.String("path", c.FullPath()), zap.Error(err))
	InternalServerError(c)
}

// RespondError 按错误类型映射状态码
func RespondError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		ioErr         *IOError
		generationErr *GenerationError
	)

	switch {
	case errors.As(err, &validationErr):
		BadRequest(c, validationErr.Error())
	case errors.Is(err, ErrNotFound):
		NotFound(c)
	case errors.As(err, &generationErr):
		logger.Log.Warn("generation failed", zap.Error(err))
		Error(c, http.StatusBadGateway, generationErr.Message)
	case errors.As(err, &ioErr):
		logger.Log.Error("io failure", zap.Error(err))
		Error(c, http.StatusInternalServerError, ioErr.Error())
	default:
		LogInternalError(c, err)
	}
}
