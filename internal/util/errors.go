package util

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")
)

// ValidationError 用户输入不满足前置条件，不会产生任何状态修改
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IOError 本地读取文件失败
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// GenerationError 远程出卷服务不可达、返回失败或返回了无法识别的数据
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func NewGenerationError(message string, err error) *GenerationError {
	return &GenerationError{Message: message, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsGeneration(err error) bool {
	var g *GenerationError
	return errors.As(err, &g)
}

func IsIO(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}
