package middleware

import (
	"regexp"
	"study_scholar_backend/internal/repository"
	"study_scholar_backend/pkg/kvstore"

	"github.com/gin-gonic/gin"
)

const (
	DeviceHeader = "X-Device-ID"
	scopeKey     = "scope"
)

var deviceIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ScopeMiddleware 按设备划分存储，请求头缺失时使用默认设备
func ScopeMiddleware(root kvstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceHeader)
		if deviceID != "" && !deviceIDPattern.MatchString(deviceID) {
			c.AbortWithStatusJSON(400, gin.H{"code": 400, "message": "invalid " + DeviceHeader + " header"})
			return
		}
		c.Set(scopeKey, repository.NewScope(root, deviceID))
		c.Next()
	}
}

func GetScope(c *gin.Context) *repository.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if scope, ok := v.(*repository.Scope); ok {
			return scope
		}
	}
	return nil
}
