package repository

import (
	"study_scholar_backend/pkg/kvstore"
)

const DefaultDeviceID = "local"

// Scope 每个操作显式携带的存储上下文，取代浏览器端的全局本地存储
type Scope struct {
	DeviceID string
	Store    kvstore.Store
}

// NewScope 以设备为单位划分键空间
func NewScope(root kvstore.Store, deviceID string) *Scope {
	if deviceID == "" {
		deviceID = DefaultDeviceID
	}
	return &Scope{
		DeviceID: deviceID,
		Store:    kvstore.Namespace(root, "device", deviceID),
	}
}
