package util

import (
	"encoding/base64"
	"errors"
	"mime"
	"path/filepath"
	"strings"
)

var ErrInvalidDataURL = errors.New("invalid data url")

// NormalizeMimeType 去掉参数并转小写，如 "Application/PDF; x=y" -> "application/pdf"
func NormalizeMimeType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

// IsAllowedType 判断 MIME 类型是否在白名单中
func IsAllowedType(mimeType string, allowed []string) bool {
	mimeType = NormalizeMimeType(mimeType)
	for _, a := range allowed {
		if mimeType == a {
			return true
		}
	}
	return false
}

// TitleFromFilename 去掉最后一个扩展名
func TitleFromFilename(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// EncodeDataURL 将二进制内容编码为 data URL
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL 解析 base64 data URL，返回 MIME 类型和内容
func DecodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, ErrInvalidDataURL
	}
	header, payload, found := strings.Cut(dataURL[len("data:"):], ",")
	if !found || !strings.HasSuffix(header, ";base64") {
		return "", nil, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrInvalidDataURL
	}
	mimeType := strings.TrimSuffix(header, ";base64")
	if mimeType == "" {
		mimeType = MimeOctetStream
	}
	return mimeType, data, nil
}
