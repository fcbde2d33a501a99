// Package kvstore 集合文档的键值存储。值是序列化后的 JSON 字符串，键不存在时通过 ok 返回而不是错误
package kvstore

import (
	"context"
	"errors"
	"strings"
)

var ErrClosed = errors.New("kvstore: store closed")

type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Pinger 支持连通性检查的后端
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping 后端不支持检查时直接返回 nil
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

type namespaced struct {
	prefix string
	inner  Store
}

// Namespace 返回带前缀的视图，各段以 ':' 连接
func Namespace(s Store, parts ...string) Store {
	prefix := strings.Join(parts, ":")
	if prefix == "" {
		return s
	}
	if n, ok := s.(*namespaced); ok {
		return &namespaced{prefix: n.prefix + prefix + ":", inner: n.inner}
	}
	return &namespaced{prefix: prefix + ":", inner: s}
}

func (n *namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Ping(ctx context.Context) error {
	return Ping(ctx, n.inner)
}
