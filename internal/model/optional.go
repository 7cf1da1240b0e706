package model

import "strings"

// Optional 显式的"有/无"值
type Optional[T any] struct {
	value   T
	present bool
}

// Some 构造有值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None 构造空 Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get 返回值以及是否存在
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present 是否存在
func (o Optional[T]) Present() bool {
	return o.present
}

// OrElse 不存在时返回 fallback
func (o Optional[T]) OrElse(fallback T) T {
	if !o.present {
		return fallback
	}
	return o.value
}

// Text 表单文本字段：去除首尾空白后为空即视为未填写
func Text(s string) Optional[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return None[string]()
	}
	return Some(s)
}
