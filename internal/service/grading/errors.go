package grading

import "errors"

var (
	// ErrLabelRangeExceeded 小题数超出 a-z 可表示范围
	ErrLabelRangeExceeded = errors.New("label range exceeded")
	// ErrInvalidGroupCount 分组数必须为正
	ErrInvalidGroupCount = errors.New("invalid group count")
)
