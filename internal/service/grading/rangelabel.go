package grading

import (
	"fmt"

	"gradesheets/internal/model"
)

// RangeLabel 阅卷范围标签，如 "2. S1234567 - S3456789"
func RangeLabel(group model.RosterGroup) string {
	first, ok := group.First()
	if !ok {
		return fmt.Sprintf("%d. (no students)", group.Index)
	}
	last, _ := group.Last()
	return fmt.Sprintf("%d. S%s - S%s", group.Index, first.Display(), last.Display())
}

// RangeLabels 按组顺序生成所有范围标签
func RangeLabels(groups []model.RosterGroup) []string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, RangeLabel(g))
	}
	return out
}
