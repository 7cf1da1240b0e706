package v1

import (
	"errors"
	"fmt"
	"net/http"

	"gradesheets/internal/service/excel"
	"gradesheets/internal/service/grading"
)

// errFormBounds 表单参数超出允许范围
var errFormBounds = errors.New("value out of range")

// statusFor 把核心错误映射为 HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, excel.ErrMalformedRoster), errors.Is(err, errFormBounds):
		return http.StatusBadRequest
	case errors.Is(err, grading.ErrLabelRangeExceeded), errors.Is(err, grading.ErrInvalidGroupCount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// checkSubQuestions 校验题目数与小题数的表单上限（字母范围由核心校验）
func (h *Handler) checkSubQuestions(counts []int) error {
	if h.limits.MaxQuestions > 0 && len(counts) > h.limits.MaxQuestions {
		return fmt.Errorf("at most %d questions: %w", h.limits.MaxQuestions, errFormBounds)
	}
	for i, c := range counts {
		if c < 0 || (h.limits.MaxSubQuestions > 0 && c > h.limits.MaxSubQuestions) {
			return fmt.Errorf("question %d: sub-questions must be between 0 and %d: %w", i+1, h.limits.MaxSubQuestions, errFormBounds)
		}
	}
	return nil
}

// checkGraders 校验阅卷人数上限（非正数交给核心报 invalid group count）
func (h *Handler) checkGraders(n int) error {
	if h.limits.MaxGraders > 0 && n > h.limits.MaxGraders {
		return fmt.Errorf("at most %d graders: %w", h.limits.MaxGraders, errFormBounds)
	}
	return nil
}
