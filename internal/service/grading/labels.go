package grading

import (
	"fmt"
	"strconv"

	"gradesheets/internal/model"
)

// MaxSubQuestions 单题最多小题数（字母 a-z）
const MaxSubQuestions = 26

// LetterFor 小题序号转字母：1→'a' … 26→'z'
func LetterFor(index int) (rune, error) {
	if index < 1 || index > MaxSubQuestions {
		return 0, fmt.Errorf("sub-question %d: %w", index, ErrLabelRangeExceeded)
	}
	return rune('a' + index - 1), nil
}

// ComputeLabels 根据每道题的小题数生成列标签
//
// counts[i] == 0 时生成 "<i+1>"；否则生成 "<i+1>a" … 依次到第 counts[i] 个字母。
func ComputeLabels(counts []int) ([]model.Label, error) {
	total := 0
	for i, c := range counts {
		if c < 0 || c > MaxSubQuestions {
			return nil, fmt.Errorf("question %d has %d sub-questions (max %d): %w",
				i+1, c, MaxSubQuestions, ErrLabelRangeExceeded)
		}
		total += max(c, 1)
	}

	labels := make([]model.Label, 0, total)
	for i, c := range counts {
		q := strconv.Itoa(i + 1)
		if c == 0 {
			labels = append(labels, model.Label(q))
			continue
		}
		for j := 1; j <= c; j++ {
			letter, err := LetterFor(j)
			if err != nil {
				return nil, err
			}
			labels = append(labels, model.Label(q+string(letter)))
		}
	}
	return labels, nil
}
