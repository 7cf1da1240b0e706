package grading

import (
	"fmt"

	"gradesheets/internal/model"
)

// Split 把名单切成 groupCount 个连续片段
//
// len(roster) = q*groupCount + r 时，前 r 组各 q+1 行，其余各 q 行。
// groupCount 大于名单长度时，末尾的组为空。返回的片段是副本，不共享底层数组。
func Split(roster model.Roster, groupCount int) ([]model.Roster, error) {
	if groupCount <= 0 {
		return nil, fmt.Errorf("group count %d: %w", groupCount, ErrInvalidGroupCount)
	}

	q, r := len(roster)/groupCount, len(roster)%groupCount
	groups := make([]model.Roster, 0, groupCount)
	start := 0
	for i := 0; i < groupCount; i++ {
		size := q
		if i < r {
			size++
		}
		part := make(model.Roster, size)
		copy(part, roster[start:start+size])
		groups = append(groups, part)
		start += size
	}
	return groups, nil
}

// Partition 切分名单，并为每一行补上所有标签对应的空白评分格
func Partition(roster model.Roster, groupCount int, labels []model.Label) ([]model.RosterGroup, error) {
	parts, err := Split(roster, groupCount)
	if err != nil {
		return nil, err
	}

	groups := make([]model.RosterGroup, 0, len(parts))
	for i, part := range parts {
		rows := make([]model.GradeRow, 0, len(part))
		for _, id := range part {
			scores := make(map[model.Label]string, len(labels))
			for _, l := range labels {
				scores[l] = ""
			}
			rows = append(rows, model.GradeRow{ID: id, Scores: scores})
		}
		groups = append(groups, model.RosterGroup{
			Index:  i + 1,
			Labels: append([]model.Label(nil), labels...),
			Rows:   rows,
		})
	}
	return groups, nil
}
