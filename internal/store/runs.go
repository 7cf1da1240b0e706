package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run 一次成功生成的记录（不含名单内容）
type Run struct {
	ID         string    `json:"id"`
	CourseName string    `json:"courseName"`
	ExamName   string    `json:"examName"`
	RosterSize int       `json:"rosterSize"`
	Graders    int       `json:"graders"`
	LabelCount int       `json:"labelCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RecordRun 写入一条生成记录，返回记录 ID
func (s *Store) RecordRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO grading_runs (id, course_name, exam_name, roster_size, graders, label_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CourseName, run.ExamName, run.RosterSize, run.Graders, run.LabelCount, run.CreatedAt.UnixMilli())
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return run.ID, nil
}

// ListRuns 按时间倒序返回最近 limit 条记录
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, course_name, exam_name, roster_size, graders, label_count, created_at
		FROM grading_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		var r Run
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.CourseName, &r.ExamName, &r.RosterSize, &r.Graders, &r.LabelCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = time.UnixMilli(createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// PruneRuns 只保留最近 keep 条记录
func (s *Store) PruneRuns(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM grading_runs
		WHERE id NOT IN (
			SELECT id FROM grading_runs ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune runs: %w", err)
	}
	return nil
}
