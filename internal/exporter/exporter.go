package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gradesheets/internal/model"
	"gradesheets/internal/service/archive"
	"gradesheets/internal/service/docx"
	"gradesheets/internal/service/excel"
	"gradesheets/internal/service/grading"
)

// ErrRunIncomplete 必填输入未齐全时拒绝生成
var ErrRunIncomplete = errors.New("grading run incomplete")

// Exporter 阅卷材料生成器
//
// 一次 Export 完成：计算标签 → 切分名单 → 每组一张阅卷表 → 打包 → 范围标签文档。
// 任一步失败整体失败，不返回部分结果。
type Exporter struct {
	labelStyle docx.LabelStyle
}

// NewExporter 创建生成器
func NewExporter(labelStyle docx.LabelStyle) *Exporter {
	return &Exporter{labelStyle: labelStyle}
}

// ExportOptions 生成选项
type ExportOptions struct {
	Run      model.GradingRun
	Progress func(ProgressEvent)
}

// Bundle 生成结果
type Bundle struct {
	Prefix     string
	SheetsName string
	Sheets     []byte
	LabelsName string
	LabelsDoc  []byte
	Columns    []model.Label
	Groups     []model.RosterGroup
}

// Export 生成阅卷表压缩包和范围标签文档
func (e *Exporter) Export(opts ExportOptions) (*Bundle, error) {
	run := opts.Run
	if missing := run.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), ErrRunIncomplete)
	}
	roster, _ := run.Roster.Get()

	reportProgress(opts.Progress, 0, stageLabels)
	columns, err := grading.ComputeLabels(run.SubQuestions)
	if err != nil {
		return nil, err
	}

	reportProgress(opts.Progress, 5, stagePartition)
	groups, err := grading.Partition(roster, run.Graders, columns)
	if err != nil {
		return nil, err
	}

	files := make([]archive.File, 0, len(groups))
	for i, g := range groups {
		data, err := renderSheet(g)
		if err != nil {
			return nil, fmt.Errorf("grading sheet %d: %w", g.Index, err)
		}
		files = append(files, archive.File{Name: archive.SheetName(g.Index), Data: data})
		reportProgress(opts.Progress, sheetPercent(i+1, len(groups)),
			fmt.Sprintf("grading sheet %d/%d", i+1, len(groups)))
	}

	reportProgress(opts.Progress, 85, stageArchive)
	sheets, err := archive.Bundle(files)
	if err != nil {
		return nil, err
	}

	reportProgress(opts.Progress, 90, stageDocument)
	var doc bytes.Buffer
	if err := docx.WriteLabels(&doc, groups, e.labelStyle); err != nil {
		return nil, err
	}

	prefix := run.Prefix()
	reportProgress(opts.Progress, 100, stageDone)
	return &Bundle{
		Prefix:     prefix,
		SheetsName: prefix + "grading_sheets.zip",
		Sheets:     sheets,
		LabelsName: prefix + "grading_labels.docx",
		LabelsDoc:  doc.Bytes(),
		Columns:    columns,
		Groups:     groups,
	}, nil
}

func renderSheet(g model.RosterGroup) ([]byte, error) {
	f, err := excel.WriteGradingSheet(g)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
