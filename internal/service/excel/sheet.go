package excel

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"gradesheets/internal/model"
)

const (
	// SheetName 阅卷表工作表名
	SheetName = "Sheet1"
	// IdentifierHeader 标识列表头
	IdentifierHeader = "Identifier"
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

// WriteGradingSheet 为一个阅卷组生成阅卷表
//
// 表头为 Identifier + 标签；每个标识一行，评分格留空；表头和数据区域全部加边框。
func WriteGradingSheet(group model.RosterGroup) (*excelize.File, error) {
	f := excelize.NewFile()

	header := make([]interface{}, 0, len(group.Labels)+1)
	header = append(header, IdentifierHeader)
	for _, l := range group.Labels {
		header = append(header, string(l))
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range group.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(SheetName, cell, identifierCellValue(row.ID)); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
		for j, l := range group.Labels {
			if v := row.Scores[l]; v != "" {
				scoreCell, _ := excelize.CoordinatesToCellName(j+2, i+2)
				if err := f.SetCellValue(SheetName, scoreCell, v); err != nil {
					f.Close()
					return nil, fmt.Errorf("write score %s: %w", scoreCell, err)
				}
			}
		}
	}

	if err := applyBorders(f, len(header), group.Len()); err != nil {
		f.Close()
		return nil, err
	}

	f.SetColWidth(SheetName, "A", "A", 14)
	return f, nil
}

// applyBorders 表头加粗，表头和数据区域加细边框
func applyBorders(f *excelize.File, cols, rows int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: thinBorder,
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Border: thinBorder,
	})
	if err != nil {
		return fmt.Errorf("create body style: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(cols)
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if rows == 0 {
		return nil
	}
	if err := f.SetCellStyle(SheetName, "A2", fmt.Sprintf("%s%d", lastCol, rows+1), bodyStyle); err != nil {
		return fmt.Errorf("style body: %w", err)
	}
	return nil
}

// identifierCellValue 整数标识按数字写入，其余按文本写入
func identifierCellValue(id model.Identifier) interface{} {
	v, ok := id.Numeric()
	if ok && v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return int64(v)
	}
	return id.Raw
}
