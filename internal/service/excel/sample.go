package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	// SampleFileName 示例名单的下载文件名
	SampleFileName = "snumber_sample_sheet.xlsx"
	sampleHeader   = "S-number"
)

var sampleIdentifiers = []int64{1234567, 2345678, 3456789}

// SampleRoster 生成示例名单（仅作格式参考）
func SampleRoster() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetCellValue(SheetName, "A1", sampleHeader); err != nil {
		f.Close()
		return nil, err
	}
	for i, id := range sampleIdentifiers {
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", i+2), id); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}
