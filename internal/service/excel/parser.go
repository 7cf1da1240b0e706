package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"gradesheets/internal/model"
)

// ErrMalformedRoster 上传文件不是可读的表格，或没有可解析的标识列
var ErrMalformedRoster = errors.New("malformed roster")

// Parser 名单解析器
type Parser struct {
	file   *excelize.File
	fileID string
}

// NewParser 创建解析器
func NewParser() *Parser {
	return &Parser{
		fileID: uuid.New().String(),
	}
}

// LoadFile 加载Excel文件
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("open workbook: %v: %w", err, ErrMalformedRoster)
	}
	p.file = file
	return nil
}

// GetFileID 获取文件ID
func (p *Parser) GetFileID() string {
	return p.fileID
}

// Close 释放工作簿
func (p *Parser) Close() error {
	if p.file == nil {
		return nil
	}
	return p.file.Close()
}

// Roster 读取第一个工作表的 A 列
//
// 第一行视为表头丢弃；A 列为空的行跳过；单元格取原始值，避免数字格式化。
func (p *Parser) Roster() (model.Roster, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", ErrMalformedRoster)
	}

	rows, err := p.file.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %v: %w", sheets[0], err, ErrMalformedRoster)
	}

	if len(rows) <= 1 {
		return nil, fmt.Errorf("sheet %q has no identifiers below the header: %w", sheets[0], ErrMalformedRoster)
	}

	roster := make(model.Roster, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		roster = append(roster, model.NewIdentifier(row[0]))
	}

	if len(roster) == 0 {
		return nil, fmt.Errorf("sheet %q has no identifiers below the header: %w", sheets[0], ErrMalformedRoster)
	}
	return roster, nil
}

// ReadRoster 从上传的表格读取名单；错误信息带上本次上传的文件 ID，便于对照日志
func ReadRoster(r io.Reader) (model.Roster, error) {
	p := NewParser()
	if err := p.LoadFile(r); err != nil {
		return nil, fmt.Errorf("upload %s: %w", p.GetFileID(), err)
	}
	defer p.Close()

	roster, err := p.Roster()
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", p.GetFileID(), err)
	}
	return roster, nil
}
