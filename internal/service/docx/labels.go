package docx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"gradesheets/internal/model"
	"gradesheets/internal/service/grading"
)

// LabelStyle 标签文档字体
type LabelStyle struct {
	Font   string
	SizePt int
}

// DefaultLabelStyle 默认 Calibri 42 磅
func DefaultLabelStyle() LabelStyle {
	return LabelStyle{Font: "Calibri", SizePt: 42}
}

// WriteLabels 生成阅卷范围标签文档：每组一段，段后分页
func WriteLabels(w io.Writer, groups []model.RosterGroup, style LabelStyle) error {
	if style.Font == "" || style.SizePt <= 0 {
		style = DefaultLabelStyle()
	}
	// docx 字号单位为半磅
	size := strconv.Itoa(style.SizePt * 2)

	doc := docx.New().WithDefaultTheme()
	for _, g := range groups {
		doc.AddParagraph().
			AddText(grading.RangeLabel(g)).
			Size(size).
			Font(style.Font, style.Font, style.Font, "")
		doc.AddParagraph().AddPageBreaks()
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write labels document: %w", err)
	}
	return nil
}

// ReadLabels 读取文档中的非空文本段落（忽略分页段）
func ReadLabels(r io.ReaderAt, size int64) ([]string, error) {
	doc, err := docx.Parse(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse labels document: %w", err)
	}

	var out []string
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(p.String()); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}
