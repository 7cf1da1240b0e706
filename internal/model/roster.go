package model

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Label 题目列标签，如 "3" 或 "3b"
type Label string

// Identifier 学生标识（名单中的一个单元格原值）
//
// 语义上是不透明的 token，只有在生成范围标签时才按数字展示。
type Identifier struct {
	Raw string `json:"raw"`
}

// NewIdentifier 从单元格原值创建标识
func NewIdentifier(raw string) Identifier {
	return Identifier{Raw: strings.TrimSpace(raw)}
}

// Numeric 尝试把标识解析为数值
func (id Identifier) Numeric() (float64, bool) {
	v, err := strconv.ParseFloat(id.Raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Display 整数展示形式：整数串按十进制原样规范化（不经浮点，避免长数字失真），
// 其余数值取整（四舍六入五成双），非数值原样返回
func (id Identifier) Display() string {
	if n, ok := new(big.Int).SetString(id.Raw, 10); ok {
		return n.String()
	}
	v, ok := id.Numeric()
	if !ok {
		return id.Raw
	}
	return strconv.FormatFloat(math.RoundToEven(v), 'f', 0, 64)
}

func (id Identifier) String() string {
	return id.Raw
}

// Roster 名单，保持读入顺序，不去重
type Roster []Identifier

// RosterOf 由原始字符串构造名单（测试与 CLI 使用）
func RosterOf(raw ...string) Roster {
	r := make(Roster, 0, len(raw))
	for _, v := range raw {
		r = append(r, NewIdentifier(v))
	}
	return r
}

// GradeRow 阅卷表中的一行：标识 + 每个标签对应的空白评分格
type GradeRow struct {
	ID     Identifier       `json:"id"`
	Scores map[Label]string `json:"scores"`
}

// RosterGroup 分配给一位阅卷人的连续名单片段
type RosterGroup struct {
	Index  int        `json:"index"` // 从 1 开始
	Labels []Label    `json:"labels"`
	Rows   []GradeRow `json:"rows"`
}

// Len 行数
func (g RosterGroup) Len() int {
	return len(g.Rows)
}

// First 第一行的标识
func (g RosterGroup) First() (Identifier, bool) {
	if len(g.Rows) == 0 {
		return Identifier{}, false
	}
	return g.Rows[0].ID, true
}

// Last 最后一行的标识
func (g RosterGroup) Last() (Identifier, bool) {
	if len(g.Rows) == 0 {
		return Identifier{}, false
	}
	return g.Rows[len(g.Rows)-1].ID, true
}

// Identifiers 按顺序返回组内标识
func (g RosterGroup) Identifiers() Roster {
	out := make(Roster, 0, len(g.Rows))
	for _, row := range g.Rows {
		out = append(out, row.ID)
	}
	return out
}
