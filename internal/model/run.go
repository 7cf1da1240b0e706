package model

// 必填字段名（用于提示用户补全表单）
const (
	FieldRoster     = "roster"
	FieldCourseName = "courseName"
	FieldExamName   = "examName"
)

// GradingRun 一次生成请求的全部输入，不具备请求之外的身份
type GradingRun struct {
	Roster       Optional[Roster]
	CourseName   Optional[string]
	ExamName     Optional[string]
	SubQuestions []int // 每道题的小题数，下标 0 对应第 1 题
	Graders      int
}

// Missing 返回尚未提供的必填字段；为空表示可以生成
func (r GradingRun) Missing() []string {
	var missing []string
	if !r.Roster.Present() {
		missing = append(missing, FieldRoster)
	}
	if !r.CourseName.Present() {
		missing = append(missing, FieldCourseName)
	}
	if !r.ExamName.Present() {
		missing = append(missing, FieldExamName)
	}
	return missing
}

// Ready 所有必填字段是否齐全
func (r GradingRun) Ready() bool {
	return len(r.Missing()) == 0
}

// Prefix 输出文件名前缀 "<course>_<exam>_"
func (r GradingRun) Prefix() string {
	return r.CourseName.OrElse("") + "_" + r.ExamName.OrElse("") + "_"
}
