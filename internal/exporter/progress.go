package exporter

// ProgressEvent 生成进度事件（用于 UI 展示）
type ProgressEvent struct {
	Percent int
	Stage   string
}

const (
	stageLabels    = "computing question labels"
	stagePartition = "splitting roster"
	stageArchive   = "packaging grading sheets"
	stageDocument  = "writing grading labels"
	stageDone      = "done"
)

// 阅卷表渲染占用的进度区间
const (
	sheetsStartPercent = 10
	sheetsEndPercent   = 80
)

func reportProgress(progress func(ProgressEvent), percent int, stage string) {
	if progress == nil {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	progress(ProgressEvent{
		Percent: percent,
		Stage:   stage,
	})
}

// sheetPercent 第 done 张（共 total 张）阅卷表完成时的进度
func sheetPercent(done, total int) int {
	if total <= 0 {
		return sheetsEndPercent
	}
	return sheetsStartPercent + (sheetsEndPercent-sheetsStartPercent)*done/total
}
