package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gradesheets/internal/exporter"
	"gradesheets/internal/model"
	"gradesheets/internal/service/excel"
	"gradesheets/internal/service/grading"
	"gradesheets/internal/store"
)

// GenerateForm 生成表单（multipart，文件字段为 file）
type GenerateForm struct {
	CourseName   string `form:"courseName" binding:"max=200"`
	ExamName     string `form:"examName" binding:"max=200"`
	SubQuestions string `form:"subQuestions"` // 逗号分隔，如 "2,0,3"
	Graders      string `form:"graders"`      // 未填写或空白时为 1
}

// FileLink 下载链接
type FileLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// GroupSummary 阅卷组摘要
type GroupSummary struct {
	Index int    `json:"index"`
	Size  int    `json:"size"`
	Label string `json:"label"`
}

// GenerateResponse 生成响应；Ready=false 时只返回缺失字段
type GenerateResponse struct {
	Ready   bool           `json:"ready"`
	Missing []string       `json:"missing,omitempty"`
	RunID   string         `json:"runId,omitempty"`
	Sheets  *FileLink      `json:"sheets,omitempty"`
	Labels  *FileLink      `json:"labels,omitempty"`
	Columns []model.Label  `json:"columns,omitempty"`
	Groups  []GroupSummary `json:"groups,omitempty"`
}

type progressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Generate 生成阅卷表压缩包和范围标签文档
// POST /api/generate
func (h *Handler) Generate(c *gin.Context) {
	run, err := h.bindRun(c)
	if err != nil {
		h.logger.Warn("invalid generate request", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if missing := run.Missing(); len(missing) > 0 {
		c.JSON(http.StatusOK, GenerateResponse{Ready: false, Missing: missing})
		return
	}

	bundle, err := h.exporter.Export(exporter.ExportOptions{Run: run})
	if err != nil {
		h.logger.Warn("generate failed", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.publish(c, run, bundle))
}

// GenerateStream 生成阅卷材料（SSE 进度 + 完成后提供下载地址）
// POST /api/generate/stream
func (h *Handler) GenerateStream(c *gin.Context) {
	run, err := h.bindRun(c)
	if err != nil {
		h.logger.Warn("invalid generate request", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if missing := run.Missing(); len(missing) > 0 {
		c.JSON(http.StatusOK, GenerateResponse{Ready: false, Missing: missing})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event progressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(progressEvent{
		Type:    "start",
		Message: "generation started",
		Data: map[string]any{
			"graders":   run.Graders,
			"questions": len(run.SubQuestions),
		},
		Timestamp: time.Now(),
	})

	lastPercent := -1
	bundle, err := h.exporter.Export(exporter.ExportOptions{
		Run: run,
		Progress: func(p exporter.ProgressEvent) {
			if p.Percent == lastPercent {
				return
			}
			lastPercent = p.Percent
			send(progressEvent{
				Type:      "progress",
				Message:   p.Stage,
				Data:      map[string]any{"percent": p.Percent},
				Timestamp: time.Now(),
			})
		},
	})
	if err != nil {
		h.logger.Warn("generate failed", zap.Error(err))
		send(progressEvent{
			Type:      "error",
			Message:   err.Error(),
			Data:      map[string]any{"status": statusFor(err)},
			Timestamp: time.Now(),
		})
		return
	}

	send(progressEvent{
		Type:      "done",
		Message:   "generation finished",
		Data:      h.publish(c, run, bundle),
		Timestamp: time.Now(),
	})
}

// bindRun 解析表单与上传名单
func (h *Handler) bindRun(c *gin.Context) (model.GradingRun, error) {
	var run model.GradingRun

	if h.limits.MaxUploadMB > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.limits.MaxUploadMB<<20)
	}

	var form GenerateForm
	if err := c.ShouldBind(&form); err != nil {
		return run, fmt.Errorf("invalid form: %v: %w", err, errFormBounds)
	}

	subq, err := parseSubQuestions(form.SubQuestions)
	if err != nil {
		return run, err
	}
	if err := h.checkSubQuestions(subq); err != nil {
		return run, err
	}

	graders, err := parseGraders(form.Graders)
	if err != nil {
		return run, err
	}
	if err := h.checkGraders(graders); err != nil {
		return run, err
	}

	run = model.GradingRun{
		Roster:       model.None[model.Roster](),
		CourseName:   model.Text(form.CourseName),
		ExamName:     model.Text(form.ExamName),
		SubQuestions: subq,
		Graders:      graders,
	}

	fh, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return run, nil
	case err != nil:
		return run, fmt.Errorf("read upload: %v: %w", err, excel.ErrMalformedRoster)
	}

	f, err := fh.Open()
	if err != nil {
		return run, fmt.Errorf("open upload: %v: %w", err, excel.ErrMalformedRoster)
	}
	defer f.Close()

	roster, err := excel.ReadRoster(f)
	if err != nil {
		return run, err
	}
	run.Roster = model.Some(roster)
	return run, nil
}

// publish 登记下载项、写入生成记录并构造响应
func (h *Handler) publish(c *gin.Context, run model.GradingRun, bundle *exporter.Bundle) GenerateResponse {
	base := downloadBase(c.FullPath())
	sheetsToken := h.downloads.put(bundle.SheetsName, contentTypeZIP, bundle.Sheets, h.ttl)
	labelsToken := h.downloads.put(bundle.LabelsName, contentTypeDOCX, bundle.LabelsDoc, h.ttl)

	resp := GenerateResponse{
		Ready:   true,
		Sheets:  &FileLink{Name: bundle.SheetsName, URL: base + "/download/" + sheetsToken},
		Labels:  &FileLink{Name: bundle.LabelsName, URL: base + "/download/" + labelsToken},
		Columns: bundle.Columns,
		Groups:  make([]GroupSummary, 0, len(bundle.Groups)),
	}
	for _, g := range bundle.Groups {
		resp.Groups = append(resp.Groups, GroupSummary{
			Index: g.Index,
			Size:  g.Len(),
			Label: grading.RangeLabel(g),
		})
	}

	roster, _ := run.Roster.Get()
	if h.history != nil {
		id, err := h.history.RecordRun(store.Run{
			CourseName: run.CourseName.OrElse(""),
			ExamName:   run.ExamName.OrElse(""),
			RosterSize: len(roster),
			Graders:    run.Graders,
			LabelCount: len(bundle.Columns),
		})
		if err != nil {
			h.logger.Warn("record run failed", zap.Error(err))
		} else {
			resp.RunID = id
			if err := h.history.PruneRuns(h.keep); err != nil {
				h.logger.Warn("prune runs failed", zap.Error(err))
			}
		}
	}

	h.logger.Info("grading materials generated",
		zap.String("prefix", bundle.Prefix),
		zap.Int("roster", len(roster)),
		zap.Int("graders", run.Graders),
		zap.Int("columns", len(bundle.Columns)))
	return resp
}

// downloadBase 由当前路由推导 API 前缀，如 /api/generate → /api
func downloadBase(fullPath string) string {
	p := strings.TrimSuffix(fullPath, "/stream")
	return strings.TrimSuffix(p, "/generate")
}

// parseSubQuestions 解析 "2,0,3" 形式的小题数列表
func parseSubQuestions(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("question %d: %q is not a whole number: %w", i+1, p, errFormBounds)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseGraders 解析阅卷人数，空值取默认 1
func parseGraders(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("graders: %q is not a whole number: %w", raw, errFormBounds)
	}
	return n, nil
}
