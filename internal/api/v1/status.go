package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradesheets/internal/service/grading"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version         string `json:"version"`
	MaxQuestions    int    `json:"maxQuestions"`    // 题目数上限
	MaxSubQuestions int    `json:"maxSubQuestions"` // 表单允许的小题数上限
	MaxLetters      int    `json:"maxLetters"`      // 标签实际可表示的小题数（a-z）
	MaxGraders      int    `json:"maxGraders"`      // 阅卷人数上限
	History         bool   `json:"history"`         // 是否记录生成历史
	PendingFiles    int    `json:"pendingFiles"`    // 等待下载的文件数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Version:         h.version,
		MaxQuestions:    h.limits.MaxQuestions,
		MaxSubQuestions: h.limits.MaxSubQuestions,
		MaxLetters:      grading.MaxSubQuestions,
		MaxGraders:      h.limits.MaxGraders,
		History:         h.history != nil,
		PendingFiles:    h.downloads.len(),
	})
}
