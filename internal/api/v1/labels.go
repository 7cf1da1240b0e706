package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradesheets/internal/model"
	"gradesheets/internal/service/grading"
)

// LabelsRequest 标签预览请求
type LabelsRequest struct {
	SubQuestions []int `json:"subQuestions"`
}

// LabelsResponse 标签预览响应
type LabelsResponse struct {
	Labels []model.Label `json:"labels"`
}

// PreviewLabels 预览阅卷表的题目列
// POST /api/labels
func (h *Handler) PreviewLabels(c *gin.Context) {
	var req LabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.checkSubQuestions(req.SubQuestions); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	labels, err := grading.ComputeLabels(req.SubQuestions)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, LabelsResponse{Labels: labels})
}
