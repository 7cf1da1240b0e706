package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradesheets/internal/service/excel"
)

// DownloadSample 下载示例名单
// GET /api/sample
func (h *Handler) DownloadSample(c *gin.Context) {
	f, err := excel.SampleRoster()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build sample sheet"})
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write sample sheet"})
		return
	}

	c.Header("Content-Disposition", contentDisposition(excel.SampleFileName))
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}
