package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gradesheets/internal/config"
	"gradesheets/internal/exporter"
	"gradesheets/internal/service/docx"
	"gradesheets/internal/store"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	contentTypeZIP  = "application/zip"
)

// Options 处理器依赖
type Options struct {
	Config  *config.AppConfig
	History *store.Store // 为 nil 时不记录生成历史
	Logger  *zap.Logger
	Version string
}

// Handler V1 API 处理器
type Handler struct {
	exporter  *exporter.Exporter
	limits    config.LimitsConfig
	ttl       time.Duration
	keep      int
	history   *store.Store
	downloads *downloadStore
	logger    *zap.Logger
	version   string
}

// NewHandler 创建 V1 API 处理器
func NewHandler(opts Options) *Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ttl := time.Duration(cfg.Downloads.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return &Handler{
		exporter: exporter.NewExporter(docx.LabelStyle{
			Font:   cfg.Labels.Font,
			SizePt: cfg.Labels.SizePt,
		}),
		limits:    cfg.Limits,
		ttl:       ttl,
		keep:      cfg.History.Keep,
		history:   opts.History,
		downloads: newDownloadStore(),
		logger:    logger,
		version:   opts.Version,
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 示例名单
	router.GET("/sample", h.DownloadSample)

	// 标签预览
	router.POST("/labels", h.PreviewLabels)

	// 生成阅卷材料
	router.POST("/generate", h.Generate)
	router.POST("/generate/stream", h.GenerateStream)
	router.GET("/download/:token", h.Download)

	// 生成记录
	router.GET("/runs", h.ListRuns)
}
