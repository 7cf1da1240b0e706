package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "gradesheets/internal/api/v1"
	"gradesheets/internal/config"
	"gradesheets/internal/logging"
	"gradesheets/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	httpSrv *http.Server
	history *store.Store
	v1      *v1.Handler
	logger  *zap.Logger
}

// NewServer 创建服务器；启用生成记录时打开数据目录下的 SQLite
func NewServer(cfg *config.AppConfig, logger *zap.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	var history *store.Store
	if cfg.History.Enabled {
		dataDir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return nil, fmt.Errorf("prepare data dir: %w", err)
		}
		history, err = store.Open(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		logger.Info("run history enabled", zap.String("dataDir", dataDir))
	}

	s := &Server{
		router:  gin.New(),
		history: history,
		v1: v1.NewHandler(v1.Options{
			Config:  cfg,
			History: history,
			Logger:  logger,
			Version: version,
		}),
		logger: logger,
	}
	s.router.Use(gin.Recovery(), logging.GinMiddleware(logger))

	s.setupRoutes(devMode)

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	sub, _ := fs.Sub(staticFiles, "dist")

	s.router.GET("/favicon.svg", func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "favicon.svg")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", data)
	})

	index := func(c *gin.Context) {
		data, _ := fs.ReadFile(sub, "index.html")
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(index)
}

// Handler 返回 HTTP 处理器（测试使用）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，阻塞直到 Shutdown
func (s *Server) Run(addr string) error {
	s.httpSrv = &http.Server{Addr: addr, Handler: s.router}
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 停止接收请求并关闭生成记录
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpSrv != nil {
		err = s.httpSrv.Shutdown(ctx)
	}
	if s.history != nil {
		if cerr := s.history.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// History 获取生成记录存储（未启用时为 nil）
func (s *Server) History() *store.Store {
	return s.history
}
