package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server    ServerConfig    `toml:"server"`
	Data      DataConfig      `toml:"data"`
	Limits    LimitsConfig    `toml:"limits"`
	Labels    LabelsConfig    `toml:"labels"`
	Downloads DownloadsConfig `toml:"downloads"`
	History   HistoryConfig   `toml:"history"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// LimitsConfig 表单输入上限
type LimitsConfig struct {
	MaxQuestions    int   `toml:"max_questions"`
	MaxSubQuestions int   `toml:"max_sub_questions"`
	MaxGraders      int   `toml:"max_graders"`
	MaxUploadMB     int64 `toml:"max_upload_mb"`
}

// LabelsConfig 范围标签文档字体
type LabelsConfig struct {
	Font   string `toml:"font"`
	SizePt int    `toml:"size_pt"`
}

// DownloadsConfig 生成文件的下载链接配置
type DownloadsConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

// HistoryConfig 生成记录（默认关闭，每次生成互不依赖）
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	Keep    int  `toml:"keep"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // json | console
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Limits: LimitsConfig{
			MaxQuestions:    100,
			MaxSubQuestions: 100,
			MaxGraders:      50,
			MaxUploadMB:     10,
		},
		Labels: LabelsConfig{
			Font:   "Calibri",
			SizePt: 42,
		},
		Downloads: DownloadsConfig{
			TTLMinutes: 10,
		},
		History: HistoryConfig{
			Enabled: false,
			Keep:    50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 加载配置并返回元信息
//
// path 为空时使用可执行文件同目录下的 config.toml；文件不存在时使用默认配置。
// 之后依次应用 .env 与 GRADESHEETS_* 环境变量覆盖。
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	// .env 只补充尚未设置的环境变量
	_ = godotenv.Load()
	if applyEnv(config) {
		info.PortSpecified = true
	}

	return config, info, nil
}

// LoadConfig 加载配置
func LoadConfig(path string) (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo(path)
	return config, err
}

// applyEnv 环境变量覆盖（用于部署 / 本地运行），返回是否覆盖了端口
func applyEnv(config *AppConfig) (portSet bool) {
	if v, ok := envInt("GRADESHEETS_PORT"); ok {
		config.Server.Port = v
		portSet = true
	}
	if v := os.Getenv("GRADESHEETS_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v, ok := envBool("GRADESHEETS_HISTORY"); ok {
		config.History.Enabled = v
	}
	if v := os.Getenv("GRADESHEETS_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv("GRADESHEETS_LOG_FORMAT"); v != "" {
		config.Log.Format = v
	}
	if v := os.Getenv("GRADESHEETS_LABEL_FONT"); v != "" {
		config.Labels.Font = v
	}
	return portSet
}

func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// SaveConfig 保存配置
func SaveConfig(path string, config *AppConfig) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir 确保数据目录存在；相对路径基于可执行文件所在目录
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
