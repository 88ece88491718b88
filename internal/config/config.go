package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Source SourceConfig `toml:"source"`
	Soop   SoopConfig   `toml:"soop"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// SourceConfig 数据源配置
type SourceConfig struct {
	MainURL        string `toml:"main_url"`        // YXL_통합.xlsx
	SynergyURL     string `toml:"synergy_url"`     // 시너지표.xlsx
	RefreshMinutes int    `toml:"refresh_minutes"` // 自动刷新周期
	FetchTimeoutS  int    `toml:"fetch_timeout_s"`
}

// SoopConfig SOOP 检索配置
type SoopConfig struct {
	BaseURL        string            `toml:"base_url"`
	Workers        int               `toml:"workers"`          // 直播补充并发上限
	RequestDelayMS int               `toml:"request_delay_ms"` // 单 worker 请求间隔
	IdentityTTLH   int               `toml:"identity_ttl_h"`   // 身份缓存有效期（小时）
	LiveTTLS       int               `toml:"live_ttl_s"`       // 直播状态缓存（秒）
	Overrides      map[string]string `toml:"overrides"`        // 展示名 -> user_id 静态覆盖
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20261,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Source: SourceConfig{
			MainURL:        "https://yxl.info/YXL_%ED%86%B5%ED%95%A9.xlsx",
			SynergyURL:     "https://yxl.info/%EC%8B%9C%EB%84%88%EC%A7%80%ED%91%9C.xlsx",
			RefreshMinutes: 180,
			FetchTimeoutS:  30,
		},
		Soop: SoopConfig{
			BaseURL:        "https://sch.sooplive.co.kr",
			Workers:        3,
			RequestDelayMS: 120,
			IdentityTTLH:   72,
			LiveTTLS:       90,
			Overrides:      map[string]string{},
		},
	}
}

// RefreshInterval 刷新周期
func (c *AppConfig) RefreshInterval() time.Duration {
	return time.Duration(c.Source.RefreshMinutes) * time.Minute
}

// FetchTimeout 下载超时
func (c *AppConfig) FetchTimeout() time.Duration {
	return time.Duration(c.Source.FetchTimeoutS) * time.Second
}

// IdentityTTL 身份缓存有效期
func (c *AppConfig) IdentityTTL() time.Duration {
	return time.Duration(c.Soop.IdentityTTLH) * time.Hour
}

// LiveTTL 直播状态缓存有效期
func (c *AppConfig) LiveTTL() time.Duration {
	return time.Duration(c.Soop.LiveTTLS) * time.Second
}

// RequestDelay 单 worker 请求间隔
func (c *AppConfig) RequestDelay() time.Duration {
	return time.Duration(c.Soop.RequestDelayMS) * time.Millisecond
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

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("YXL_MAIN_URL"); v != "" {
		config.Source.MainURL = v
	}
	if v := os.Getenv("YXL_SYNERGY_URL"); v != "" {
		config.Source.SynergyURL = v
	}
	if v := os.Getenv("YXL_SOOP_BASE_URL"); v != "" {
		config.Soop.BaseURL = v
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录存在
// 数据目录位于可执行文件同目录下
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
