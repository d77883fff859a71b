package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all settings of the slip renderer.
type Config struct {
	Log      LogConfig
	Slip     SlipConfig
	Render   RenderConfig
	Pipeline PipelineConfig
	Output   OutputConfig
	Storage  StorageConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// SlipConfig holds the branding template and its variables.
type SlipConfig struct {
	Template string            // 模板文件路径，空则使用内置品牌行
	Vars     map[string]string // ${name} 占位符的值
}

// RenderConfig holds optional font overrides.
type RenderConfig struct {
	RegularFont string // TTF path
	BoldFont    string // TTF path
}

// PipelineConfig holds driver settings.
type PipelineConfig struct {
	StagingDir string // 非空时三段标记会先落盘再读回
	Validate   bool   // 生成前校验订单（仅记录告警）
}

// OutputConfig holds the local PNG sink settings.
type OutputConfig struct {
	Dir string
}

// StorageConfig holds S3-compatible archive settings.
type StorageConfig struct {
	Enabled      bool
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	Prefix       string
	UseSSL       bool
	UsePathStyle bool
}

// Load reads configuration. Priority (highest to lowest):
// 1. Environment variables with SLIP_ prefix (e.g., SLIP_STORAGE_BUCKET)
// 2. the config file: path if given, otherwise slip.{toml,yaml,json} in . or ./config
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("slip")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	v.SetEnvPrefix("SLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Slip: SlipConfig{
			Template: v.GetString("slip.template"),
			Vars:     v.GetStringMapString("slip.vars"),
		},
		Render: RenderConfig{
			RegularFont: v.GetString("render.regular_font"),
			BoldFont:    v.GetString("render.bold_font"),
		},
		Pipeline: PipelineConfig{
			StagingDir: v.GetString("pipeline.staging_dir"),
			Validate:   v.GetBool("pipeline.validate"),
		},
		Output: OutputConfig{
			Dir: v.GetString("output.dir"),
		},
		Storage: StorageConfig{
			Enabled:      v.GetBool("storage.enabled"),
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			Bucket:       v.GetString("storage.bucket"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			Prefix:       v.GetString("storage.prefix"),
			UseSSL:       v.GetBool("storage.use_ssl"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("pipeline.validate", true)
	v.SetDefault("output.dir", "output")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.prefix", "slips/")
	v.SetDefault("storage.use_path_style", true)
}

func (c *Config) validate() error {
	if !c.Storage.Enabled {
		return nil
	}
	if c.Storage.Bucket == "" {
		return errors.New("启用归档时 storage.bucket 不能为空")
	}
	if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
		return errors.New("启用归档时必须提供 storage.access_key 与 storage.secret_key")
	}
	return nil
}
