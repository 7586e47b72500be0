package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/dxpr/content-intel/logging"
	"github.com/dxpr/content-intel/redis_client"
)

type Validator interface {
	Validate() error
}

type Config struct {
	instance   *viper.Viper
	opts       Options
	watchOnce  sync.Once
	watchMutex sync.RWMutex
}

type Options struct {
	BasePath  string
	FileName  string
	FileType  string
	EnvPrefix string
	WatchAble bool
	OnChange  func(e fsnotify.Event)
}

// Settings is the application configuration tree bound from file/env.
type Settings struct {
	Logging logging.Config      `mapstructure:"logging" json:"logging" yaml:"logging"`
	Redis   redis_client.Config `mapstructure:"redis" json:"redis" yaml:"redis"`
	Plugins PluginSettings      `mapstructure:"plugins" json:"plugins" yaml:"plugins"`
	HTTP    HTTPSettings        `mapstructure:"http" json:"http" yaml:"http"`

	// Languages is the site language list, default language first.
	Languages []string `mapstructure:"languages" json:"languages" yaml:"languages" default:"[\"en\"]"`
}

// PluginSettings governs the aggregation pipeline.
type PluginSettings struct {
	// Enabled is the persisted allow-list of plugin ids. Empty means every
	// applicable plugin runs.
	Enabled []string `mapstructure:"enabled" json:"enabled" yaml:"enabled"`

	// Timeout is the per-plugin collection budget.
	Timeout time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout" default:"10s"`
}

type HTTPSettings struct {
	Addr string `mapstructure:"addr" json:"addr" yaml:"addr" default:":8799"`
}
