package redis_client

import "fmt"

type Config struct {
	Host     string `mapstructure:"host" json:"host" yaml:"host"`
	Port     string `mapstructure:"port" json:"port" yaml:"port" default:"6379"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
	DB       int    `mapstructure:"db" json:"db" yaml:"db"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Configured reports whether a redis endpoint was supplied at all. The
// statistics plugin uses this to report unavailability instead of failing.
func (c *Config) Configured() bool {
	return c.Host != ""
}
