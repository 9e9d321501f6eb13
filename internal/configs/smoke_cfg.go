package configs

import "time"

type SessionConfig struct {
	// zero means no client timeout
	RequestTimeout time.Duration `yaml:"request_timeout"`
	UserAgent      string        `yaml:"user_agent" default:"webook-smoke/1.0"`
	CarryToken     bool          `yaml:"carry_token" default:"true"`
}

type SmokeConfig struct {
	BaseURL         string        `yaml:"base_url" default:"http://webook:31629"`
	Email           string        `yaml:"email" default:"173777777771@qq.com"`
	Password        string        `yaml:"password" default:"asjh123A&&"`
	ConfirmPassword string        `yaml:"confirm_password" default:"asjh123A&&"`
	Session         SessionConfig `yaml:"session"`
}

func GetSmokeConfig() *SmokeConfig {
	return &config.Smoke
}
