package configs

import "time"

type RateLimitConfig struct {
	Requests   int           `yaml:"requests" default:"100"`
	Window     time.Duration `yaml:"window" default:"1s"`
	TTL        time.Duration `yaml:"ttl" default:"3m"`
	CleanupGap time.Duration `yaml:"cleanup_interval" default:"1m"`
}

type ServerConfig struct {
	Addr             string          `yaml:"addr" default:"127.0.0.1:31629"`
	DeployProduction bool            `yaml:"deploy_production"`
	AcceptTimeout    time.Duration   `yaml:"accept_timeout" default:"5s"`
	ResponseTimeout  time.Duration   `yaml:"response_timeout" default:"5s"`
	SessionTTL       time.Duration   `yaml:"session_ttl" default:"30m"`
	SessionCacheSize int             `yaml:"session_cache_size" default:"4096"`
	TokenKey         string          `yaml:"token_key" default:"webook-smoke-token-key"`
	TokenTTL         time.Duration   `yaml:"token_ttl" default:"10m"`
	RefreshTokenTTL  time.Duration   `yaml:"refresh_token_ttl" default:"168h"`
	MetricsEnabled   bool            `yaml:"metrics_enabled" default:"true"`
	RateLimit        RateLimitConfig `yaml:"rate_limit"`
}

func GetServerConfig() *ServerConfig {
	return &config.Server
}
