package configs

type ComponentsConfig struct {
	Server bool `yaml:"server" default:"true"`
}

func GetComponentsConfig() *ComponentsConfig {
	return &config.Components
}
