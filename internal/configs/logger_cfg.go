package configs

type LogConfig struct {
	Level                 int8   `yaml:"level" default:"1"`
	ConsoleLoggingEnabled bool   `yaml:"consoleLoggingEnabled" default:"true"`
	FileLoggingEnabled    bool   `yaml:"fileLoggingEnabled"`
	Directory             string `yaml:"directory" default:"logs"`
	Filename              string `yaml:"filename" default:"webook-smoke.log"`
	MaxSize               int    `yaml:"maxSize" default:"10"`
	MaxBackups            int    `yaml:"maxBackups" default:"3"`
	MaxAge                int    `yaml:"maxAge" default:"7"`
}

func GetLogConfig() *LogConfig {
	return &config.Logs
}
