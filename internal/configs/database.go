package configs

// PasswordHashConfig holds the argon2id parameters used for stored passwords.
type PasswordHashConfig struct {
	Memory      uint32 `yaml:"memory" default:"65536"` // KiB
	Iterations  uint32 `yaml:"iterations" default:"1"`
	Parallelism uint8  `yaml:"parallelism" default:"2"`
	SaltLength  uint32 `yaml:"salt_length" default:"16"`
	KeyLength   uint32 `yaml:"key_length" default:"32"`
}

type DatabaseConfig struct {
	PasswordHash PasswordHashConfig `yaml:"password_hash"`
}

func GetDatabaseConfig() *DatabaseConfig {
	return &config.Database
}
