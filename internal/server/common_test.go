package server_test

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"
	"webook-smoke/internal/configs"
	"webook-smoke/internal/database"
	"webook-smoke/internal/server"

	"github.com/creasty/defaults"
)

const (
	testEmail    = "173777777771@qq.com"
	testPassword = "asjh123A&&"
)

func testServerConfig(t *testing.T) *configs.ServerConfig {
	var cfg configs.ServerConfig
	if err := defaults.Set(&cfg); err != nil {
		t.Fatal(err)
	}
	cfg.DeployProduction = true
	cfg.RateLimit.Requests = 0
	cfg.SessionTTL = time.Minute
	return &cfg
}

func testDatabaseConfig() *configs.DatabaseConfig {
	return &configs.DatabaseConfig{
		PasswordHash: configs.PasswordHashConfig{
			Memory:      1024,
			Iterations:  1,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		},
	}
}

// startTestServer runs the users api in-process and returns its base url.
func startTestServer(t *testing.T, cfg *configs.ServerConfig) string {
	accounts := database.NewAccounts(database.NewInmemoryUsers(), testDatabaseConfig())
	server.Server.Init(cfg, accounts)

	srv := httptest.NewServer(server.Server.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func credentials(email, password, confirm string) []byte {
	return []byte(fmt.Sprintf(`{
		"email": %q,
		"password": %q,
		"confirmPassword": %q
	}`, email, password, confirm))
}

func loginBody(email, password string) []byte {
	return []byte(fmt.Sprintf(`{"email": %q, "password": %q}`, email, password))
}
