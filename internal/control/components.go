package control

import (
	"context"
	"os/signal"
	"syscall"
	"webook-smoke/internal/configs"
	"webook-smoke/internal/database"
	"webook-smoke/internal/logger"
	"webook-smoke/internal/server"

	zlog "github.com/rs/zerolog/log"
)

var Components = &componentsManager{}

type componentsManager struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    *configs.ComponentsConfig
}

func (c *componentsManager) Start() {
	// make root context
	c.ctx, c.cancel = signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// load config
	configs.LoadConfig()
	c.cfg = configs.GetComponentsConfig()

	// init logger
	logger.Init(configs.GetLogConfig())
	zlog.Info().Msg("starting...")

	accounts := database.NewAccounts(database.NewInmemoryUsers(), configs.GetDatabaseConfig())

	// start users service
	if c.cfg.Server {
		server.Server.Init(configs.GetServerConfig(), accounts)
		server.Server.Start()
	}
}

func (c *componentsManager) Wait() {
	// wait for os interrupt signal
	<-c.ctx.Done()
}

func (c *componentsManager) Stop() {
	// send stop signal
	c.cancel()

	// wait for server shutdown
	if c.cfg.Server {
		server.Server.Stop()
	}
}
