package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
)

func (s *server) initNoRoute() {
	s.router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		zlog.Info().Str("path", path).Str("method", c.Request.Method).Msg("No such path")
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no such path: %s", path)})
	})
}
