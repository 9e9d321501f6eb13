package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// GinLogger logs every request once it's served, with the level picked by
// the response status.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		t := time.Now()
		path := c.Request.URL.Path

		c.Next()

		data := &requestData{
			status:    c.Writer.Status(),
			client_ip: c.ClientIP(),
			path:      path,
			method:    c.Request.Method,
			latency:   time.Since(t),
			err:       c.Errors.Last(),
		}

		data.log()
	}
}

type requestData struct {
	status    int
	client_ip string
	path      string
	method    string
	latency   time.Duration
	err       *gin.Error
}

func (r *requestData) event() (*zerolog.Event, string) {
	switch {
	case 500 <= r.status:
		return zlog.Error(), "5xx"
	case 400 <= r.status:
		return zlog.Warn(), "4xx"
	default:
		return zlog.Info(), "served"
	}
}

func (r *requestData) log() {
	ev, msg := r.event()
	ev = ev.
		Str("ip", r.client_ip).
		Str("method", r.method).
		Str("path", r.path).
		Int("status", r.status).
		Dur("latency", r.latency)
	if r.err != nil {
		ev = ev.Err(r.err)
	}
	ev.Msg(msg)
}
