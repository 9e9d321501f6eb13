package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	zlog "github.com/rs/zerolog/log"
)

// Result is the envelope of every users API answer. A non-zero Code is a
// business failure, still sent with HTTP 200.
type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

const (
	codeOK          = 0
	codeBadInput    = 4
	codeSystemError = 5
)

// bindBody answers 400 itself when the body does not decode.
func bindBody[T any](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		zlog.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to bind request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	return req, true
}

// takeIdentity returns whoever checkLogin let through.
func takeIdentity(c *gin.Context) (identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return identity{}, false
	}
	return val.(identity), true
}

func wrapBody[T any](fn func(c *gin.Context, req T) (Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindBody[T](c)
		if !ok {
			return
		}

		res, err := fn(c, req)
		respond(c, res, err)
	}
}

func wrapIdentity(fn func(c *gin.Context, id identity) (Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := takeIdentity(c)
		if !ok {
			return
		}

		res, err := fn(c, id)
		respond(c, res, err)
	}
}

func wrapBodyAndIdentity[T any](fn func(c *gin.Context, req T, id identity) (Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := takeIdentity(c)
		if !ok {
			return
		}
		req, ok := bindBody[T](c)
		if !ok {
			return
		}

		res, err := fn(c, req, id)
		respond(c, res, err)
	}
}

func respond(c *gin.Context, res Result, err error) {
	if err != nil {
		zlog.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request handling failed")
		_ = c.Error(err)
	}
	c.JSON(http.StatusOK, res)
}
