package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moznion/go-optional"
	zlog "github.com/rs/zerolog/log"
)

const identityKey = "identity"

type identity struct {
	uid      int64
	ssid     string
	byCookie bool
}

// checkLogin guards the users group. Signup, login and refresh-token pass
// through, the rest needs a live session cookie or a bearer token bound to
// one. A cookie that got through is sent back with a fresh max age.
func (s *server) checkLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == signupPath || path == loginPath || path == refreshPath {
			return
		}

		id := s.identify(c)
		if id.IsNone() {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if id.Unwrap().byCookie && path != logoutPath {
			s.setSessionCookie(c, id.Unwrap().ssid)
		}
		c.Set(identityKey, id.Unwrap())
	}
}

func (s *server) identify(c *gin.Context) optional.Option[identity] {
	if ssid, err := c.Cookie(sessionCookie); err == nil && ssid != "" {
		if uid := s.sessions.lookup(ssid); uid.IsSome() {
			return optional.Some(identity{uid: uid.Unwrap(), ssid: ssid, byCookie: true})
		}
	}

	tokenStr := bearerToken(c.GetHeader("Authorization"))
	if tokenStr == "" {
		return optional.None[identity]()
	}

	claims, err := s.tokens.parse(tokenStr)
	if err != nil {
		zlog.Debug().Err(err).Msg("Rejected token")
		return optional.None[identity]()
	}

	if claims.UserAgent != c.GetHeader("User-Agent") {
		zlog.Warn().Int64("uid", claims.Uid).Msg("Token used with another user agent")
		return optional.None[identity]()
	}

	// a logged out session takes its tokens with it
	if s.sessions.lookup(claims.Ssid).IsNone() {
		return optional.None[identity]()
	}

	return optional.Some(identity{uid: claims.Uid, ssid: claims.Ssid})
}
