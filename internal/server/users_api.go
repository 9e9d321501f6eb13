package server

import (
	"net/http"
	"time"
	"webook-smoke/internal/database"

	regexp "github.com/dlclark/regexp2"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

const (
	signupPath  = "/users/signup"
	loginPath   = "/users/login"
	logoutPath  = "/users/logout"
	profilePath = "/users/profile"
	editPath    = "/users/edit"
	refreshPath = "/users/refresh-token"
)

const (
	maxNicknameLen = 128
	maxBioLen      = 4096
)

const (
	emailRegexPattern    = `^\w+([-+.]\w+)*@\w+([-.]\w+)*\.\w+([-.]\w+)*$`
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d)(?=.*[$@$!%*#?&])[A-Za-z\d$@$!%*#?&]{8,}$`
)

var (
	emailRegexp    = regexp.MustCompile(emailRegexPattern, regexp.None)
	passwordRegexp = regexp.MustCompile(passwordRegexPattern, regexp.None)
)

type SignUpReq struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EditReq struct {
	Nickname string `json:"nickname"`
	Birthday string `json:"birthday"`
	Bio      string `json:"bio"`
}

type Profile struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
	Birthday string `json:"birthday"`
}

func (s *server) initUsersApi() {
	users := s.router.Group("", s.checkLogin())

	users.POST(signupPath, wrapBody(s.signup))
	users.POST(loginPath, wrapBody(s.login))
	users.POST(logoutPath, wrapIdentity(s.logout))
	users.GET(profilePath, wrapIdentity(s.profile))
	users.POST(editPath, wrapBodyAndIdentity(s.edit))
	users.GET(refreshPath, s.refreshToken)
}

func (s *server) signup(c *gin.Context, req SignUpReq) (Result, error) {
	isEmail, err := emailRegexp.MatchString(req.Email)
	if err != nil {
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}
	if !isEmail {
		return Result{Code: codeSystemError, Msg: "invalid email format"}, nil
	}

	if req.Password != req.ConfirmPassword {
		return Result{Code: codeSystemError, Msg: "passwords do not match"}, nil
	}

	isPassword, err := passwordRegexp.MatchString(req.Password)
	if err != nil {
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}
	if !isPassword {
		return Result{
			Code: codeSystemError,
			Msg:  "password needs letters, digits and special characters, at least 8 long",
		}, nil
	}

	user, err := s.accounts.Signup(c, req.Email, req.Password)
	switch {
	case err == nil:
		zlog.Info().Int64("uid", user.Id).Msg("User signed up")
		return Result{Code: codeOK, Msg: "OK"}, nil
	case errors.Is(err, database.ErrDuplicateEmail):
		return Result{Code: codeSystemError, Msg: "email already registered"}, nil
	default:
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}
}

func (s *server) login(c *gin.Context, req LoginReq) (Result, error) {
	user, err := s.accounts.Login(c, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrInvalidCredentials):
		return Result{Code: codeBadInput, Msg: "invalid email or password"}, nil
	default:
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}

	ssid, err := s.sessions.create(user.Id)
	if err != nil {
		return Result{Code: codeSystemError, Msg: "system error"}, errors.Wrap(err, "create session")
	}

	token, err := s.tokens.issue(user.Id, ssid, c.GetHeader("User-Agent"))
	if err != nil {
		s.sessions.drop(ssid)
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}

	refresh, err := s.tokens.issueRefresh(user.Id, ssid)
	if err != nil {
		s.sessions.drop(ssid)
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}

	c.Header(tokenHeader, token)
	c.Header(refreshTokenHeader, refresh)
	s.setSessionCookie(c, ssid)

	zlog.Info().Int64("uid", user.Id).Msg("User logged in")
	return Result{Code: codeOK, Msg: "OK"}, nil
}

func (s *server) logout(c *gin.Context, id identity) (Result, error) {
	s.sessions.drop(id.ssid)
	c.Header(tokenHeader, "")
	c.Header(refreshTokenHeader, "")
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	return Result{Code: codeOK, Msg: "logged out"}, nil
}

func (s *server) profile(c *gin.Context, id identity) (Result, error) {
	user, err := s.accounts.Profile(c, id.uid)
	if err != nil {
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}

	birthday := ""
	if !user.Birthday.IsZero() {
		birthday = user.Birthday.Format(time.DateOnly)
	}

	return Result{
		Code: codeOK,
		Data: Profile{
			Nickname: user.Nickname,
			Email:    user.Email,
			Phone:    user.Phone,
			Bio:      user.Bio,
			Birthday: birthday,
		},
	}, nil
}

func (s *server) edit(c *gin.Context, req EditReq, id identity) (Result, error) {
	if len(req.Bio) > maxBioLen || len(req.Nickname) > maxNicknameLen {
		return Result{Code: codeBadInput, Msg: "invalid parameters"}, nil
	}

	birthday, err := time.Parse(time.DateOnly, req.Birthday)
	if err != nil {
		return Result{Code: codeBadInput, Msg: "invalid birthday format"}, nil
	}

	if err := s.accounts.Edit(c, id.uid, req.Nickname, birthday, req.Bio); err != nil {
		return Result{Code: codeSystemError, Msg: "system error"}, err
	}

	zlog.Info().Int64("uid", id.uid).Msg("User profile edited")
	return Result{Code: codeOK, Msg: "OK"}, nil
}

// refreshToken trades a refresh token for a new access token while the
// session it belongs to is alive.
func (s *server) refreshToken(c *gin.Context) {
	claims, err := s.tokens.parseRefresh(bearerToken(c.GetHeader("Authorization")))
	if err != nil {
		zlog.Debug().Err(err).Msg("Rejected refresh token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if s.sessions.lookup(claims.Ssid).IsNone() {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	token, err := s.tokens.issue(claims.Uid, claims.Ssid, c.GetHeader("User-Agent"))
	if err != nil {
		respond(c, Result{Code: codeSystemError, Msg: "system error"}, err)
		return
	}

	c.Header(tokenHeader, token)
	c.JSON(http.StatusOK, Result{Code: codeOK, Msg: "OK"})
}

func (s *server) setSessionCookie(c *gin.Context, ssid string) {
	c.SetCookie(sessionCookie, ssid, int(s.cfg.SessionTTL.Seconds()), "/", "", false, true)
}
