package server

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	tokenHeader        = "x-jwt-token"
	refreshTokenHeader = "x-refresh-token"
)

// token kinds, kept in the subject claim so one cannot stand in for the other
const (
	accessSubject  = "access"
	refreshSubject = "refresh"
)

type UserClaims struct {
	jwt.RegisteredClaims
	Uid       int64  `json:"uid"`
	Ssid      string `json:"ssid"`
	UserAgent string `json:"user_agent"`
}

type RefreshClaims struct {
	jwt.RegisteredClaims
	Uid  int64  `json:"uid"`
	Ssid string `json:"ssid"`
}

type tokenIssuer struct {
	key        []byte
	ttl        time.Duration
	refreshTTL time.Duration
	method     jwt.SigningMethod
}

func newTokenIssuer(key string, ttl, refreshTTL time.Duration) *tokenIssuer {
	return &tokenIssuer{
		key:        []byte(key),
		ttl:        ttl,
		refreshTTL: refreshTTL,
		method:     jwt.SigningMethodHS512,
	}
}

func (t *tokenIssuer) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (t *tokenIssuer) sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(t.method, claims).SignedString(t.key)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

func (t *tokenIssuer) issue(uid int64, ssid, userAgent string) (string, error) {
	return t.sign(UserClaims{
		RegisteredClaims: t.registered(accessSubject, t.ttl),
		Uid:              uid,
		Ssid:             ssid,
		UserAgent:        userAgent,
	})
}

func (t *tokenIssuer) issueRefresh(uid int64, ssid string) (string, error) {
	return t.sign(RefreshClaims{
		RegisteredClaims: t.registered(refreshSubject, t.refreshTTL),
		Uid:              uid,
		Ssid:             ssid,
	})
}

func (t *tokenIssuer) parse(tokenStr string) (*UserClaims, error) {
	claims := &UserClaims{}
	if err := t.parseInto(tokenStr, claims, accessSubject); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *tokenIssuer) parseRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := t.parseInto(tokenStr, claims, refreshSubject); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *tokenIssuer) parseInto(tokenStr string, claims jwt.Claims, subject string) error {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(*jwt.Token) (any, error) { return t.key, nil },
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(subject),
	)
	if err != nil {
		return errors.Wrapf(err, "parse %s token", subject)
	}
	if !token.Valid {
		return errors.New("token is invalid")
	}
	return nil
}

// bearerToken pulls the token out of an "Authorization: Bearer <t>" value.
func bearerToken(header string) string {
	segs := strings.Split(header, " ")
	if len(segs) != 2 || !strings.EqualFold(segs[0], "Bearer") {
		return ""
	}
	return segs[1]
}
