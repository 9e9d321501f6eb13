// Package session keeps one HTTP client whose cookies, and optionally the
// login token, follow every request made through it.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
	"webook-smoke/internal/configs"

	"github.com/moznion/go-optional"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/publicsuffix"
)

const (
	TokenHeader         = "x-jwt-token"
	AuthorizationHeader = "Authorization"
)

type Session struct {
	client     *http.Client
	userAgent  string
	carryToken bool
	token      string
}

func New(cfg *configs.SessionConfig) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}

	return &Session{
		client: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		userAgent:  cfg.UserAgent,
		carryToken: cfg.CarryToken,
	}, nil
}

// Do sends one request. A present payload is encoded as JSON.
func (s *Session) Do(ctx context.Context, method, rawURL string, payload optional.Option[any]) (*Response, error) {
	var body io.Reader
	if payload.IsSome() {
		content, err := json.Marshal(payload.Unwrap())
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s %s payload", method, rawURL)
		}
		body = bytes.NewReader(content)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, rawURL)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return s.send(req)
}

func (s *Session) PostJSON(ctx context.Context, rawURL string, payload any) (*Response, error) {
	return s.Do(ctx, http.MethodPost, rawURL, optional.Some(payload))
}

func (s *Session) Get(ctx context.Context, rawURL string) (*Response, error) {
	return s.Do(ctx, http.MethodGet, rawURL, optional.None[any]())
}

// Cookies returns what the jar would send to rawURL.
func (s *Session) Cookies(rawURL string) []*http.Cookie {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	return s.client.Jar.Cookies(u)
}

// Token is the last login token seen in a response, if any.
func (s *Session) Token() optional.Option[string] {
	if s.token == "" {
		return optional.None[string]()
	}
	return optional.Some(s.token)
}

func (s *Session) send(req *http.Request) (*Response, error) {
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	if s.carryToken && s.token != "" {
		req.Header.Set(AuthorizationHeader, "Bearer "+s.token)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", req.Method, req.URL)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s %s response", req.Method, req.URL)
	}

	if token := resp.Header.Get(TokenHeader); s.carryToken && token != "" {
		zlog.Debug().Str("url", req.URL.String()).Msg("picked up login token")
		s.token = token
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       content,
		Latency:    time.Since(start),
	}, nil
}
