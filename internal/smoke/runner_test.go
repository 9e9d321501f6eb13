package smoke_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"webook-smoke/internal/configs"
	"webook-smoke/internal/database"
	"webook-smoke/internal/server"
	"webook-smoke/internal/smoke"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smokeConfig(t *testing.T, baseURL string) *configs.SmokeConfig {
	var cfg configs.SmokeConfig
	require.NoError(t, defaults.Set(&cfg))
	cfg.BaseURL = baseURL
	return &cfg
}

func startUsersService(t *testing.T) string {
	var cfg configs.ServerConfig
	require.NoError(t, defaults.Set(&cfg))
	cfg.DeployProduction = true
	cfg.RateLimit.Requests = 0

	accounts := database.NewAccounts(database.NewInmemoryUsers(), &configs.DatabaseConfig{
		PasswordHash: configs.PasswordHashConfig{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
	})
	server.Server.Init(&cfg, accounts)

	srv := httptest.NewServer(server.Server.Handler())
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestExecuteAgainstUsersService(t *testing.T) {
	endpoint := startUsersService(t)
	cfg := smokeConfig(t, endpoint)

	var out bytes.Buffer
	results, err := smoke.Execute(context.Background(), cfg, &out)
	require.NoError(t, err)
	require.Len(t, results, 3)

	names := []smoke.StepName{smoke.StepSignup, smoke.StepLogin, smoke.StepProfile}
	for i, res := range results {
		assert.Equal(t, names[i], res.Step.Name)
		assert.Equal(t, http.StatusOK, res.Response.StatusCode)
	}

	assert.JSONEq(t, `{"code":0,"msg":"OK","data":null}`, results[0].Response.Text())
	assert.NotEmpty(t, results[1].Response.Header.Get("x-jwt-token"))

	var profile struct {
		Code int            `json:"code"`
		Data server.Profile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(results[2].Response.Body, &profile))
	assert.Equal(t, 0, profile.Code)
	assert.Equal(t, cfg.Email, profile.Data.Email)

	printed := out.String()
	assert.Equal(t, 2, strings.Count(printed, smoke.Separator+"\n"))
	assert.Contains(t, printed, "Content-Type: application/json; charset=utf-8\n")
	assert.Equal(t, 3, strings.Count(printed, "\n200\n"))
}

func TestExecuteTwicePrintsDuplicateSignup(t *testing.T) {
	endpoint := startUsersService(t)
	cfg := smokeConfig(t, endpoint)

	_, err := smoke.Execute(context.Background(), cfg, io.Discard)
	require.NoError(t, err)

	results, err := smoke.Execute(context.Background(), cfg, io.Discard)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// a failed signup does not stop login and profile
	assert.JSONEq(t, `{"code":5,"msg":"email already registered","data":null}`, results[0].Response.Text())
	assert.Equal(t, http.StatusOK, results[2].Response.StatusCode)
}

func TestExecuteStopsOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	var out bytes.Buffer
	results, err := smoke.Execute(context.Background(), smokeConfig(t, endpoint), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step signup")
	assert.Empty(t, results)
	assert.Empty(t, out.String())
}

func TestExecuteDoesNotJudgeStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "go away", http.StatusUnauthorized)
	}))
	defer srv.Close()

	var out bytes.Buffer
	results, err := smoke.Execute(context.Background(), smokeConfig(t, srv.URL), &out)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, res := range results {
		assert.Equal(t, http.StatusUnauthorized, res.Response.StatusCode)
	}
	assert.Equal(t, 3, strings.Count(out.String(), "401\ngo away\n"))
}

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]string
	Cookie string
	Auth   string
}

func TestExecuteSendsLiteralPayloadsOnOneSession(t *testing.T) {
	var mtx sync.Mutex
	var recorded []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		if c, err := r.Cookie("ssid"); err == nil {
			rec.Cookie = c.Value
		}
		if r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}

		mtx.Lock()
		recorded = append(recorded, rec)
		mtx.Unlock()

		switch r.URL.Path {
		case "/users/signup":
			http.SetCookie(w, &http.Cookie{Name: "ssid", Value: "from-signup", Path: "/"})
		case "/users/login":
			http.SetCookie(w, &http.Cookie{Name: "ssid", Value: "from-login", Path: "/"})
			w.Header().Set("x-jwt-token", "jwt")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// trailing slash must not double up in the joined url
	_, err := smoke.Execute(context.Background(), smokeConfig(t, srv.URL+"/"), io.Discard)
	require.NoError(t, err)

	require.Len(t, recorded, 3)

	assert.Equal(t, recordedRequest{
		Method: http.MethodPost,
		Path:   "/users/signup",
		Body: map[string]string{
			"email":           "173777777771@qq.com",
			"password":        "asjh123A&&",
			"confirmPassword": "asjh123A&&",
		},
	}, recorded[0])

	assert.Equal(t, recordedRequest{
		Method: http.MethodPost,
		Path:   "/users/login",
		Body: map[string]string{
			"email":    "173777777771@qq.com",
			"password": "asjh123A&&",
		},
		Cookie: "from-signup",
	}, recorded[1])

	assert.Equal(t, recordedRequest{
		Method: http.MethodGet,
		Path:   "/users/profile",
		Cookie: "from-login",
		Auth:   "Bearer jwt",
	}, recorded[2])
}
