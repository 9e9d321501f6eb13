package smoke

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlanOrder(t *testing.T) {
	creds := Credentials{Email: "a@qq.com", Password: "p", ConfirmPassword: "p2"}
	plan := DefaultPlan(creds)
	require.Equal(t, 3, plan.Len())

	signup := plan.Next().Unwrap()
	assert.Equal(t, StepSignup, signup.Name)
	assert.Equal(t, http.MethodPost, signup.Method)
	assert.Equal(t, "/users/signup", signup.Path)
	assert.Equal(t, SignUpReq{Email: "a@qq.com", Password: "p", ConfirmPassword: "p2"}, signup.Payload.Unwrap())

	login := plan.Next().Unwrap()
	assert.Equal(t, StepLogin, login.Name)
	assert.Equal(t, http.MethodPost, login.Method)
	assert.Equal(t, "/users/login", login.Path)
	assert.Equal(t, LoginReq{Email: "a@qq.com", Password: "p"}, login.Payload.Unwrap())

	profile := plan.Next().Unwrap()
	assert.Equal(t, StepProfile, profile.Name)
	assert.Equal(t, http.MethodGet, profile.Method)
	assert.Equal(t, "/users/profile", profile.Path)
	assert.True(t, profile.Payload.IsNone())

	assert.True(t, plan.Next().IsNone())
	assert.Equal(t, 0, plan.Len())
}
