package smoke

import (
	"net/http"
	"webook-smoke/internal/configs"

	"github.com/moznion/go-optional"
)

type StepName string

const (
	StepSignup  StepName = "signup"
	StepLogin   StepName = "login"
	StepProfile StepName = "profile"
)

const (
	SignupPath  = "/users/signup"
	LoginPath   = "/users/login"
	ProfilePath = "/users/profile"
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

type Credentials struct {
	Email           string
	Password        string
	ConfirmPassword string
}

func CredentialsFromConfig(cfg *configs.SmokeConfig) Credentials {
	return Credentials{
		Email:           cfg.Email,
		Password:        cfg.Password,
		ConfirmPassword: cfg.ConfirmPassword,
	}
}

// Step is one request of the sequence. Payload, when present, goes out as
// a JSON body.
type Step struct {
	Name    StepName
	Method  string
	Path    string
	Payload optional.Option[any]
}

func SignupStep(c Credentials) Step {
	return Step{
		Name:   StepSignup,
		Method: http.MethodPost,
		Path:   SignupPath,
		Payload: optional.Some[any](SignUpReq{
			Email:           c.Email,
			Password:        c.Password,
			ConfirmPassword: c.ConfirmPassword,
		}),
	}
}

func LoginStep(c Credentials) Step {
	return Step{
		Name:   StepLogin,
		Method: http.MethodPost,
		Path:   LoginPath,
		Payload: optional.Some[any](LoginReq{
			Email:    c.Email,
			Password: c.Password,
		}),
	}
}

func ProfileStep() Step {
	return Step{
		Name:    StepProfile,
		Method:  http.MethodGet,
		Path:    ProfilePath,
		Payload: optional.None[any](),
	}
}
