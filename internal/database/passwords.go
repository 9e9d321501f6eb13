package database

import (
	"context"
	"time"
	"webook-smoke/internal/configs"

	"github.com/alexedwards/argon2id"
	"github.com/pkg/errors"
)

// Accounts wraps a store with password hashing.
type Accounts struct {
	users  Users
	params *argon2id.Params
}

func NewAccounts(users Users, cfg *configs.DatabaseConfig) *Accounts {
	h := cfg.PasswordHash
	return &Accounts{
		users: users,
		params: &argon2id.Params{
			Memory:      h.Memory,
			Iterations:  h.Iterations,
			Parallelism: h.Parallelism,
			SaltLength:  h.SaltLength,
			KeyLength:   h.KeyLength,
		},
	}
}

func (a *Accounts) Signup(ctx context.Context, email, password string) (User, error) {
	hash, err := argon2id.CreateHash(password, a.params)
	if err != nil {
		return User{}, errors.Wrap(err, "hash password")
	}

	return a.users.Insert(ctx, User{
		Email:        email,
		PasswordHash: hash,
	})
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong
// password.
func (a *Accounts) Login(ctx context.Context, email, password string) (User, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}

	match, err := argon2id.ComparePasswordAndHash(password, user.PasswordHash)
	if err != nil {
		return User{}, errors.Wrap(err, "compare password hash")
	}
	if !match {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (a *Accounts) Profile(ctx context.Context, id int64) (User, error) {
	return a.users.FindById(ctx, id)
}

// Edit changes the non-sensitive profile fields of an existing user.
func (a *Accounts) Edit(ctx context.Context, id int64, nickname string, birthday time.Time, bio string) error {
	err := a.users.Update(ctx, User{
		Id:       id,
		Nickname: nickname,
		Birthday: birthday,
		Bio:      bio,
	})
	return errors.Wrapf(err, "edit user %d", id)
}
