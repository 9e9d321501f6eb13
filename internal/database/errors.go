package database

import "errors"

var ErrDuplicateEmail = errors.New("duplicate email")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
